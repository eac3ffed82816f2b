package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/architdhariwal/sms-backend/internal/config"
	"github.com/architdhariwal/sms-backend/internal/observability"
)

const fileExt = ".json"

var (
	// ErrStorageCorrupt means a collection file exists but is not a JSON array of objects.
	ErrStorageCorrupt = errors.New("storage corrupt")
	// ErrStorageReadFailed means a collection file exists but could not be read.
	ErrStorageReadFailed = errors.New("storage read failed")
	// ErrStorageWriteFailed means a save did not replace the collection file.
	// The previous contents are left in place.
	ErrStorageWriteFailed = errors.New("storage write failed")
	// ErrRecordUnreadable means a stored record does not fit the entity type
	// it is read as. The file itself is intact.
	ErrRecordUnreadable = errors.New("stored record unreadable")
	// ErrStoreBusy means a mutation gave up waiting for its collection lock.
	ErrStoreBusy = errors.New("store busy")
	// ErrInvalidCollection rejects names that are not a single file name.
	ErrInvalidCollection = errors.New("invalid collection name")
)

// Store keeps each collection in <dir>/<name>.json.
//
// Saves write a temp file next to the target and rename it into place, so
// a reader sees either the old or the new contents, never a partial file.
// Loads therefore need no lock. Mutations go through Update, which holds a
// per-collection lock from load to save.
type Store struct {
	dir      string
	lockWait time.Duration
	logger   *zap.Logger
	metrics  *observability.Metrics

	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

// Option customizes a Store.
type Option func(*Store)

// WithLockWait caps the time a mutation waits for its collection. Zero waits until the context ends.
func WithLockWait(d time.Duration) Option {
	return func(s *Store) { s.lockWait = d }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates dir if needed and returns a store rooted there.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	s := &Store{
		dir:    dir,
		logger: zap.NewNop(),
		locks:  make(map[string]*semaphore.Weighted),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewStoreFromConfig builds a store from the storage settings.
func NewStoreFromConfig(cfg config.StorageConfig, logger *zap.Logger, metrics *observability.Metrics) (*Store, error) {
	return NewStore(cfg.DataDir,
		WithLockWait(cfg.LockWait()),
		WithLogger(logger),
		WithMetrics(metrics),
	)
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ping checks that the data directory is still writable.
func (s *Store) Ping(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := f.Name()
	return errors.Join(f.Close(), os.Remove(name))
}

// Load returns every record of the collection. A missing file is an empty collection.
func (s *Store) Load(ctx context.Context, collection string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(collection)
	if err != nil {
		return nil, err
	}
	records, err := s.read(collection, path)
	s.metrics.RecordStoreOp(collection, "load", err)
	return records, err
}

// Save replaces the collection with records. It waits behind any Update in
// progress on the same collection.
func (s *Store) Save(ctx context.Context, collection string, records []Record) error {
	path, err := s.path(collection)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	release, err := s.acquire(ctx, collection)
	if err != nil {
		return err
	}
	defer release()

	err = s.write(collection, path, records)
	s.metrics.RecordStoreOp(collection, "save", err)
	return err
}

// Update runs the load, fn, save sequence for one collection as a critical
// section. When fn returns an error nothing is written and that error is
// returned unchanged.
//
// A ctx that ends before the lock is acquired aborts with no effect. Once the
// lock is held the sequence runs to completion even if ctx is cancelled.
func (s *Store) Update(ctx context.Context, collection string, fn func([]Record) ([]Record, error)) error {
	path, err := s.path(collection)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	release, err := s.acquire(ctx, collection)
	if err != nil {
		return err
	}
	defer release()

	records, err := s.read(collection, path)
	if err != nil {
		s.metrics.RecordStoreOp(collection, "update", err)
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	err = s.write(collection, path, next)
	s.metrics.RecordStoreOp(collection, "update", err)
	return err
}

func (s *Store) acquire(ctx context.Context, collection string) (func(), error) {
	sem := s.lockFor(collection)

	waitCtx := ctx
	if s.lockWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.lockWait)
		defer cancel()
	}

	start := time.Now()
	if err := sem.Acquire(waitCtx, 1); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("collection lock wait exceeded",
			zap.String("collection", collection),
			zap.Duration("waited", time.Since(start)))
		return nil, fmt.Errorf("%w: %s", ErrStoreBusy, collection)
	}
	s.metrics.ObserveLockWait(collection, time.Since(start))
	return func() { sem.Release(1) }, nil
}

func (s *Store) lockFor(collection string) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.locks[collection]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.locks[collection] = sem
	}
	return sem
}

func (s *Store) path(collection string) (string, error) {
	if collection == "" || collection == "." || collection == ".." ||
		strings.ContainsAny(collection, `/\`) || filepath.Base(collection) != collection {
		return "", fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return filepath.Join(s.dir, collection+fileExt), nil
}

func (s *Store) read(collection, path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, nil
		}
		s.fail(collection, "read", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrStorageReadFailed, collection, err)
	}
	records, err := decodeCollection(data)
	if err != nil {
		s.fail(collection, "corrupt", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrStorageCorrupt, collection, err)
	}
	return records, nil
}

func decodeCollection(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Record{}, nil
	}
	if data[0] != '[' {
		return nil, errors.New("content is not a JSON array")
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("element %d is not a JSON object", i)
		}
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Store) write(collection, path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.fail(collection, "write", err)
		return fmt.Errorf("%w: %s: %w", ErrStorageWriteFailed, collection, err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		s.fail(collection, "write", err)
		return fmt.Errorf("%w: %s: %w", ErrStorageWriteFailed, collection, err)
	}
	return nil
}

func (s *Store) fail(collection, kind string, err error) {
	s.metrics.RecordStoreFailure(collection, kind)
	s.logger.Error("collection storage failure",
		zap.String("collection", collection),
		zap.String("kind", kind),
		zap.Error(err))
}

// writeFileAtomic writes data to a temp file in the target's directory, syncs
// it and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		return errors.Join(fmt.Errorf("failed to write temp file: %w", err), f.Close(), os.Remove(tmpPath))
	}
	if err := f.Sync(); err != nil {
		return errors.Join(fmt.Errorf("failed to sync temp file: %w", err), f.Close(), os.Remove(tmpPath))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("failed to close temp file: %w", err), os.Remove(tmpPath))
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return errors.Join(fmt.Errorf("failed to chmod temp file: %w", err), os.Remove(tmpPath))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Join(fmt.Errorf("failed to rename temp file: %w", err), os.Remove(tmpPath))
	}

	// Persist the rename itself. Not every platform supports syncing a directory.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
