package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/architdhariwal/sms-backend/internal/domain"
	"github.com/architdhariwal/sms-backend/internal/events"
	"github.com/architdhariwal/sms-backend/internal/persistence"
)

const idField = "id"

// DocumentStore is the subset of persistence.Store used by repositories.
type DocumentStore interface {
	Load(ctx context.Context, collection string) ([]persistence.Record, error)
	Update(ctx context.Context, collection string, fn func([]persistence.Record) ([]persistence.Record, error)) error
}

// Entity is a record type with a unique key.
type Entity interface {
	UniqueKey() string
}

// Schema describes how an entity is laid out in its collection.
type Schema struct {
	Collection string
	// KeyField is the JSON name of the unique key.
	KeyField string
	// Immutable lists extra fields a patch may not touch. The id and the
	// unique key are always immutable.
	Immutable []string
}

func (s Schema) immutable(field string) bool {
	return field == idField || field == s.KeyField || slices.Contains(s.Immutable, field)
}

// Collection implements key-based CRUD for one entity type on top of a
// DocumentStore. Every mutation is a single Store.Update call, so the
// uniqueness check, the merge and the save happen under one lock.
type Collection[T Entity] struct {
	store      DocumentStore
	schema     Schema
	dispatcher events.Dispatcher
	logger     *zap.Logger
	newID      func() string
	now        func() time.Time
}

// NewCollection builds a repository for schema. dispatcher and logger may be nil.
func NewCollection[T Entity](store DocumentStore, schema Schema, dispatcher events.Dispatcher, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{
		store:      store,
		schema:     schema,
		dispatcher: dispatcher,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.schema.Collection
}

// List returns every record in file order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	records, err := c.store.Load(ctx, c.schema.Collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		v, err := c.decodeStored(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FindByKey returns the record whose unique key equals key.
func (c *Collection[T]) FindByKey(ctx context.Context, key string) (T, error) {
	var zero T
	records, err := c.store.Load(ctx, c.schema.Collection)
	if err != nil {
		return zero, err
	}
	idx := c.indexOf(records, key)
	if idx < 0 {
		return zero, c.notFound(key)
	}
	return c.decodeStored(records[idx])
}

// Insert appends entity, assigning an id when it has none. It fails with
// domain.ErrDuplicateKey when the unique key is already taken.
func (c *Collection[T]) Insert(ctx context.Context, entity T) (T, error) {
	var zero T
	key := entity.UniqueKey()
	if key == "" {
		return zero, fmt.Errorf("%w: %s is required", domain.ErrInvalidRecord, c.schema.KeyField)
	}
	rec, err := persistence.EncodeRecord(entity)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	if rec.Text(idField) == "" {
		if err := rec.Set(idField, c.newID()); err != nil {
			return zero, err
		}
	}

	err = c.store.Update(ctx, c.schema.Collection, func(records []persistence.Record) ([]persistence.Record, error) {
		if c.indexOf(records, key) >= 0 {
			return nil, fmt.Errorf("%w: %s %q already exists", domain.ErrDuplicateKey, c.schema.KeyField, key)
		}
		return append(records, rec), nil
	})
	if err != nil {
		return zero, err
	}

	c.publish(ctx, events.EventRecordCreated, key, nil)
	return c.decodeInput(rec)
}

// Update merges patch over the stored record: each field in patch replaces
// the stored value, every other field is kept. An empty patch succeeds and
// leaves the record unchanged.
func (c *Collection[T]) Update(ctx context.Context, key string, patch domain.Patch) (T, error) {
	var zero T
	raw := make(persistence.Record, len(patch))
	for field, value := range patch {
		if c.schema.immutable(field) {
			return zero, fmt.Errorf("%w: %s", domain.ErrImmutableField, field)
		}
		data, err := json.Marshal(value)
		if err != nil {
			return zero, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, field, err)
		}
		raw[field] = data
	}

	var merged persistence.Record
	var result T
	err := c.store.Update(ctx, c.schema.Collection, func(records []persistence.Record) ([]persistence.Record, error) {
		idx := c.indexOf(records, key)
		if idx < 0 {
			return nil, c.notFound(key)
		}
		merged = records[idx].Clone()
		for field, value := range raw {
			merged[field] = value
		}
		v, err := c.decodeInput(merged)
		if err != nil {
			// A patch may repair a bad stored value. Blame the stored
			// record only when it is unreadable on its own.
			if _, serr := c.decodeStored(records[idx]); serr != nil {
				return nil, serr
			}
			return nil, err
		}
		result = v
		records[idx] = merged
		return records, nil
	})
	if err != nil {
		return zero, err
	}

	c.publish(ctx, events.EventRecordUpdated, key, fieldNames(patch))
	return result, nil
}

// Delete removes the record with key. It fails with domain.ErrNotFound when
// nothing matched.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	err := c.store.Update(ctx, c.schema.Collection, func(records []persistence.Record) ([]persistence.Record, error) {
		kept := make([]persistence.Record, 0, len(records))
		for _, rec := range records {
			if rec.Text(c.schema.KeyField) != key {
				kept = append(kept, rec)
			}
		}
		if len(kept) == len(records) {
			return nil, c.notFound(key)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	c.publish(ctx, events.EventRecordDeleted, key, nil)
	return nil
}

func (c *Collection[T]) indexOf(records []persistence.Record, key string) int {
	for i, rec := range records {
		if rec.Text(c.schema.KeyField) == key {
			return i
		}
	}
	return -1
}

// decodeStored reads a record as loaded from the store. A mismatch is a
// storage problem, not something the caller sent.
func (c *Collection[T]) decodeStored(rec persistence.Record) (T, error) {
	var v T
	if err := rec.Decode(&v); err != nil {
		c.logger.Error("stored record unreadable",
			zap.String("collection", c.schema.Collection),
			zap.String("key", rec.Text(c.schema.KeyField)),
			zap.Error(err))
		return v, fmt.Errorf("%w: %s %q: %w", persistence.ErrRecordUnreadable, c.schema.Collection, rec.Text(c.schema.KeyField), err)
	}
	return v, nil
}

// decodeInput checks a record built from caller input.
func (c *Collection[T]) decodeInput(rec persistence.Record) (T, error) {
	var v T
	if err := rec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRecord, c.schema.Collection, err)
	}
	return v, nil
}

func (c *Collection[T]) notFound(key string) error {
	return fmt.Errorf("%w: %s %q", domain.ErrNotFound, c.schema.KeyField, key)
}

// publish runs after the change is on disk; a failing subscriber cannot undo it.
func (c *Collection[T]) publish(ctx context.Context, typ events.EventType, key string, fields []string) {
	if c.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Collection: c.schema.Collection,
		Key:        key,
		Timestamp:  c.now().UTC(),
		Fields:     fields,
	}
	if err := c.dispatcher.Publish(context.WithoutCancel(ctx), event); err != nil {
		c.logger.Warn("event handler failed",
			zap.String("event", string(typ)),
			zap.String("collection", c.schema.Collection),
			zap.String("key", key),
			zap.Error(err))
	}
}

func fieldNames(p domain.Patch) []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
