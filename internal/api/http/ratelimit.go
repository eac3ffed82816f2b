package http

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/architdhariwal/sms-backend/pkg/util"
)

// LoginLimiterConfig sets the per-client login budget.
type LoginLimiterConfig struct {
	PerMinute       int
	Burst           int
	CleanupInterval time.Duration
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles login attempts per client IP.
type LoginLimiter struct {
	limit  rate.Limit
	burst  int
	idle   time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter starts a limiter and its background cleanup. A
// non-positive PerMinute disables throttling.
func NewLoginLimiter(cfg LoginLimiterConfig, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	limit := rate.Inf
	if cfg.PerMinute > 0 {
		limit = rate.Limit(float64(cfg.PerMinute) / 60.0)
	}
	ll := &LoginLimiter{
		limit:   limit,
		burst:   cfg.Burst,
		idle:    cfg.CleanupInterval,
		logger:  logger,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go ll.cleanupLoop()
	return ll
}

// Stop ends the cleanup goroutine.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Handle rejects a request with 429 once the client's budget is spent.
func (l *LoginLimiter) Handle(c *fiber.Ctx) error {
	ip := c.IP()
	if l.get(ip).Allow() {
		return c.Next()
	}
	l.logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("limit_type", "login"))
	if l.limit > 0 && l.limit != rate.Inf {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(1/float64(l.limit))+1))
	}
	return apperrors.NewTooManyRequests("too many login attempts, try again later")
}

// Count returns the number of tracked clients.
func (l *LoginLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *LoginLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter
}

func (l *LoginLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now().Add(-l.idle))
		case <-l.stopCh:
			return
		}
	}
}

func (l *LoginLimiter) cleanup(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, cl := range l.clients {
		if cl.lastAccess.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}
