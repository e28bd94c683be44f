package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kamal-hamza/alib-cli/pkg/logger"
)

const defaultTTL = 30 * time.Second

// Config controls freshness and read retries
type Config struct {
	TTL         time.Duration
	ReadRetries int
	// Retryable decides whether a failed read gets another attempt.
	// Nil means every error except cancellation.
	Retryable func(error) bool
	Now       func() time.Time
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a keyed server-state cache. Concurrent fetches of one key share
// a single call, values go stale after TTL, and Invalidate drops keys by
// prefix so the next read refetches.
type Cache struct {
	log      *logger.Logger
	cfg      Config
	group    singleflight.Group
	mu       sync.RWMutex
	entries  map[string]entry
	inflight map[string]bool
	epoch    uint64
}

func New(log *logger.Logger, cfg Config) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.ReadRetries < 0 {
		cfg.ReadRetries = 0
	}
	if cfg.Retryable == nil {
		cfg.Retryable = func(err error) bool {
			return !errors.Is(err, context.Canceled)
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Cache{
		log:      log.With("component", "QueryCache"),
		cfg:      cfg,
		entries:  make(map[string]entry),
		inflight: make(map[string]bool),
	}
}

// Fetch returns the fresh cached value for key or runs fn to load it
func (c *Cache) Fetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	c.mu.RLock()
	startEpoch := c.epoch
	c.mu.RUnlock()

	ch := c.group.DoChan(key, func() (any, error) {
		c.mu.Lock()
		c.inflight[key] = true
		c.mu.Unlock()
		defer func() {
			c.mu.Lock()
			delete(c.inflight, key)
			c.mu.Unlock()
		}()

		v, err := c.load(ctx, key, fn)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.epoch == startEpoch {
			c.entries[key] = entry{value: v, fetchedAt: c.cfg.Now()}
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.log.Debug("query shared", "key", key)
		}
		return res.Val, res.Err
	}
}

func (c *Cache) load(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.ReadRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if !c.cfg.Retryable(err) {
			break
		}
		if attempt < c.cfg.ReadRetries {
			c.log.Info("query failed, retrying", "key", key, "attempt", attempt+1, "error", err.Error())
		}
	}
	return nil, lastErr
}

func (c *Cache) fresh(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.cfg.Now().Sub(e.fetchedAt) >= c.cfg.TTL {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops every key starting with one of prefixes. Loads already
// in flight will not store their result.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	dropped := 0
	for key := range c.entries {
		if hasAnyPrefix(key, prefixes) {
			delete(c.entries, key)
			dropped++
		}
	}
	for key := range c.inflight {
		if hasAnyPrefix(key, prefixes) {
			c.group.Forget(key)
		}
	}
	c.log.Debug("queries invalidated", "prefixes", prefixes, "dropped", dropped)
}

// Len returns the number of cached entries, fresh or stale
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
