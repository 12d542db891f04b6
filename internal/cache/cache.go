// Package cache stores rendered dashboard payloads keyed by selection.
package cache

import (
	"context"
	"sync"
	"time"
)

type Cache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type Config struct {
	Backend  string        `envconfig:"INSIGHT_CACHE_BACKEND" default:"memory"`
	Addr     string        `envconfig:"INSIGHT_REDIS_ADDR" default:"127.0.0.1:6379"`
	Password string        `envconfig:"INSIGHT_REDIS_PASSWORD"`
	DB       int           `envconfig:"INSIGHT_REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"INSIGHT_CACHE_TTL" default:"10m"`
	Prefix   string        `envconfig:"INSIGHT_CACHE_PREFIX" default:"insight:"`
}

const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error         { return nil }
func (Noop) Close() error                                      { return nil }

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process cache with a fixed TTL. A zero TTL never expires.
// Expired entries are swept by Set at most once per TTL.
type Memory struct {
	mtx       sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	items     map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now, items: map[string]entry{}}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mtx.RLock()
	e, ok := m.items[key]
	m.mtx.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.mtx.Lock()
		delete(m.items, key)
		m.mtx.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	now := m.now()
	e := entry{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		e.expires = now.Add(m.ttl)
	}
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.ttl > 0 && now.Sub(m.lastSweep) >= m.ttl {
		m.sweep(now)
	}
	m.items[key] = e
	return nil
}

// Len counts held entries, expired ones included until the next sweep.
func (m *Memory) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.items)
}

func (m *Memory) sweep(now time.Time) {
	for k, e := range m.items {
		if now.After(e.expires) {
			delete(m.items, k)
		}
	}
	m.lastSweep = now
}

func (m *Memory) Close() error {
	return nil
}
