package cache

import (
	"sync"
	"time"

	"tradethrust/internal/model"
)

// Cache stores analysis results keyed by symbol and data recency, so a
// repeat request over the same bars skips recomputation. The analysis
// pipeline itself stays stateless; callers inject a Cache where they want
// memoization.
type Cache interface {
	Get(key string) (*model.AnalysisResult, bool)
	Put(key string, result *model.AnalysisResult)
}

type entry struct {
	result  *model.AnalysisResult
	expires time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates a cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *Memory) Get(key string) (*model.AnalysisResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expires) {
		return nil, false
	}
	return e.result, true
}

func (c *Memory) Put(key string, result *model.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{result: result, expires: c.now().Add(c.ttl)}
	// Drop whatever has expired while we hold the lock.
	for k, e := range c.entries {
		if c.now().After(e.expires) {
			delete(c.entries, k)
		}
	}
}
