// Package cache memoizes derived values in process memory.
package cache

import (
	"context"
	"sync"
	"time"

	"expensetracker/internal/log"
)

// Cache is a keyed store of derived values.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Delete(key K)
	Purge()
	Len() int
}

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep() int
}

// Manager sweeps registered caches on an interval until stopped.
type Manager struct {
	mu       sync.Mutex
	caches   map[string]Sweeper
	interval time.Duration
	logger   *log.Logger
}

func NewManager(interval time.Duration, logger *log.Logger) *Manager {
	return &Manager{
		caches:   make(map[string]Sweeper),
		interval: interval,
		logger:   logger.WithComponent(log.ComponentCache),
	}
}

// Register adds a cache under name, replacing any earlier one.
func (m *Manager) Register(name string, c Sweeper) {
	m.mu.Lock()
	m.caches[name] = c
	m.mu.Unlock()
}

// SweepAll runs one sweep over every registered cache.
func (m *Manager) SweepAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for name, c := range m.caches {
		n := c.Sweep()
		if n > 0 {
			m.logger.Debug("Swept expired cache entries", "cache", name, log.FieldCount, n)
		}
		total += n
	}
	return total
}

// Run sweeps until ctx is done. A non-positive interval disables sweeping.
func (m *Manager) Run(ctx context.Context) error {
	if m.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.SweepAll()
		case <-ctx.Done():
			return nil
		}
	}
}
