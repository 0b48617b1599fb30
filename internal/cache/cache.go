// Package cache holds the two task collections fetched from the server.
// The cache is never patched in place: after any mutating action the
// orchestrator re-fetches both collections and replaces them together, so
// a stale personal list is never shown against a fresh family list.
package cache

import (
	"sync"

	"hunnydu/internal/service"
)

// TaskCache holds the "mine" and "family" task sequences.
type TaskCache struct {
	mu     sync.RWMutex
	mine   []service.Task
	family []service.Task
}

// New creates an empty TaskCache.
func New() *TaskCache {
	return &TaskCache{}
}

// Replace swaps in both collections atomically.
func (c *TaskCache) Replace(mine, family []service.Task) {
	mine = append([]service.Task(nil), mine...)
	family = append([]service.Task(nil), family...)

	c.mu.Lock()
	c.mine = mine
	c.family = family
	c.mu.Unlock()
}

// Snapshot returns copies of both collections, in server order.
func (c *TaskCache) Snapshot() (mine, family []service.Task) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]service.Task(nil), c.mine...),
		append([]service.Task(nil), c.family...)
}

// Clear drops both collections. Used on logout and forced logout.
func (c *TaskCache) Clear() {
	c.mu.Lock()
	c.mine = nil
	c.family = nil
	c.mu.Unlock()
}
