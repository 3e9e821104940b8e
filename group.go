package gohandoff

import (
	"sync"
)

// Group is an ordered set of workers that are joined together.
// Workers are joined in the order they were added, which only affects the
// order in which completion is observed: they all run concurrently.
type Group[T any] struct {
	name    string
	handles []*JoinHandle[T]
	mu      sync.RWMutex
}

// NewGroup creates a new, empty group with the given name
func NewGroup[T any](name string) *Group[T] {
	return &Group[T]{
		name:    name,
		handles: make([]*JoinHandle[T], 0),
	}
}

// Add adds an already spawned worker to this group
func (g *Group[T]) Add(handle *JoinHandle[T]) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.handles = append(g.handles, handle)
}

// Go spawns fn as a new worker and adds it to the group. The group name is
// used as the worker name unless opts set one.
func (g *Group[T]) Go(fn func(id WorkerID) T, opts ...SpawnOption) *JoinHandle[T] {
	opts = append([]SpawnOption{WithName(g.name)}, opts...)
	handle := Spawn(fn, opts...)
	g.Add(handle)
	return handle
}

// Name returns the group's name
func (g *Group[T]) Name() string {
	return g.name
}

// Count returns the number of workers in this group
func (g *Group[T]) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.handles)
}

// IDs returns the worker identities in the order they were added
func (g *Group[T]) IDs() []WorkerID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]WorkerID, len(g.handles))
	for i, h := range g.handles {
		out[i] = h.ID()
	}
	return out
}

// IsRunning returns true if any worker in the group is still running
func (g *Group[T]) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, h := range g.handles {
		if h.IsRunning() {
			return true
		}
	}
	return false
}

func (g *Group[T]) snapshot() []*JoinHandle[T] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*JoinHandle[T](nil), g.handles...)
}

// Wait joins every worker in order with MustJoin and returns their values.
// The first worker found to have panicked panics the caller; workers after
// it are not waited for.
func (g *Group[T]) Wait() []T {
	handles := g.snapshot()
	values := make([]T, 0, len(handles))
	for _, h := range handles {
		values = append(values, h.MustJoin())
	}
	return values
}

// JoinAll waits for every worker in order and returns all outcomes along
// with the first error seen. It never panics.
func (g *Group[T]) JoinAll() ([]Outcome[T], error) {
	handles := g.snapshot()
	outcomes := make([]Outcome[T], 0, len(handles))
	var firstErr error
	for _, h := range handles {
		o := h.Outcome()
		if o.Error != nil && firstErr == nil {
			firstErr = o.Error
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, firstErr
}
