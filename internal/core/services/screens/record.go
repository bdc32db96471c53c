package screens

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
)

// record holds the single entity of a detail screen.
type record[T any] struct {
	repo   out.Repository[T]
	id     string
	logger out.LoggerPort

	mu     sync.RWMutex
	value  *T
	loaded bool
	stale  bool
}

func newRecord[T any](repo out.Repository[T], id string, logger out.LoggerPort) *record[T] {
	return &record[T]{repo: repo, id: id, logger: logger}
}

// Mount loads the entity; failure is logged and leaves it unset.
func (r *record[T]) Mount(ctx context.Context) {
	value, err := r.repo.Get(ctx, r.id)
	if err != nil {
		r.logger.Error("screens.record.load.failed", out.LogFields{
			"resource": r.repo.Resource(),
			"id":       r.id,
			"error":    err.Error(),
		})
		value = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
	r.loaded = true
	r.stale = false
}

func (r *record[T]) Refresh(ctx context.Context) {
	r.mu.RLock()
	needed := !r.loaded || r.stale
	r.mu.RUnlock()

	if needed {
		r.Mount(ctx)
	}
}

func (r *record[T]) Invalidate() {
	r.mu.Lock()
	r.stale = true
	r.mu.Unlock()
}

func (r *record[T]) Stale() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale
}

// Get returns a copy of the entity or ErrNotFound when it is unset.
func (r *record[T]) Get() (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	if r.value == nil {
		return zero, domain.ErrNotFound
	}
	return *r.value, nil
}

func (r *record[T]) Patch(apply func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.value == nil {
		return
	}
	next := *r.value
	apply(&next)
	r.value = &next
}
