package workspace

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/in"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/screens"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

var _ in.RefreshUseCase = (*Registry)(nil)

// Registry keeps one Workspace per browser session, bounded by an LRU.
// It implements in.RefreshUseCase.
type Registry struct {
	workspaces *lru.Cache[uuid.UUID, *Workspace]
	logger     out.LoggerPort
}

func NewRegistry(cfg *config.Config, logger out.LoggerPort) (*Registry, error) {
	return NewRegistryWithSize(cfg.Workspace.Capacity, logger)
}

func NewRegistryWithSize(size int, logger out.LoggerPort) (*Registry, error) {
	logger = logger.WithModule("Workspace")

	workspaces, err := lru.New[uuid.UUID, *Workspace](size)
	if err != nil {
		logger.Error("workspace.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  size,
		})
		return nil, err
	}

	return &Registry{
		workspaces: workspaces,
		logger:     logger,
	}, nil
}

// Get returns the session's workspace, creating it on first use.
func (r *Registry) Get(sessionID uuid.UUID) *Workspace {
	if w, ok := r.workspaces.Get(sessionID); ok {
		return w
	}

	w := newWorkspace(r.logger.WithFields(out.LogFields{
		"sessionId": sessionID,
	}))
	if existing, found, _ := r.workspaces.PeekOrAdd(sessionID, w); found {
		return existing
	}
	return w
}

// Drop discards the session's workspace and its screen.
func (r *Registry) Drop(sessionID uuid.UUID) {
	r.workspaces.Remove(sessionID)
}

// MarkStale flags every open screen that shows resource. The screens
// re-fetch on their next read.
func (r *Registry) MarkStale(ctx context.Context, resource domain.Resource) int {
	marked := 0
	for _, sessionID := range r.workspaces.Keys() {
		w, ok := r.workspaces.Peek(sessionID)
		if !ok {
			continue
		}
		key, screen := w.Current()
		if screen == nil || !screens.Shows(screen, resource) {
			continue
		}
		screen.Invalidate()
		marked++

		r.logger.Debug("workspace.screen.stale", out.LogFields{
			"sessionId": sessionID,
			"screen":    key,
			"resource":  resource,
		})
	}
	return marked
}

func (r *Registry) Len() int {
	return r.workspaces.Len()
}
