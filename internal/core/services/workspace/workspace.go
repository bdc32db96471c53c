package workspace

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/screens"
)

// Workspace holds the single active screen of one browser session.
// opening serializes Open calls, which may block on the backend; mu only
// guards key and screen, so Current never waits on a fetch.
type Workspace struct {
	opening sync.Mutex
	mu      sync.RWMutex
	key     string
	screen  screens.Screen
	logger  out.LoggerPort
}

func newWorkspace(logger out.LoggerPort) *Workspace {
	return &Workspace{logger: logger}
}

// Open returns the active screen when key matches it, refreshing it if it
// went stale. Otherwise it builds and mounts a new screen, discarding the
// previous one with its collection.
func Open[S screens.Screen](ctx context.Context, w *Workspace, key string, build func() S) S {
	w.opening.Lock()
	defer w.opening.Unlock()

	activeKey, active := w.Current()
	if activeKey == key {
		if current, ok := active.(S); ok {
			current.Refresh(ctx)
			return current
		}
	}

	next := build()
	next.Mount(ctx)

	w.mu.Lock()
	if w.screen != nil {
		w.logger.Debug("workspace.screen.discarded", out.LogFields{
			"screen": w.key,
		})
	}
	w.key = key
	w.screen = next
	w.mu.Unlock()

	w.logger.Debug("workspace.screen.opened", out.LogFields{
		"screen": key,
	})
	return next
}

// Current returns the active screen, if any.
func (w *Workspace) Current() (string, screens.Screen) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.key, w.screen
}

func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.key = ""
	w.screen = nil
}
