package session

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
)

// Guard gates protected content. It starts unknown and settles on the
// first Check; later changes to the markers need a new Guard.
type Guard struct {
	session *Context
	once    sync.Once
	mu      sync.RWMutex
	state   domain.SessionState
}

func NewGuard(session *Context) *Guard {
	return &Guard{
		session: session,
		state:   domain.SessionUnknown,
	}
}

func (g *Guard) State() domain.SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Guard) Check(ctx context.Context) domain.SessionState {
	g.once.Do(func() {
		next := domain.SessionUnauthenticated
		if g.session.Authenticated(ctx) {
			next = domain.SessionAuthenticated
		}
		g.mu.Lock()
		g.state = next
		g.mu.Unlock()
	})
	return g.State()
}

// Allow reports whether the wrapped content may render.
func (g *Guard) Allow(ctx context.Context) bool {
	return g.Check(ctx) == domain.SessionAuthenticated
}
