package session

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/google/uuid"
)

// Context is the explicit session state of one browser session, backed
// by the store port.
type Context struct {
	id            uuid.UUID
	store         out.SessionStorePort
	defaultLocale domain.Locale
}

func NewContext(id uuid.UUID, store out.SessionStorePort, defaultLocale domain.Locale) *Context {
	return &Context{
		id:            id,
		store:         store,
		defaultLocale: domain.ParseLocale(string(defaultLocale)),
	}
}

func (c *Context) ID() uuid.UUID {
	return c.id
}

// Authenticated needs both markers; their content is not verified.
func (c *Context) Authenticated(ctx context.Context) bool {
	flag, ok := c.store.Get(ctx, c.id, domain.MarkerAuthenticated)
	if !ok || flag == "" {
		return false
	}
	user, ok := c.store.Get(ctx, c.id, domain.MarkerUser)
	return ok && user != ""
}

func (c *Context) User(ctx context.Context) (*domain.SessionUser, bool) {
	raw, ok := c.store.Get(ctx, c.id, domain.MarkerUser)
	if !ok || raw == "" {
		return nil, false
	}
	user, err := domain.DecodeSessionUser(raw)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (c *Context) signIn(ctx context.Context, user string) {
	c.store.Set(ctx, c.id, domain.MarkerUser, user)
	c.store.Set(ctx, c.id, domain.MarkerAuthenticated, "true")
}

func (c *Context) signOut(ctx context.Context) {
	c.store.Remove(ctx, c.id, domain.MarkerUser, domain.MarkerAuthenticated)
}

func (c *Context) Locale(ctx context.Context) domain.Locale {
	saved, ok := c.store.Get(ctx, c.id, domain.MarkerLanguage)
	if !ok {
		return c.defaultLocale
	}
	return domain.ParseLocale(saved)
}

func (c *Context) SetLocale(ctx context.Context, locale domain.Locale) domain.Locale {
	locale = domain.ParseLocale(string(locale))
	c.store.Set(ctx, c.id, domain.MarkerLanguage, string(locale))
	return locale
}
