package session

import (
	"context"
	"testing"

	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUSessionStore_SetGetRemove(t *testing.T) {
	store, err := NewLRUSessionStoreWithSize(10, logger.NewDiscardLogger())
	require.NoError(t, err)

	ctx := context.Background()
	id := uuid.New()

	_, ok := store.Get(ctx, id, "isAuthenticated")
	assert.False(t, ok)

	store.Set(ctx, id, "isAuthenticated", "true")
	store.Set(ctx, id, "user", `{"email":"a@b.c"}`)
	store.Set(ctx, id, "language", "ar")

	v, ok := store.Get(ctx, id, "isAuthenticated")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	store.Remove(ctx, id, "isAuthenticated", "user")
	_, ok = store.Get(ctx, id, "user")
	assert.False(t, ok)

	lang, ok := store.Get(ctx, id, "language")
	assert.True(t, ok)
	assert.Equal(t, "ar", lang)

	store.Remove(ctx, id, "language")
	assert.Equal(t, 0, store.Len())
}

func TestLRUSessionStore_SessionsAreIsolated(t *testing.T) {
	store, err := NewLRUSessionStoreWithSize(10, logger.NewDiscardLogger())
	require.NoError(t, err)

	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	store.Set(ctx, a, "user", "alice")

	_, ok := store.Get(ctx, b, "user")
	assert.False(t, ok)
}

func TestLRUSessionStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store, err := NewLRUSessionStoreWithSize(2, logger.NewDiscardLogger())
	require.NoError(t, err)

	ctx := context.Background()
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	store.Set(ctx, first, "user", "1")
	store.Set(ctx, second, "user", "2")
	store.Set(ctx, third, "user", "3")

	_, ok := store.Get(ctx, first, "user")
	assert.False(t, ok)
	_, ok = store.Get(ctx, third, "user")
	assert.True(t, ok)
}

func TestNewLRUSessionStore_RejectsInvalidSize(t *testing.T) {
	_, err := NewLRUSessionStoreWithSize(0, logger.NewDiscardLogger())
	assert.Error(t, err)
}
