package workspace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScreen struct {
	mu        sync.Mutex
	name      string
	resources []domain.Resource
	mounts    int
	fetches   int
	stale     bool
}

func newStubScreen(name string, resources ...domain.Resource) *stubScreen {
	return &stubScreen{name: name, resources: resources}
}

func (s *stubScreen) Name() string                 { return s.name }
func (s *stubScreen) Resources() []domain.Resource { return s.resources }

func (s *stubScreen) Mount(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounts++
	s.fetches++
	s.stale = false
}

func (s *stubScreen) Refresh(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.fetches++
		s.stale = false
	}
}

func (s *stubScreen) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
}

func (s *stubScreen) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

type otherScreen struct{ *stubScreen }

// slowScreen blocks in Mount until release is closed.
type slowScreen struct {
	*stubScreen
	mounting chan struct{}
	release  chan struct{}
}

func (s slowScreen) Mount(ctx context.Context) {
	close(s.mounting)
	<-s.release
	s.stubScreen.Mount(ctx)
}

func TestOpen_ReusesScreenForSameKey(t *testing.T) {
	w := newWorkspace(logger.NewDiscardLogger())
	ctx := context.Background()

	builds := 0
	build := func() *stubScreen {
		builds++
		return newStubScreen("doctors", domain.ResourceDoctors)
	}

	first := Open(ctx, w, "doctors", build)
	second := Open(ctx, w, "doctors", build)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, first.mounts)
	assert.Equal(t, 1, first.fetches, "a fresh screen is not re-fetched")
}

func TestOpen_NewKeyDiscardsPreviousScreen(t *testing.T) {
	w := newWorkspace(logger.NewDiscardLogger())
	ctx := context.Background()

	doctors := Open(ctx, w, "doctors", func() *stubScreen { return newStubScreen("doctors") })
	patients := Open(ctx, w, "patients", func() *stubScreen { return newStubScreen("patients") })
	assert.NotSame(t, doctors, patients)

	key, current := w.Current()
	assert.Equal(t, "patients", key)
	assert.Same(t, patients, current)

	again := Open(ctx, w, "doctors", func() *stubScreen { return newStubScreen("doctors") })
	assert.NotSame(t, doctors, again, "returning to a screen starts from a fresh collection")
	assert.Equal(t, 1, again.mounts)
}

func TestOpen_SameKeyDifferentTypeRebuilds(t *testing.T) {
	w := newWorkspace(logger.NewDiscardLogger())
	ctx := context.Background()

	Open(ctx, w, "x", func() *stubScreen { return newStubScreen("x") })
	other := Open(ctx, w, "x", func() otherScreen { return otherScreen{newStubScreen("x")} })
	assert.Equal(t, 1, other.mounts)
}

func TestWorkspace_Close(t *testing.T) {
	w := newWorkspace(logger.NewDiscardLogger())
	Open(context.Background(), w, "coupons", func() *stubScreen { return newStubScreen("coupons") })

	w.Close()
	key, current := w.Current()
	assert.Empty(t, key)
	assert.Nil(t, current)
}

func TestRegistry_MarkStaleRefetchesOnNextOpen(t *testing.T) {
	r, err := NewRegistryWithSize(4, logger.NewDiscardLogger())
	require.NoError(t, err)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	withdrawals := Open(ctx, r.Get(alice), "withdrawals", func() *stubScreen {
		return newStubScreen("withdrawals", domain.ResourceWithdrawals, domain.ResourceDoctors)
	})
	coupons := Open(ctx, r.Get(bob), "coupons", func() *stubScreen {
		return newStubScreen("coupons", domain.ResourceCoupons)
	})

	assert.Equal(t, 1, r.MarkStale(ctx, domain.ResourceDoctors))
	assert.True(t, withdrawals.Stale())
	assert.False(t, coupons.Stale())

	reopened := Open(ctx, r.Get(alice), "withdrawals", func() *stubScreen {
		t.Fatal("stale screen must be refreshed, not rebuilt")
		return nil
	})
	assert.Same(t, withdrawals, reopened)
	assert.Equal(t, 2, reopened.fetches)
	assert.False(t, reopened.Stale())

	assert.Zero(t, r.MarkStale(ctx, domain.ResourceReviews))
}

func TestRegistry_MarkStaleDoesNotWaitForMount(t *testing.T) {
	r, err := NewRegistryWithSize(4, logger.NewDiscardLogger())
	require.NoError(t, err)
	ctx := context.Background()

	id := uuid.New()
	coupons := Open(ctx, r.Get(id), "coupons", func() *stubScreen {
		return newStubScreen("coupons", domain.ResourceCoupons)
	})

	slow := slowScreen{
		stubScreen: newStubScreen("reviews", domain.ResourceReviews),
		mounting:   make(chan struct{}),
		release:    make(chan struct{}),
	}
	opened := make(chan struct{})
	go func() {
		defer close(opened)
		Open(ctx, r.Get(id), "reviews", func() slowScreen { return slow })
	}()
	<-slow.mounting

	marked := make(chan int, 1)
	go func() { marked <- r.MarkStale(ctx, domain.ResourceCoupons) }()

	select {
	case n := <-marked:
		assert.Equal(t, 1, n, "the previous screen stays active until the new one is mounted")
		assert.True(t, coupons.Stale())
	case <-time.After(2 * time.Second):
		t.Fatal("MarkStale blocked behind a mounting screen")
	}

	close(slow.release)
	<-opened
	key, current := r.Get(id).Current()
	assert.Equal(t, "reviews", key)
	assert.Equal(t, slow, current)
}

func TestRegistry_GetIsStablePerSession(t *testing.T) {
	r, err := NewRegistryWithSize(2, logger.NewDiscardLogger())
	require.NoError(t, err)

	id := uuid.New()
	assert.Same(t, r.Get(id), r.Get(id))

	r.Get(uuid.New())
	r.Get(uuid.New())
	assert.Equal(t, 2, r.Len(), "least recently used workspace is evicted")

	r.Drop(id)
	assert.LessOrEqual(t, r.Len(), 2)
}

func TestNewRegistryWithSize_RejectsZero(t *testing.T) {
	_, err := NewRegistryWithSize(0, logger.NewDiscardLogger())
	assert.Error(t, err)
}
