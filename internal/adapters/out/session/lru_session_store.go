package session

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// markers are the persisted string values of one browser session.
type markers map[string]string

// LRUSessionStore keeps session markers in memory. The least recently
// used session is evicted once capacity is reached, which logs it out.
type LRUSessionStore struct {
	cache  *lru.Cache[uuid.UUID, markers]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewLRUSessionStore(cfg *config.Config, logger out.LoggerPort) (*LRUSessionStore, error) {
	return NewLRUSessionStoreWithSize(cfg.Session.Capacity, logger)
}

func NewLRUSessionStoreWithSize(size int, logger out.LoggerPort) (*LRUSessionStore, error) {
	logger = logger.WithModule("SessionStore")

	cache, err := lru.NewWithEvict[uuid.UUID, markers](size, func(sessionID uuid.UUID, _ markers) {
		logger.Debug("session.evicted", out.LogFields{
			"sessionId": sessionID,
		})
	})
	if err != nil {
		logger.Error("session.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  size,
		})
		return nil, err
	}

	return &LRUSessionStore{
		cache:  cache,
		logger: logger,
	}, nil
}

func (s *LRUSessionStore) Get(ctx context.Context, sessionID uuid.UUID, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.cache.Get(sessionID)
	if !exists {
		return "", false
	}
	value, ok := entry[key]
	return value, ok
}

func (s *LRUSessionStore) Set(ctx context.Context, sessionID uuid.UUID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.cache.Get(sessionID)
	if !exists {
		entry = make(markers)
	}

	// copy on write so readers holding the old map never see a partial update
	next := make(markers, len(entry)+1)
	for k, v := range entry {
		next[k] = v
	}
	next[key] = value
	s.cache.Add(sessionID, next)

	s.logger.Debug("session.marker.set", out.LogFields{
		"sessionId": sessionID,
		"key":       key,
	})
}

func (s *LRUSessionStore) Remove(ctx context.Context, sessionID uuid.UUID, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.cache.Get(sessionID)
	if !exists {
		return
	}

	next := make(markers, len(entry))
	for k, v := range entry {
		next[k] = v
	}
	for _, key := range keys {
		delete(next, key)
	}

	if len(next) == 0 {
		s.cache.Remove(sessionID)
	} else {
		s.cache.Add(sessionID, next)
	}

	s.logger.Debug("session.marker.removed", out.LogFields{
		"sessionId": sessionID,
		"keys":      keys,
	})
}

func (s *LRUSessionStore) Len() int {
	return s.cache.Len()
}
