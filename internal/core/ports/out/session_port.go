package out

import (
	"context"

	"github.com/google/uuid"
)

// SessionStorePort persists string markers per browser session.
type SessionStorePort interface {
	Get(ctx context.Context, sessionID uuid.UUID, key string) (string, bool)
	Set(ctx context.Context, sessionID uuid.UUID, key, value string)
	Remove(ctx context.Context, sessionID uuid.UUID, keys ...string)
}
