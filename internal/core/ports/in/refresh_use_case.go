package in

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
)

type RefreshUseCase interface {
	// MarkStale flags every open screen showing resource for re-fetch
	MarkStale(ctx context.Context, resource domain.Resource) int
}
