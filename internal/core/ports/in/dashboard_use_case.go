package in

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
)

type DashboardUseCase interface {
	// Stats is all-or-nothing: any failed call yields zero values
	Stats(ctx context.Context) (domain.DashboardStats, error)
}
