package dashboard

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"golang.org/x/sync/errgroup"
)

// StatsPort is the slice of the backend the dashboard reads.
type StatsPort interface {
	Stats(ctx context.Context, resource domain.Resource) (domain.ResourceStats, error)
}

// Service implements in.DashboardUseCase.
type Service struct {
	backend StatsPort
	logger  out.LoggerPort
}

func NewService(backend StatsPort, logger out.LoggerPort) *Service {
	return &Service{
		backend: backend,
		logger:  logger.WithModule("DashboardService"),
	}
}

type statsCall struct {
	resource domain.Resource
	pick     func(domain.ResourceStats) int
	into     func(*domain.DashboardStats, int)
}

var statsCalls = []statsCall{
	{
		resource: domain.ResourceUsers,
		pick:     func(s domain.ResourceStats) int { return s.TotalUsers },
		into:     func(d *domain.DashboardStats, v int) { d.TotalUsers = v },
	},
	{
		resource: domain.ResourceDoctors,
		pick:     func(s domain.ResourceStats) int { return s.TotalDoctors },
		into:     func(d *domain.DashboardStats, v int) { d.TotalDoctors = v },
	},
	{
		resource: domain.ResourcePatients,
		pick:     func(s domain.ResourceStats) int { return s.TotalPatients },
		into:     func(d *domain.DashboardStats, v int) { d.TotalPatients = v },
	},
	{
		resource: domain.ResourceCoupons,
		pick:     func(s domain.ResourceStats) int { return s.ActiveCoupons },
		into:     func(d *domain.DashboardStats, v int) { d.ActiveCoupons = v },
	},
	{
		resource: domain.ResourcePaymentPlans,
		pick:     func(s domain.ResourceStats) int { return s.TotalPlans },
		into:     func(d *domain.DashboardStats, v int) { d.TotalPlans = v },
	},
	{
		resource: domain.ResourcePatientPlanSubscriptions,
		pick:     func(s domain.ResourceStats) int { return s.ActiveSubscriptions },
		into:     func(d *domain.DashboardStats, v int) { d.ActiveSubscriptions = v },
	},
}

// Stats issues the six stats calls concurrently. When any fails the
// result is all zeros; partial values are never returned.
func (s *Service) Stats(ctx context.Context) (domain.DashboardStats, error) {
	values := make([]int, len(statsCalls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range statsCalls {
		g.Go(func() error {
			stats, err := s.backend.Stats(gctx, call.resource)
			if err != nil {
				return err
			}
			values[i] = call.pick(stats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard.stats.failed", out.LogFields{
			"error": err.Error(),
		})
		return domain.DashboardStats{}, err
	}

	var result domain.DashboardStats
	for i, call := range statsCalls {
		call.into(&result, values[i])
	}
	return result, nil
}
