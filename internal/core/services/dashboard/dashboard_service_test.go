package dashboard

import (
	"context"
	"sync"
	"testing"

	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	mu      sync.Mutex
	failOn  domain.Resource
	called  []domain.Resource
	payload map[domain.Resource]domain.ResourceStats
}

func (f *fakeStats) Stats(ctx context.Context, resource domain.Resource) (domain.ResourceStats, error) {
	f.mu.Lock()
	f.called = append(f.called, resource)
	f.mu.Unlock()

	if resource == f.failOn {
		return domain.ResourceStats{}, domain.NewHTTPError(500, "stats unavailable")
	}
	return f.payload[resource], nil
}

func fullPayload() map[domain.Resource]domain.ResourceStats {
	return map[domain.Resource]domain.ResourceStats{
		domain.ResourceUsers:                    {TotalUsers: 3},
		domain.ResourceDoctors:                  {TotalDoctors: 12},
		domain.ResourcePatients:                 {TotalPatients: 40},
		domain.ResourceCoupons:                  {ActiveCoupons: 5},
		domain.ResourcePaymentPlans:             {TotalPlans: 4},
		domain.ResourcePatientPlanSubscriptions: {ActiveSubscriptions: 9},
	}
}

func TestService_StatsAllSucceed(t *testing.T) {
	backend := &fakeStats{payload: fullPayload()}
	svc := NewService(backend, logger.NewDiscardLogger())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{
		TotalUsers:          3,
		TotalDoctors:        12,
		TotalPatients:       40,
		ActiveCoupons:       5,
		TotalPlans:          4,
		ActiveSubscriptions: 9,
	}, stats)
	assert.Len(t, backend.called, 6)
}

func TestService_StatsAnyFailureLeavesZeros(t *testing.T) {
	for _, failing := range []domain.Resource{
		domain.ResourceUsers,
		domain.ResourceCoupons,
		domain.ResourcePatientPlanSubscriptions,
	} {
		t.Run(string(failing), func(t *testing.T) {
			backend := &fakeStats{payload: fullPayload(), failOn: failing}
			svc := NewService(backend, logger.NewDiscardLogger())

			stats, err := svc.Stats(context.Background())
			assert.Error(t, err)
			assert.Equal(t, domain.DashboardStats{}, stats)
		})
	}
}
