package screens

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type SubscriptionStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Expired int `json:"expired"`
}

type SubscriptionsScreen struct {
	*listScreen[domain.PatientPlanSubscription, domain.PatientPlanSubscription]
	planID string
}

// Subscriptions lists every subscription, or only those of planID when set.
func (f *Factory) Subscriptions(planID string) *SubscriptionsScreen {
	repo := f.backend.Subscriptions()

	fetch := repo.List
	if planID != "" {
		fetch = func(ctx context.Context) ([]domain.PatientPlanSubscription, error) {
			return repo.ListBy(ctx, domain.ScopePlan, planID)
		}
	}

	return &SubscriptionsScreen{
		listScreen: newListScreen(f, repo, listview.Options[domain.PatientPlanSubscription]{
			Name:       "patient-plan-subscriptions",
			Fetch:      fetch,
			Searchable: domain.PatientPlanSubscription.SearchText,
		}, "Are you sure you want to delete this subscription?", domain.ResourcePaymentPlans, domain.ResourcePatients),
		planID: planID,
	}
}

func (s *SubscriptionsScreen) PlanID() string {
	return s.planID
}

func (s *SubscriptionsScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.PatientPlanSubscription, SubscriptionStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	subs := s.list.Items()
	stats := SubscriptionStats{Total: len(subs)}
	for _, sub := range subs {
		if sub.IsActive() {
			stats.Active++
		}
		if sub.IsExpired() {
			stats.Expired++
		}
	}
	return viewOf(s.listScreen, rows, info, stats), nil
}

func (s *SubscriptionsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}
