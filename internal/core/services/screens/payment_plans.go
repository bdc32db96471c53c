package screens

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type PaymentPlanStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type PaymentPlansScreen struct {
	*listScreen[domain.PaymentPlan, domain.PaymentPlan]
}

func (f *Factory) PaymentPlans() *PaymentPlansScreen {
	repo := f.backend.PaymentPlans()
	return &PaymentPlansScreen{newListScreen(f, repo, listview.Options[domain.PaymentPlan]{
		Name:       "payment-plans",
		Fetch:      repo.List,
		Searchable: domain.PaymentPlan.SearchText,
	}, "Are you sure you want to delete this payment plan?")}
}

func (s *PaymentPlansScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.PaymentPlan, PaymentPlanStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	plans := s.list.Items()
	stats := PaymentPlanStats{Total: len(plans)}
	for _, p := range plans {
		if p.IsActiveOrDefault() {
			stats.Active++
		}
	}
	return viewOf(s.listScreen, rows, info, stats), nil
}

func (s *PaymentPlansScreen) Create(ctx context.Context, draft domain.PaymentPlanDraft) error {
	return s.create(ctx, "create payment plan", draft.Payload())
}

func (s *PaymentPlansScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}
