package screens

import (
	"context"
	"time"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type CouponRow struct {
	domain.Coupon
	Status domain.CouponState `json:"state"`
}

type CouponsScreen struct {
	*listScreen[domain.Coupon, domain.Coupon]
	backend out.BackendPort
	now     func() time.Time
}

func (f *Factory) Coupons() *CouponsScreen {
	repo := f.backend.Coupons()
	s := &CouponsScreen{backend: f.backend, now: f.now}
	s.listScreen = newListScreen(f, repo, listview.Options[domain.Coupon]{
		Name:       "coupons",
		Fetch:      repo.List,
		Searchable: domain.Coupon.SearchText,
		Filters: []listview.Filter[domain.Coupon]{
			statusFilter(func(c domain.Coupon) string { return string(c.State(f.now())) }),
		},
	}, "Are you sure you want to delete this coupon?")
	return s
}

func (s *CouponsScreen) View(ctx context.Context, q listview.Query) (*ListView[CouponRow, domain.CouponStats], error) {
	coupons, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rows := make([]CouponRow, len(coupons))
	for i, c := range coupons {
		rows[i] = CouponRow{Coupon: c, Status: c.State(now)}
	}
	return viewOf(s.listScreen, rows, info, domain.CountCoupons(s.list.Items(), now)), nil
}

// Create validates the discount locally; an invalid draft never reaches
// the backend.
func (s *CouponsScreen) Create(ctx context.Context, draft domain.CouponDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return s.create(ctx, "create coupon", draft.Payload())
}

func (s *CouponsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}

// Validate checks a code for a user; the backend envelope is returned as is.
func (s *CouponsScreen) Validate(ctx context.Context, code, userID string) (out.Result, error) {
	return s.backend.ValidateCoupon(ctx, code, userID)
}

func (s *CouponsScreen) MarkUsed(ctx context.Context, id, userID string) error {
	_, err := s.mutations.Run(ctx, "use coupon", func(ctx context.Context) (out.Result, error) {
		return s.backend.UseCoupon(ctx, id, userID)
	})
	return err
}

func (s *CouponsScreen) Lookup(ctx context.Context, code string) (*CouponRow, error) {
	coupon, err := s.backend.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, domain.ErrNotFound
	}
	return &CouponRow{Coupon: *coupon, Status: coupon.State(s.now())}, nil
}
