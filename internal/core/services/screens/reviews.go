package screens

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type ReviewsScreen struct {
	*listScreen[domain.Review, domain.Review]
}

func (f *Factory) Reviews() *ReviewsScreen {
	repo := f.backend.Reviews()
	return &ReviewsScreen{newListScreen(f, repo, listview.Options[domain.Review]{
		Name:       "reviews",
		Fetch:      repo.List,
		Searchable: domain.Review.SearchText,
	}, "Are you sure you want to delete this review?")}
}

func (s *ReviewsScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.Review, domain.ReviewStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}
	return viewOf(s.listScreen, rows, info, domain.SummarizeReviews(s.list.Items())), nil
}

func (s *ReviewsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}
