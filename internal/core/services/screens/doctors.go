package screens

import (
	"context"
	"fmt"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type DoctorStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`

	// AverageRating is the mean avg_rating with one decimal; unrated doctors count as 0.
	AverageRating string `json:"averageRating"`
}

func countDoctors(doctors []domain.Doctor) DoctorStats {
	stats := DoctorStats{Total: len(doctors), AverageRating: "0.0"}
	var sum float64
	for _, d := range doctors {
		if d.AvgRating != nil {
			sum += *d.AvgRating
		}
		switch d.Approval() {
		case domain.ApprovalPending:
			stats.Pending++
		case domain.ApprovalApproved:
			stats.Approved++
		case domain.ApprovalRejected:
			stats.Rejected++
		}
	}
	if len(doctors) > 0 {
		stats.AverageRating = fmt.Sprintf("%.1f", sum/float64(len(doctors)))
	}
	return stats
}

type DoctorsScreen struct {
	*listScreen[domain.Doctor, domain.Doctor]
}

func (f *Factory) Doctors() *DoctorsScreen {
	repo := f.backend.Doctors()
	return &DoctorsScreen{newListScreen(f, repo, listview.Options[domain.Doctor]{
		Name:       "doctors",
		Fetch:      repo.List,
		Searchable: domain.Doctor.SearchText,
		Filters: []listview.Filter[domain.Doctor]{
			statusFilter(func(d domain.Doctor) string { return string(d.Approval()) }),
		},
	}, "Are you sure you want to delete this doctor?")}
}

func (s *DoctorsScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.Doctor, DoctorStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}
	return viewOf(s.listScreen, rows, info, countDoctors(s.list.Items())), nil
}

func (s *DoctorsScreen) Create(ctx context.Context, draft domain.DoctorDraft) error {
	return s.create(ctx, "create doctor", draft.Payload())
}

func (s *DoctorsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}
