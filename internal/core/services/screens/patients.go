package screens

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type PatientStats struct {
	Total  int `json:"total"`
	Male   int `json:"male"`
	Female int `json:"female"`
}

type PatientsScreen struct {
	*listScreen[domain.Patient, domain.Patient]
}

func (f *Factory) Patients() *PatientsScreen {
	repo := f.backend.Patients()
	return &PatientsScreen{newListScreen(f, repo, listview.Options[domain.Patient]{
		Name:       "patients",
		Fetch:      repo.List,
		Searchable: domain.Patient.SearchText,
	}, "Are you sure you want to delete this patient?")}
}

func (s *PatientsScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.Patient, PatientStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	patients := s.list.Items()
	stats := PatientStats{Total: len(patients)}
	for _, p := range patients {
		switch {
		case p.HasGender("male"):
			stats.Male++
		case p.HasGender("female"):
			stats.Female++
		}
	}
	return viewOf(s.listScreen, rows, info, stats), nil
}

func (s *PatientsScreen) Create(ctx context.Context, draft domain.PatientDraft) error {
	return s.create(ctx, "create patient", draft.Payload())
}

func (s *PatientsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}
