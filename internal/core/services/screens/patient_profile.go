package screens

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type PatientProfileView struct {
	Patient  domain.Patient                                        `json:"patient"`
	Bookings *ListView[domain.Booking, domain.BookingStatusCounts] `json:"bookings"`
}

type PatientProfileScreen struct {
	id       string
	patient  *record[domain.Patient]
	bookings *listScreen[domain.Booking, domain.Booking]
}

func (f *Factory) PatientProfile(id string) *PatientProfileScreen {
	bookings := f.backend.Bookings()

	return &PatientProfileScreen{
		id:      id,
		patient: newRecord(f.backend.Patients(), id, f.logger),
		bookings: newListScreen(f, bookings, listview.Options[domain.Booking]{
			Name: "patient-bookings",
			Fetch: func(ctx context.Context) ([]domain.Booking, error) {
				return bookings.ListBy(ctx, domain.ScopePatient, id)
			},
			Searchable: domain.Booking.PatientScopedSearchText,
			Filters:    []listview.Filter[domain.Booking]{statusFilter(bookingStatus)},
		}, "Are you sure you want to delete this booking?"),
	}
}

func (s *PatientProfileScreen) Name() string {
	return "patient:" + s.id
}

func (s *PatientProfileScreen) Resources() []domain.Resource {
	return []domain.Resource{domain.ResourcePatients, domain.ResourceBookings}
}

func (s *PatientProfileScreen) Mount(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.patient.Mount(ctx) }()
	go func() { defer wg.Done(); s.bookings.Mount(ctx) }()
	wg.Wait()
}

func (s *PatientProfileScreen) Refresh(ctx context.Context) {
	s.patient.Refresh(ctx)
	s.bookings.Refresh(ctx)
}

func (s *PatientProfileScreen) Invalidate() {
	s.patient.Invalidate()
	s.bookings.Invalidate()
}

func (s *PatientProfileScreen) Stale() bool {
	return s.patient.Stale() || s.bookings.Stale()
}

func (s *PatientProfileScreen) View(ctx context.Context, q listview.Query) (*PatientProfileView, error) {
	s.Refresh(ctx)

	patient, err := s.patient.Get()
	if err != nil {
		return nil, err
	}

	rows, info, err := s.bookings.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	return &PatientProfileView{
		Patient:  patient,
		Bookings: viewOf(s.bookings, rows, info, domain.CountBookings(s.bookings.list.Items())),
	}, nil
}
