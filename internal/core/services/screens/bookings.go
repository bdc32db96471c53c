package screens

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
	"golang.org/x/sync/errgroup"
)

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// BookingOptions feed the create-booking form.
type BookingOptions struct {
	Doctors  []Option `json:"doctors"`
	Patients []Option `json:"patients"`
}

type BookingsView struct {
	*ListView[domain.Booking, domain.BookingStatusCounts]
	Options BookingOptions `json:"options"`
}

type BookingsScreen struct {
	*listScreen[domain.Booking, domain.Booking]
	backend out.BackendPort
	logger  out.LoggerPort

	mu      sync.RWMutex
	options BookingOptions
}

func bookingStatus(b domain.Booking) string {
	return string(b.Status)
}

func (f *Factory) Bookings() *BookingsScreen {
	repo := f.backend.Bookings()
	return &BookingsScreen{
		listScreen: newListScreen(f, repo, listview.Options[domain.Booking]{
			Name:       "bookings",
			Fetch:      repo.List,
			Searchable: domain.Booking.SearchText,
			Filters:    []listview.Filter[domain.Booking]{statusFilter(bookingStatus)},
		}, "Are you sure you want to delete this booking?", domain.ResourceDoctors, domain.ResourcePatients),
		backend: f.backend,
		logger:  f.logger,
		options: emptyBookingOptions(),
	}
}

func emptyBookingOptions() BookingOptions {
	return BookingOptions{Doctors: []Option{}, Patients: []Option{}}
}

func (s *BookingsScreen) Mount(ctx context.Context) {
	s.list.Mount(ctx)
	s.loadOptions(ctx)
}

func (s *BookingsScreen) Refresh(ctx context.Context) {
	if s.list.Stale() {
		s.loadOptions(ctx)
	}
	s.list.Refresh(ctx)
}

// loadOptions fetches doctors and patients jointly; if either call fails
// both option lists stay empty.
func (s *BookingsScreen) loadOptions(ctx context.Context) {
	var (
		doctors  []domain.Doctor
		patients []domain.Patient
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctors, err = s.backend.Doctors().List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = s.backend.Patients().List(gctx)
		return err
	})

	options := emptyBookingOptions()
	if err := g.Wait(); err != nil {
		s.logger.Error("screens.bookings.options.failed", out.LogFields{
			"error": err.Error(),
		})
	} else {
		for _, d := range doctors {
			options.Doctors = append(options.Doctors, Option{ID: d.DoctorID, Label: labelOr(d.FullName, d.DoctorID)})
		}
		for _, p := range patients {
			options.Patients = append(options.Patients, Option{ID: p.ID, Label: labelOr(p.Name, p.ID)})
		}
	}

	s.mu.Lock()
	s.options = options
	s.mu.Unlock()
}

func labelOr(label *string, fallback string) string {
	if label == nil || *label == "" {
		return fallback
	}
	return *label
}

func (s *BookingsScreen) Options() BookingOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

func (s *BookingsScreen) View(ctx context.Context, q listview.Query) (*BookingsView, error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}
	return &BookingsView{
		ListView: viewOf(s.listScreen, rows, info, domain.CountBookings(s.list.Items())),
		Options:  s.Options(),
	}, nil
}

// Create always books as pending.
func (s *BookingsScreen) Create(ctx context.Context, draft domain.BookingDraft) error {
	return s.create(ctx, "create booking", draft.Payload())
}

func (s *BookingsScreen) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if err := validateBookingStatus(s.list, id, status); err != nil {
		return err
	}
	_, err := s.mutations.Run(ctx, "update booking status", func(ctx context.Context) (out.Result, error) {
		return s.backend.UpdateBookingStatus(ctx, id, status)
	})
	return err
}

func (s *BookingsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}

func validateBookingStatus(list *listview.Controller[domain.Booking], id string, status domain.BookingStatus) error {
	if !status.Valid() {
		return domain.NewValidationError("Unknown booking status: " + string(status))
	}
	booking, err := findBy(list, domain.Booking.Key, id)
	if err != nil {
		return err
	}
	if !booking.Status.CanTransition(status) {
		return domain.NewValidationError("Booking status cannot change from " + string(booking.Status) + " to " + string(status))
	}
	return nil
}
