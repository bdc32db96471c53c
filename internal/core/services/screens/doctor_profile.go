package screens

import (
	"context"
	"net/http"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
	"github.com/estaraht/admin-dashboard/internal/core/services/mutation"
)

type DoctorProfileView struct {
	Doctor         domain.Doctor                                         `json:"doctor"`
	Approval       domain.ApprovalStatus                                 `json:"approval"`
	Bookings       *ListView[domain.Booking, domain.BookingStatusCounts] `json:"bookings"`
	Availabilities []domain.Availability                                 `json:"availabilities"`
}

// DoctorProfileScreen shows one doctor with their bookings and weekly
// availability. The three parts load independently.
type DoctorProfileScreen struct {
	id             string
	backend        out.BackendPort
	logger         out.LoggerPort
	doctor         *record[domain.Doctor]
	bookings       *listScreen[domain.Booking, domain.Booking]
	availabilities *listview.Controller[domain.Availability]
}

func (f *Factory) DoctorProfile(id string) *DoctorProfileScreen {
	bookings := f.backend.Bookings()
	availabilities := f.backend.Availabilities()

	return &DoctorProfileScreen{
		id:      id,
		backend: f.backend,
		logger:  f.logger,
		doctor:  newRecord(f.backend.Doctors(), id, f.logger),
		bookings: newListScreen(f, bookings, listview.Options[domain.Booking]{
			Name: "doctor-bookings",
			Fetch: func(ctx context.Context) ([]domain.Booking, error) {
				return bookings.ListBy(ctx, domain.ScopeDoctor, id)
			},
			Searchable: domain.Booking.DoctorScopedSearchText,
			Filters:    []listview.Filter[domain.Booking]{statusFilter(bookingStatus)},
		}, "Are you sure you want to delete this booking?"),
		availabilities: listview.New(listview.Options[domain.Availability]{
			Name: "doctor-availabilities",
			Fetch: func(ctx context.Context) ([]domain.Availability, error) {
				return availabilities.ListBy(ctx, domain.ScopeDoctor, id)
			},
			Logger: f.logger,
		}),
	}
}

func (s *DoctorProfileScreen) Name() string {
	return "doctor:" + s.id
}

func (s *DoctorProfileScreen) Resources() []domain.Resource {
	return []domain.Resource{domain.ResourceDoctors, domain.ResourceBookings, domain.ResourceAvailabilities}
}

func (s *DoctorProfileScreen) Mount(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); s.doctor.Mount(ctx) }()
	go func() { defer wg.Done(); s.bookings.Mount(ctx) }()
	go func() { defer wg.Done(); s.availabilities.Mount(ctx) }()
	wg.Wait()
}

func (s *DoctorProfileScreen) Refresh(ctx context.Context) {
	s.doctor.Refresh(ctx)
	s.bookings.Refresh(ctx)
	s.availabilities.Refresh(ctx)
}

func (s *DoctorProfileScreen) Invalidate() {
	s.doctor.Invalidate()
	s.bookings.Invalidate()
	s.availabilities.Invalidate()
}

func (s *DoctorProfileScreen) Stale() bool {
	return s.doctor.Stale() || s.bookings.Stale() || s.availabilities.Stale()
}

func (s *DoctorProfileScreen) View(ctx context.Context, q listview.Query) (*DoctorProfileView, error) {
	s.Refresh(ctx)

	doctor, err := s.doctor.Get()
	if err != nil {
		return nil, err
	}

	rows, info, err := s.bookings.apply(ctx, q)
	if err != nil {
		return nil, err
	}

	return &DoctorProfileView{
		Doctor:         doctor,
		Approval:       doctor.Approval(),
		Bookings:       viewOf(s.bookings, rows, info, domain.CountBookings(s.bookings.list.Items())),
		Availabilities: s.availabilities.Items(),
	}, nil
}

// UpdateApproval sends the decision as a partial doctor update and mirrors
// it on the loaded record once the backend accepts it.
func (s *DoctorProfileScreen) UpdateApproval(ctx context.Context, update domain.ApprovalUpdate) error {
	doctor, err := s.doctor.Get()
	if err != nil {
		return err
	}
	if err := update.Validate(doctor.Approval()); err != nil {
		return err
	}

	payload := update.Payload()
	result, err := s.backend.Doctors().Update(ctx, s.id, payload)
	if err != nil {
		s.logger.Error("screens.doctor.approval.failed", out.LogFields{
			"doctorId": s.id,
			"error":    err.Error(),
		})
		return err
	}
	if !result.OK() {
		return domain.NewHTTPError(http.StatusUnprocessableEntity, mutation.Rejection(result, "update approval status"))
	}

	s.doctor.Patch(payload.Apply)
	s.logger.Info("screens.doctor.approval.updated", out.LogFields{
		"doctorId": s.id,
		"status":   payload.ApprovalStatus,
	})
	return nil
}
