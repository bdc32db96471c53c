package screens

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type WithdrawalDetails struct {
	Withdrawal domain.WithdrawalRow `json:"withdrawal"`
	Doctor     *domain.Doctor       `json:"doctor"`
}

type WithdrawalsScreen struct {
	*listScreen[domain.Withdrawal, domain.WithdrawalRow]
	backend out.BackendPort
	logger  out.LoggerPort
}

func (f *Factory) Withdrawals() *WithdrawalsScreen {
	s := &WithdrawalsScreen{backend: f.backend, logger: f.logger}
	s.listScreen = newListScreen(f, f.backend.Withdrawals(), listview.Options[domain.WithdrawalRow]{
		Name:       "withdrawals",
		Fetch:      s.fetch,
		Searchable: domain.WithdrawalRow.SearchText,
		Filters: []listview.Filter[domain.WithdrawalRow]{
			statusFilter(func(r domain.WithdrawalRow) string { return string(r.Status()) }),
		},
		Paginated: true,
	}, "Are you sure you want to delete this withdrawal?", domain.ResourceDoctors)
	return s
}

// fetch loads withdrawals and doctors together. Only the withdrawals call
// can fail the load; without doctors the email column stays blank.
func (s *WithdrawalsScreen) fetch(ctx context.Context) ([]domain.WithdrawalRow, error) {
	var (
		withdrawals []domain.Withdrawal
		err         error
		emails      domain.EmailDirectory
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		withdrawals, err = s.backend.Withdrawals().List(ctx)
	}()
	go func() {
		defer wg.Done()
		emails = domain.DoctorEmails(tolerantList(ctx, s.backend.Doctors(), s.logger))
	}()
	wg.Wait()

	if err != nil {
		return nil, err
	}

	rows := make([]domain.WithdrawalRow, len(withdrawals))
	for i, w := range withdrawals {
		rows[i] = domain.WithdrawalRow{Withdrawal: w, DoctorEmail: emails[w.Doctor()]}
	}
	return rows, nil
}

// View computes totals and counts over the filtered rows, not the page.
func (s *WithdrawalsScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.WithdrawalRow, domain.WithdrawalStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}
	return viewOf(s.listScreen, rows, info, domain.SummarizeWithdrawals(s.list.Visible())), nil
}

// UpdateStatus sends the full record with the new status, patches the row
// locally, and leaves the list stale for the next read.
func (s *WithdrawalsScreen) UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus) error {
	if !status.Valid() {
		return domain.NewValidationError("Unknown withdrawal status: " + string(status))
	}
	row, err := findBy(s.list, domain.WithdrawalRow.Key, id)
	if err != nil {
		return err
	}
	if !row.Status().CanTransition(status) {
		return domain.NewValidationError("Withdrawal status cannot change from " + string(row.Status()) + " to " + string(status))
	}

	body := row.Withdrawal
	body.OperationStatus = &status

	_, err = s.mutations.UpdateOptimistic(ctx, id, body,
		func(r domain.WithdrawalRow) bool { return r.Key() == id },
		func(r *domain.WithdrawalRow) { r.OperationStatus = &status },
	)
	return err
}

func (s *WithdrawalsScreen) Delete(ctx context.Context, id string, confirm out.ConfirmPort) error {
	return s.delete(ctx, id, confirm)
}

// Details returns the loaded row with its doctor; a failed doctor lookup
// leaves Doctor nil.
func (s *WithdrawalsScreen) Details(ctx context.Context, id string) (*WithdrawalDetails, error) {
	row, err := findBy(s.list, domain.WithdrawalRow.Key, id)
	if err != nil {
		return nil, err
	}
	return &WithdrawalDetails{
		Withdrawal: row,
		Doctor:     tolerantGet(ctx, s.backend.Doctors(), row.Doctor(), s.logger),
	}, nil
}
