package screens

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

const (
	FilterStatus   = "status"
	FilterCurrency = "currency"
)

func statusFilter[T any](field func(T) string) listview.Filter[T] {
	return listview.Equals(FilterStatus, field)
}

// tolerantList fetches a lookup collection; a failure is logged and
// yields an empty slice.
func tolerantList[T any](ctx context.Context, repo out.Repository[T], logger out.LoggerPort) []T {
	items, err := repo.List(ctx)
	if err != nil {
		logger.Warn("screens.lookup.failed", out.LogFields{
			"resource": repo.Resource(),
			"error":    err.Error(),
		})
		return []T{}
	}
	return items
}

// tolerantGet fetches one record for a detail view; a failure yields nil.
func tolerantGet[T any](ctx context.Context, repo out.Repository[T], id string, logger out.LoggerPort) *T {
	if id == "" {
		return nil
	}
	item, err := repo.Get(ctx, id)
	if err != nil {
		logger.Warn("screens.detail.failed", out.LogFields{
			"resource": repo.Resource(),
			"id":       id,
			"error":    err.Error(),
		})
		return nil
	}
	return item
}

// emailDirectories loads doctor and patient emails concurrently. Each
// side is fetched only when wanted, and each failure leaves its map empty.
func emailDirectories(ctx context.Context, backend out.BackendPort, logger out.LoggerPort, doctors, patients bool) (domain.EmailDirectory, domain.EmailDirectory) {
	doctorEmails := domain.EmailDirectory{}
	patientEmails := domain.EmailDirectory{}

	var wg sync.WaitGroup
	if doctors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doctorEmails = domain.DoctorEmails(tolerantList(ctx, backend.Doctors(), logger))
		}()
	}
	if patients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			patientEmails = domain.PatientEmails(tolerantList(ctx, backend.Patients(), logger))
		}()
	}
	wg.Wait()

	return doctorEmails, patientEmails
}

func findBy[R any](list *listview.Controller[R], key func(R) string, id string) (R, error) {
	row, ok := list.Find(func(r R) bool { return key(r) == id })
	if !ok {
		return row, domain.ErrNotFound
	}
	return row, nil
}
