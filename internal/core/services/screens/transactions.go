package screens

import (
	"context"
	"sync"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/listview"
)

type TransactionDetails struct {
	Transaction domain.TransactionRow `json:"transaction"`
	Doctor      *domain.Doctor        `json:"doctor"`
	Patient     *domain.Patient       `json:"patient"`
}

// TransactionsScreen is read-only: the feed has no mutations.
type TransactionsScreen struct {
	*listScreen[domain.Transaction, domain.TransactionRow]
	backend out.BackendPort
	logger  out.LoggerPort
}

func (f *Factory) Transactions() *TransactionsScreen {
	s := &TransactionsScreen{backend: f.backend, logger: f.logger}
	s.listScreen = newListScreen(f, f.backend.Transactions(), listview.Options[domain.TransactionRow]{
		Name:       "transactions",
		Fetch:      s.fetch,
		Searchable: domain.TransactionRow.SearchText,
		Filters: []listview.Filter[domain.TransactionRow]{
			statusFilter(func(r domain.TransactionRow) string { return string(r.Status) }),
			listview.Equals(FilterCurrency, domain.TransactionRow.Currency),
		},
		Paginated: true,
	}, "", domain.ResourceDoctors, domain.ResourcePatients)
	return s
}

// fetch joins the feed with doctor and patient emails. The lookups run
// only when some row references them, and each failure is tolerated.
func (s *TransactionsScreen) fetch(ctx context.Context) ([]domain.TransactionRow, error) {
	transactions, err := s.backend.Transactions().List(ctx)
	if err != nil {
		return nil, err
	}

	var wantDoctors, wantPatients bool
	for _, t := range transactions {
		wantDoctors = wantDoctors || t.DoctorID != ""
		wantPatients = wantPatients || t.PatientID != ""
	}
	doctorEmails, patientEmails := emailDirectories(ctx, s.backend, s.logger, wantDoctors, wantPatients)

	rows := make([]domain.TransactionRow, len(transactions))
	for i, t := range transactions {
		rows[i] = domain.TransactionRow{
			Transaction:  t,
			DoctorEmail:  doctorEmails[t.DoctorID],
			PatientEmail: patientEmails[t.PatientID],
		}
	}
	return rows, nil
}

// View computes currency totals and status counts over the filtered rows.
func (s *TransactionsScreen) View(ctx context.Context, q listview.Query) (*ListView[domain.TransactionRow, domain.TransactionStats], error) {
	rows, info, err := s.apply(ctx, q)
	if err != nil {
		return nil, err
	}
	return viewOf(s.listScreen, rows, info, domain.SummarizeTransactions(s.list.Visible())), nil
}

func (s *TransactionsScreen) Details(ctx context.Context, id string) (*TransactionDetails, error) {
	row, err := findBy(s.list, func(r domain.TransactionRow) string { return r.ID }, id)
	if err != nil {
		return nil, err
	}

	details := &TransactionDetails{Transaction: row}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		details.Doctor = tolerantGet(ctx, s.backend.Doctors(), row.DoctorID, s.logger)
	}()
	go func() {
		defer wg.Done()
		details.Patient = tolerantGet(ctx, s.backend.Patients(), row.PatientID, s.logger)
	}()
	wg.Wait()

	return details, nil
}
