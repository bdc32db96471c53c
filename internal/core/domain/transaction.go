package domain

import (
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "success"
	TransactionWaiting TransactionStatus = "waiting"
	TransactionFailed  TransactionStatus = "failed"
)

const (
	CurrencyUSD = "USD"
	CurrencyMRU = "MRU"
)

// Transaction is one entry of the backend's combined payments feed.
type Transaction struct {
	ID              string               `json:"id"`
	Type            string               `json:"type"`
	DoctorID        string               `json:"doctor_id"`
	PatientID       string               `json:"patient_id"`
	Amount          float64              `json:"amount"`
	Status          TransactionStatus    `json:"status"`
	CreatedAt       json_types.Timestamp `json:"created_at"`
	BookingID       *string              `json:"booking_id"`
	OperationID     *string              `json:"operation_id,omitempty"`
	ActionType      *string              `json:"action_type,omitempty"`
	PaymentGateway  *string              `json:"payment_gateway,omitempty"`
	PaymentCurrency *string              `json:"payment_currency,omitempty"`
}

func (t Transaction) Currency() string {
	return strings.ToUpper(deref(t.PaymentCurrency))
}

// TransactionRow is a transaction joined with doctor and patient emails.
type TransactionRow struct {
	Transaction
	DoctorEmail  string `json:"doctor_email"`
	PatientEmail string `json:"patient_email"`
}

func (r TransactionRow) SearchText() string {
	return SearchText(r.DoctorID, r.PatientID, r.DoctorEmail, r.PatientEmail, deref(r.BookingID), deref(r.OperationID))
}

type TransactionStats struct {
	TotalUSD float64 `json:"totalUSD"`
	TotalMRU float64 `json:"totalMRU"`
	Success  int     `json:"success"`
	Waiting  int     `json:"waiting"`
	Failed   int     `json:"failed"`
}

func SummarizeTransactions(rows []TransactionRow) TransactionStats {
	var stats TransactionStats
	for _, r := range rows {
		switch r.Currency() {
		case CurrencyUSD:
			stats.TotalUSD += r.Amount
		case CurrencyMRU:
			stats.TotalMRU += r.Amount
		}
		switch r.Status {
		case TransactionSuccess:
			stats.Success++
		case TransactionWaiting:
			stats.Waiting++
		case TransactionFailed:
			stats.Failed++
		}
	}
	return stats
}

// EmailDirectory maps record ids to emails for display joins.
type EmailDirectory map[string]string

func DoctorEmails(doctors []Doctor) EmailDirectory {
	dir := make(EmailDirectory, len(doctors))
	for _, d := range doctors {
		if d.DoctorID != "" && d.EmailOrEmpty() != "" {
			dir[d.DoctorID] = d.EmailOrEmpty()
		}
	}
	return dir
}

func PatientEmails(patients []Patient) EmailDirectory {
	dir := make(EmailDirectory, len(patients))
	for _, p := range patients {
		if p.ID != "" && p.EmailOrEmpty() != "" {
			dir[p.ID] = p.EmailOrEmpty()
		}
	}
	return dir
}
