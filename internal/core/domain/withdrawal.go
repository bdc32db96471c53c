package domain

import (
	"strconv"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type WithdrawalStatus string

const (
	WithdrawalPending WithdrawalStatus = "pending"
	WithdrawalSuccess WithdrawalStatus = "success"
	WithdrawalFailed  WithdrawalStatus = "failed"
)

var WithdrawalStatuses = []WithdrawalStatus{WithdrawalPending, WithdrawalSuccess, WithdrawalFailed}

func (s WithdrawalStatus) Valid() bool {
	for _, known := range WithdrawalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

var withdrawalTransitions = anyToAny(WithdrawalStatuses)

func (s WithdrawalStatus) CanTransition(to WithdrawalStatus) bool {
	return allowed(withdrawalTransitions, s, to)
}

type Withdrawal struct {
	ID                int64                `json:"id"`
	CreatedAt         json_types.Timestamp `json:"created_at"`
	DoctorID          *string              `json:"doctor_id"`
	TotalAmount       json_types.FlexFloat `json:"total_amount"`
	TotalActualAmount json_types.FlexFloat `json:"total_actual_amount"`
	TotalAmountInMRU  json_types.FlexFloat `json:"total_amount_in_MRU"`
	WithdrawalHistory *string              `json:"withrowl_history"`
	IncomeHistory     *float64             `json:"income_history"`
	ActionType        *string              `json:"action_type"`
	OperationStatus   *WithdrawalStatus    `json:"operation_status"`
	PaymentDate       json_types.Timestamp `json:"payment_date"`
}

func (w Withdrawal) Key() string {
	return strconv.FormatInt(w.ID, 10)
}

func (w Withdrawal) Status() WithdrawalStatus {
	if w.OperationStatus == nil {
		return ""
	}
	return *w.OperationStatus
}

func (w Withdrawal) Doctor() string {
	return deref(w.DoctorID)
}

// WithdrawalRow is a withdrawal joined with its doctor's email.
type WithdrawalRow struct {
	Withdrawal
	DoctorEmail string `json:"doctor_email"`
}

func (r WithdrawalRow) SearchText() string {
	return SearchText(r.Doctor(), r.DoctorEmail, r.Key())
}

type WithdrawalStats struct {
	TotalAmount       float64 `json:"totalAmount"`
	TotalActualAmount float64 `json:"totalActualAmount"`
	Success           int     `json:"success"`
	Pending           int     `json:"pending"`
	Failed            int     `json:"failed"`
}

func SummarizeWithdrawals(rows []WithdrawalRow) WithdrawalStats {
	var stats WithdrawalStats
	for _, r := range rows {
		stats.TotalAmount += r.TotalAmount.Value
		stats.TotalActualAmount += r.TotalActualAmount.Value
		switch r.Status() {
		case WithdrawalSuccess:
			stats.Success++
		case WithdrawalPending:
			stats.Pending++
		case WithdrawalFailed:
			stats.Failed++
		}
	}
	return stats
}
