package out

import (
	"context"
	"encoding/json"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
)

// Envelope is the {success, data, message} wrapper of every backend response.
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK is false only when the backend explicitly reports success=false.
func (e Envelope[T]) OK() bool {
	return e.Success == nil || *e.Success
}

// Result is the envelope of a mutation whose data the caller does not read.
type Result = Envelope[json.RawMessage]

// Repository is one REST collection with its standard operations.
// ListBy serves the scoped lookups such as /bookings/doctor/{id}.
type Repository[T any] interface {
	Resource() domain.Resource
	List(ctx context.Context) ([]T, error)
	ListBy(ctx context.Context, scope domain.Scope, id string) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, body interface{}) (Result, error)
	Update(ctx context.Context, id string, body interface{}) (Result, error)
	Delete(ctx context.Context, id string) (Result, error)
	Stats(ctx context.Context) (domain.ResourceStats, error)
}

type AuthPort interface {
	Login(ctx context.Context, credentials domain.Credentials) (Result, error)
	RequestPasswordReset(ctx context.Context, email string) (Result, error)
	ResetPassword(ctx context.Context, reset domain.PasswordReset) (Result, error)
}

type BackendPort interface {
	AuthPort

	Users() Repository[domain.AdminUser]
	Doctors() Repository[domain.Doctor]
	Patients() Repository[domain.Patient]
	Bookings() Repository[domain.Booking]
	Availabilities() Repository[domain.Availability]
	PaymentPlans() Repository[domain.PaymentPlan]
	Subscriptions() Repository[domain.PatientPlanSubscription]
	Coupons() Repository[domain.Coupon]
	Reviews() Repository[domain.Review]
	Withdrawals() Repository[domain.Withdrawal]
	Transactions() Repository[domain.Transaction]

	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (Result, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ValidateCoupon(ctx context.Context, code, userID string) (Result, error)
	UseCoupon(ctx context.Context, id, userID string) (Result, error)
	Stats(ctx context.Context, resource domain.Resource) (domain.ResourceStats, error)
}
