package domain

import "strings"

// Resource is a named REST collection on the backend.
type Resource string

const (
	ResourceUsers                    Resource = "users"
	ResourceDoctors                  Resource = "doctors"
	ResourcePatients                 Resource = "patients"
	ResourceBookings                 Resource = "bookings"
	ResourceAvailabilities           Resource = "availabilities"
	ResourcePaymentPlans             Resource = "payment-plans"
	ResourcePatientPlanSubscriptions Resource = "patient-plan-subscriptions"
	ResourceCoupons                  Resource = "coupons"
	ResourceReviews                  Resource = "reviews"
	ResourceWithdrawals              Resource = "withdrawals"
	ResourceTransactions             Resource = "transactions"
)

var knownResources = map[Resource]struct{}{
	ResourceUsers:                    {},
	ResourceDoctors:                  {},
	ResourcePatients:                 {},
	ResourceBookings:                 {},
	ResourceAvailabilities:           {},
	ResourcePaymentPlans:             {},
	ResourcePatientPlanSubscriptions: {},
	ResourceCoupons:                  {},
	ResourceReviews:                  {},
	ResourceWithdrawals:              {},
	ResourceTransactions:             {},
}

func (r Resource) Valid() bool {
	_, ok := knownResources[r]
	return ok
}

func (r Resource) Path() string {
	return "/" + string(r)
}

// ParseResource accepts both path form ("payment-plans") and the
// compact event form ("paymentplans", "payment_plans").
func ParseResource(name string) (Resource, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if r := Resource(normalized); r.Valid() {
		return r, true
	}
	compact := strings.NewReplacer("-", "", "_", "").Replace(normalized)
	for r := range knownResources {
		if strings.ReplaceAll(string(r), "-", "") == compact {
			return r, true
		}
	}
	return "", false
}

// Scope selects a parent-scoped listing, e.g. /bookings/doctor/{id}.
type Scope string

const (
	ScopeDoctor  Scope = "doctor"
	ScopePatient Scope = "patient"
	ScopeBooking Scope = "booking"
	ScopePlan    Scope = "plan"
	ScopeCode    Scope = "code"
)

// SearchText builds the searchable string of a record: its display
// fields lower-cased and separated so a term never spans two fields.
func SearchText(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		parts = append(parts, strings.ToLower(f))
	}
	return strings.Join(parts, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func StringPtr(s string) *string {
	return &s
}

// OptionalString maps an empty input to null.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
