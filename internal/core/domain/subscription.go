package domain

import "github.com/estaraht/admin-dashboard/internal/core/json_types"

const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionExpired  = "expired"
)

type SubscriptionPatient struct {
	ID            string  `json:"id"`
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	ProfileImgURL *string `json:"profile_img_url,omitempty"`
}

// PatientPlanSubscription joins a patient and a payment plan; the backend
// embeds both records for display.
type PatientPlanSubscription struct {
	ID                string               `json:"id"`
	PatientID         string               `json:"patient_id"`
	PlanID            string               `json:"plan_id"`
	PaymentID         *string              `json:"payment_id,omitempty"`
	SessionsPurchased int                  `json:"sessions_purchased"`
	SessionsUsed      *int                 `json:"sessions_used,omitempty"`
	PricePaid         float64              `json:"price_paid"`
	PaymentGateway    *string              `json:"payment_gateway,omitempty"`
	PaymentCurrency   *string              `json:"payment_currency,omitempty"`
	PaymentStatus     *string              `json:"payment_status,omitempty"`
	SubscribedAt      json_types.Timestamp `json:"subscribed_at"`
	CreatedAt         json_types.Timestamp `json:"created_at"`
	ExpiresAt         json_types.Timestamp `json:"expires_at"`
	Status            string               `json:"status"`
	Patient           *SubscriptionPatient `json:"patients,omitempty"`
	Plan              *PaymentPlan         `json:"payment_plans,omitempty"`
}

func (s PatientPlanSubscription) IsActive() bool {
	return s.Status == SubscriptionActive || s.Status == SubscriptionTrialing
}

func (s PatientPlanSubscription) IsExpired() bool {
	return s.Status == SubscriptionExpired
}

func (s PatientPlanSubscription) SessionsRemaining() int {
	used := 0
	if s.SessionsUsed != nil {
		used = *s.SessionsUsed
	}
	return s.SessionsPurchased - used
}

func (s PatientPlanSubscription) SearchText() string {
	var patientName, planName string
	if s.Patient != nil {
		patientName = deref(s.Patient.Name)
	}
	if s.Plan != nil {
		planName = s.Plan.PlanName
	}
	return SearchText(patientName, planName)
}
