package domain

import (
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var ApprovalStatuses = []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected}

func (s ApprovalStatus) Valid() bool {
	for _, known := range ApprovalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Operators move doctors between any two approval states.
var approvalTransitions = anyToAny(ApprovalStatuses)

func (s ApprovalStatus) CanTransition(to ApprovalStatus) bool {
	return allowed(approvalTransitions, s, to)
}

type Doctor struct {
	DoctorID            string               `json:"doctor_id"`
	FullName            *string              `json:"full_name"`
	Email               *string              `json:"email"`
	PhoneNumber         *string              `json:"phone_number"`
	Age                 *int                 `json:"age"`
	Gender              *string              `json:"gender"`
	Specialization      *string              `json:"specialization"`
	Bio                 *string              `json:"bio"`
	YearsOfExp          *int                 `json:"years_of_exp"`
	NumbPatients        *int                 `json:"numb_patients"`
	ProfileImgURL       *string              `json:"profile_img_url"`
	FeePerSession       *float64             `json:"doctor_fee_per_session"`
	AvgRating           *float64             `json:"avg_rating"`
	AverageRating       *float64             `json:"average_rating"`
	NumbSession         *int                 `json:"numb_session"`
	NumberReview        *int                 `json:"number_review"`
	Wallet              *float64             `json:"wallet"`
	TimezoneOffsetHours *float64             `json:"timezone_offset_hours"`
	UpdatedAt           json_types.Timestamp `json:"updated_at"`
	ApprovalStatus      *ApprovalStatus      `json:"approval_status,omitempty"`
	RejectionReason     *string              `json:"rejection_reason,omitempty"`
}

func (d Doctor) ID() string {
	return d.DoctorID
}

// Approval treats a missing value as pending.
func (d Doctor) Approval() ApprovalStatus {
	if d.ApprovalStatus == nil || *d.ApprovalStatus == "" {
		return ApprovalPending
	}
	return *d.ApprovalStatus
}

func (d Doctor) EmailOrEmpty() string {
	return deref(d.Email)
}

func (d Doctor) SearchText() string {
	return SearchText(deref(d.FullName), deref(d.Email), deref(d.Specialization))
}

// DoctorDraft is the create-doctor form; numeric fields arrive as text.
type DoctorDraft struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Specialization string `json:"specialization"`
	Bio            string `json:"bio"`
	YearsOfExp     string `json:"years_of_exp"`
	BookingPrice   string `json:"booking_price"`
	ProfileImgURL  string `json:"profile_img_url"`
}

type DoctorPayload struct {
	FullName       *string  `json:"full_name"`
	Email          *string  `json:"email"`
	PhoneNumber    *string  `json:"phone_number"`
	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	Specialization *string  `json:"specialization"`
	Bio            *string  `json:"bio"`
	YearsOfExp     *int     `json:"years_of_exp"`
	BookingPrice   *float64 `json:"booking_price"`
	ProfileImgURL  *string  `json:"profile_img_url"`
	AvgRating      *float64 `json:"avg_rating"`
	NumbSession    int      `json:"numb_session"`
	NumberReview   int      `json:"number_review"`
	NumbPatients   int      `json:"numb_patients"`
}

func (d DoctorDraft) Payload() DoctorPayload {
	return DoctorPayload{
		FullName:       OptionalString(d.FullName),
		Email:          OptionalString(d.Email),
		PhoneNumber:    OptionalString(d.PhoneNumber),
		Age:            optionalInt(d.Age),
		Gender:         OptionalString(d.Gender),
		Specialization: OptionalString(d.Specialization),
		Bio:            OptionalString(d.Bio),
		YearsOfExp:     optionalInt(d.YearsOfExp),
		BookingPrice:   optionalFloat(d.BookingPrice),
		ProfileImgURL:  OptionalString(d.ProfileImgURL),
	}
}

// ApprovalUpdate is the operator decision on a doctor's profile.
type ApprovalUpdate struct {
	Status          ApprovalStatus `json:"approval_status"`
	RejectionReason string         `json:"rejection_reason"`
}

// ApprovalPayload is sent as a partial doctor update.
type ApprovalPayload struct {
	ApprovalStatus  ApprovalStatus `json:"approval_status"`
	RejectionReason *string        `json:"rejection_reason"`
	// keepReason leaves rejection_reason out of the body
	keepReason bool
}

func (p ApprovalPayload) MarshalJSON() ([]byte, error) {
	if p.keepReason {
		return marshalJSON(struct {
			ApprovalStatus ApprovalStatus `json:"approval_status"`
		}{p.ApprovalStatus})
	}
	return marshalJSON(struct {
		ApprovalStatus  ApprovalStatus `json:"approval_status"`
		RejectionReason *string        `json:"rejection_reason"`
	}{p.ApprovalStatus, p.RejectionReason})
}

func (u ApprovalUpdate) Validate(current ApprovalStatus) error {
	if !u.Status.Valid() {
		return NewValidationError("Unknown approval status: " + string(u.Status))
	}
	if !current.CanTransition(u.Status) {
		return NewValidationError("Approval status cannot change from " + string(current) + " to " + string(u.Status))
	}
	return nil
}

// Payload carries the reason only for a rejection with text, and clears
// it for any other status. A rejection without text keeps the stored reason.
func (u ApprovalUpdate) Payload() ApprovalPayload {
	reason := strings.TrimSpace(u.RejectionReason)
	switch {
	case u.Status == ApprovalRejected && reason != "":
		return ApprovalPayload{ApprovalStatus: u.Status, RejectionReason: &reason}
	case u.Status == ApprovalRejected:
		return ApprovalPayload{ApprovalStatus: u.Status, keepReason: true}
	default:
		return ApprovalPayload{ApprovalStatus: u.Status}
	}
}

// Apply mirrors the payload on a loaded doctor.
func (p ApprovalPayload) Apply(d *Doctor) {
	status := p.ApprovalStatus
	d.ApprovalStatus = &status
	if !p.keepReason {
		d.RejectionReason = p.RejectionReason
	}
}
