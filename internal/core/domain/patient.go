package domain

import (
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type Patient struct {
	ID            string               `json:"id"`
	Email         *string              `json:"email"`
	Name          *string              `json:"name"`
	Role          *string              `json:"role"`
	CreatedAt     json_types.Timestamp `json:"created_at"`
	Age           *int                 `json:"age"`
	Gender        *string              `json:"gender"`
	Phone         *string              `json:"phone"`
	LoginID       *string              `json:"login_id"`
	ProfileImgURL *string              `json:"profile_img_url"`
}

func (p Patient) EmailOrEmpty() string {
	return deref(p.Email)
}

func (p Patient) HasGender(gender string) bool {
	return strings.EqualFold(deref(p.Gender), gender)
}

func (p Patient) SearchText() string {
	return SearchText(deref(p.Name), deref(p.Email), deref(p.Phone))
}

type PatientDraft struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	ProfileImgURL string `json:"profile_img_url"`
}

type PatientPayload struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	ProfileImgURL *string `json:"profile_img_url"`
}

func (d PatientDraft) Payload() PatientPayload {
	return PatientPayload{
		Name:          OptionalString(d.Name),
		Email:         OptionalString(d.Email),
		Phone:         OptionalString(d.Phone),
		Age:           optionalInt(d.Age),
		Gender:        OptionalString(d.Gender),
		ProfileImgURL: OptionalString(d.ProfileImgURL),
	}
}
