package domain

import (
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

const DefaultCurrency = "USD"

type PaymentPlan struct {
	ID              string               `json:"id"`
	PlanName        string               `json:"plan_name"`
	PlanNameAr      *string              `json:"plan_name_ar,omitempty"`
	PlanNameFr      *string              `json:"plan_name_fr,omitempty"`
	Description     *string              `json:"description,omitempty"`
	DescriptionAr   *string              `json:"description_ar,omitempty"`
	DescriptionFr   *string              `json:"description_fr,omitempty"`
	Price           float64              `json:"price"`
	PaymentCurrency *string              `json:"payment_currency,omitempty"`
	Sessions        int                  `json:"sessions"`
	IsFirstTimeOnly *bool                `json:"is_first_time_only,omitempty"`
	IsActive        *bool                `json:"is_active,omitempty"`
	SortOrder       *int                 `json:"sort_order,omitempty"`
	CreatedAt       json_types.Timestamp `json:"created_at"`
	UpdatedAt       json_types.Timestamp `json:"updated_at"`
}

// IsActiveOrDefault counts a plan as active unless it is explicitly disabled.
func (p PaymentPlan) IsActiveOrDefault() bool {
	return p.IsActive == nil || *p.IsActive
}

func (p PaymentPlan) SearchText() string {
	return SearchText(p.PlanName, deref(p.PlanNameAr))
}

type PaymentPlanDraft struct {
	PlanName        string `json:"plan_name"`
	PlanNameAr      string `json:"plan_name_ar"`
	PlanNameFr      string `json:"plan_name_fr"`
	Description     string `json:"description"`
	DescriptionAr   string `json:"description_ar"`
	DescriptionFr   string `json:"description_fr"`
	Price           string `json:"price"`
	PaymentCurrency string `json:"payment_currency"`
	Sessions        string `json:"sessions"`
	IsFirstTimeOnly bool   `json:"is_first_time_only"`
	IsActive        *bool  `json:"is_active"`
	SortOrder       string `json:"sort_order"`
}

type PaymentPlanPayload struct {
	PlanName        string  `json:"plan_name"`
	PlanNameAr      *string `json:"plan_name_ar"`
	PlanNameFr      *string `json:"plan_name_fr"`
	Description     *string `json:"description"`
	DescriptionAr   *string `json:"description_ar"`
	DescriptionFr   *string `json:"description_fr"`
	Price           float64 `json:"price"`
	PaymentCurrency string  `json:"payment_currency"`
	Sessions        int     `json:"sessions"`
	IsFirstTimeOnly bool    `json:"is_first_time_only"`
	IsActive        bool    `json:"is_active"`
	SortOrder       int     `json:"sort_order"`
}

func (d PaymentPlanDraft) Payload() PaymentPlanPayload {
	currency := strings.TrimSpace(d.PaymentCurrency)
	if currency == "" {
		currency = DefaultCurrency
	}
	active := true
	if d.IsActive != nil {
		active = *d.IsActive
	}
	return PaymentPlanPayload{
		PlanName:        d.PlanName,
		PlanNameAr:      OptionalString(d.PlanNameAr),
		PlanNameFr:      OptionalString(d.PlanNameFr),
		Description:     OptionalString(d.Description),
		DescriptionAr:   OptionalString(d.DescriptionAr),
		DescriptionFr:   OptionalString(d.DescriptionFr),
		Price:           json_types.ParseFloat(d.Price),
		PaymentCurrency: currency,
		Sessions:        json_types.ParseInt(d.Sessions),
		IsFirstTimeOnly: d.IsFirstTimeOnly,
		IsActive:        active,
		SortOrder:       json_types.ParseInt(d.SortOrder),
	}
}
