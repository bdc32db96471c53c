package domain

import (
	"time"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

type CouponState string

const (
	CouponActive  CouponState = "active"
	CouponUsed    CouponState = "used"
	CouponExpired CouponState = "expired"
)

type Coupon struct {
	ID           string               `json:"id"`
	CouponCode   string               `json:"coupon_code"`
	ValidUntil   json_types.Timestamp `json:"valid_until"`
	OneUse       bool                 `json:"one_use"`
	NumberOfUses int                  `json:"number_of_uses"`
	ForUser      *string              `json:"for_user"`
	IsUsed       bool                 `json:"is_used"`
	CreatedAt    json_types.Timestamp `json:"created_at"`
	CouponValue  *string              `json:"coupon_value"`
}

// State classifies the coupon at now. A used coupon is used regardless of
// date; otherwise it is active only while valid_until lies in the future.
func (c Coupon) State(now time.Time) CouponState {
	if c.IsUsed {
		return CouponUsed
	}
	if c.ValidUntil.Time.After(now) {
		return CouponActive
	}
	return CouponExpired
}

func (c Coupon) SearchText() string {
	return SearchText(c.CouponCode, deref(c.ForUser))
}

type CouponStats struct {
	Active  int `json:"active"`
	Used    int `json:"used"`
	Expired int `json:"expired"`
	Total   int `json:"total"`
}

func CountCoupons(coupons []Coupon, now time.Time) CouponStats {
	stats := CouponStats{Total: len(coupons)}
	for _, c := range coupons {
		switch c.State(now) {
		case CouponActive:
			stats.Active++
		case CouponUsed:
			stats.Used++
		case CouponExpired:
			stats.Expired++
		}
	}
	return stats
}

const couponValueMessage = "Discount percentage must be between 0 and 100"

// CouponDraft is the create-coupon form.
type CouponDraft struct {
	CouponCode   string `json:"coupon_code"`
	CouponValue  string `json:"coupon_value"`
	ValidUntil   string `json:"valid_until"`
	OneUse       bool   `json:"one_use"`
	NumberOfUses int    `json:"number_of_uses"`
	ForUser      string `json:"for_user"`
}

type CouponPayload struct {
	CouponCode   string  `json:"coupon_code"`
	CouponValue  *string `json:"coupon_value"`
	ValidUntil   string  `json:"valid_until"`
	OneUse       bool    `json:"one_use"`
	NumberOfUses int     `json:"number_of_uses"`
	ForUser      *string `json:"for_user"`
}

// Validate checks the discount percentage; 0 and 100 are both accepted.
func (d CouponDraft) Validate() error {
	value, ok := json_types.LeadingFloat(d.CouponValue)
	if !ok || value < 0 || value > 100 {
		return NewValidationError(couponValueMessage)
	}
	return nil
}

func (d CouponDraft) Payload() CouponPayload {
	uses := d.NumberOfUses
	if d.OneUse {
		uses = 1
	}
	return CouponPayload{
		CouponCode:   d.CouponCode,
		CouponValue:  OptionalString(d.CouponValue),
		ValidUntil:   d.ValidUntil,
		OneUse:       d.OneUse,
		NumberOfUses: uses,
		ForUser:      OptionalString(d.ForUser),
	}
}
