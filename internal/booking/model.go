package booking

import (
	"time"

	"github.com/LilKangoo/cypruseye-backend/internal/pricing"
)

// --------------------------------------------------
// BOOKING (PERSISTED ENTITY)
// --------------------------------------------------

type Booking struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`

	Adults   float64 `json:"adults"`
	Children float64 `json:"children"`
	Hours    float64 `json:"hours"`
	Days     float64 `json:"days"`
	Addons   float64 `json:"addons"`

	ServiceAt *time.Time `json:"service_at,omitempty"`

	BaseTotal      float64 `json:"base_total"`
	CouponCode     *string `json:"coupon_code,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalTotal     float64 `json:"final_total"`
	Currency       string  `json:"currency"`

	Status    string    `json:"status"` // PENDING | CONFIRMED | CANCELLED
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput is the request body for POST /bookings. Adults is optional
// on the wire (absent defaults to 1), hence the pointer.
type CreateInput struct {
	ServiceID  string     `json:"service_id" binding:"required"`
	Adults     *float64   `json:"adults"`
	Children   float64    `json:"children"`
	Hours      float64    `json:"hours"`
	Days       float64    `json:"days"`
	Addons     float64    `json:"addons"`
	ServiceAt  *time.Time `json:"service_at"`
	CouponCode string     `json:"coupon_code"`
}

func (in CreateInput) party() pricing.PartyInput {
	return pricing.PartyInput{
		Adults:   in.Adults,
		Children: in.Children,
		Hours:    in.Hours,
		Days:     in.Days,
		Addons:   in.Addons,
	}
}
