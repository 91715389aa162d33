package catalog

import (
	"time"

	"github.com/LilKangoo/cypruseye-backend/internal/pricing"
)

// Service is one bookable offering: a hotel stay, a guided trip, a car
// rental or an activity. The pricing columns map 1:1 onto pricing.Item.
type Service struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"` // hotel | trip | car | activity
	Name         string    `json:"name"`
	Currency     string    `json:"currency"`
	CategoryKeys []string  `json:"category_keys"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Pricing pricing.Item `json:"pricing"`
}
