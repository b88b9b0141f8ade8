package domain

import "time"

// PricingConfig holds the hourly base rate and per-tier discount multipliers.
// At most one config is active at a time; creating a new one deactivates all
// others. Superseded configs are retained for rentals already priced against
// them.
type PricingConfig struct {
	ID              int32                    `json:"id"`
	BaseHourlyRate  float64                  `json:"base_hourly_rate"`
	PeriodDiscounts map[RentalPeriod]float64 `json:"period_discounts"`
	Description     string                   `json:"description,omitempty"`
	IsActive        bool                     `json:"is_active"`
	CreatedOn       time.Time                `json:"created_on"`
}

// Discount returns the multiplier for the tier, defaulting to 1.0 when the
// tier is absent from the discount map.
func (c *PricingConfig) Discount(period RentalPeriod) float64 {
	if d, ok := c.PeriodDiscounts[period]; ok {
		return d
	}
	return 1.0
}

// Quote is a priced duration tier computed from the active config.
type Quote struct {
	Period RentalPeriod `json:"rental_period"`
	Hours  int          `json:"hours"`
	Cost   float64      `json:"cost"`
}
