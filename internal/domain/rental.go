package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	// Paid is a terminal sub-state set only by the settlement engine after a
	// successful charge. The generic transition table never produces it.
	RentalStatusPaid RentalStatus = "paid"
)

// rentalTransitions is the closed set of edges the generic transition
// operation accepts. Finalization to paid goes through the settlement path.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusActive:    {RentalStatusCompleted},
	RentalStatusCompleted: {},
	RentalStatusCancelled: {},
	RentalStatusPaid:      {},
}

// CanTransition reports whether from -> to is a permitted rental status edge.
func CanTransition(from, to RentalStatus) bool {
	for _, next := range rentalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type RentalPeriod string

const (
	PeriodOneHour   RentalPeriod = "1hr"
	PeriodFourHours RentalPeriod = "4hrs"
	PeriodOneDay    RentalPeriod = "1day"
	PeriodOneWeek   RentalPeriod = "1week"
)

// RentalPeriodHours maps each duration tier to its length in hours.
var RentalPeriodHours = map[RentalPeriod]int{
	PeriodOneHour:   1,
	PeriodFourHours: 4,
	PeriodOneDay:    24,
	PeriodOneWeek:   168,
}

// ValidPeriod reports whether p is one of the four fixed duration tiers.
func ValidPeriod(p RentalPeriod) bool {
	_, ok := RentalPeriodHours[p]
	return ok
}

type Rental struct {
	ID        int32        `json:"id"`
	UserID    int32        `json:"user_id"`
	ScooterID int32        `json:"scooter_id"`
	Period    RentalPeriod `json:"rental_period"`
	StartTime time.Time    `json:"start_time"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
	Status    RentalStatus `json:"status"`
	// Cost is the quote frozen at creation. It is never recomputed, even if
	// the pricing config is later replaced.
	Cost      float64   `json:"cost"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Finalized reports whether the rental reached a revenue-bearing terminal
// state (voluntary end, sweep, or settlement).
func (r *Rental) Finalized() bool {
	return r.Status == RentalStatusCompleted || r.Status == RentalStatusPaid
}
