package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(RentalStatusActive, RentalStatusCompleted))

	// Every terminal state is closed, including paid.
	assert.False(t, CanTransition(RentalStatusCompleted, RentalStatusActive))
	assert.False(t, CanTransition(RentalStatusCompleted, RentalStatusPaid))
	assert.False(t, CanTransition(RentalStatusCancelled, RentalStatusCompleted))
	assert.False(t, CanTransition(RentalStatusPaid, RentalStatusActive))
	assert.False(t, CanTransition(RentalStatusActive, RentalStatusPaid))
	assert.False(t, CanTransition(RentalStatusActive, RentalStatusCancelled))
}

func TestRentalPeriodHours(t *testing.T) {
	assert.Equal(t, 1, RentalPeriodHours[PeriodOneHour])
	assert.Equal(t, 4, RentalPeriodHours[PeriodFourHours])
	assert.Equal(t, 24, RentalPeriodHours[PeriodOneDay])
	assert.Equal(t, 168, RentalPeriodHours[PeriodOneWeek])

	assert.True(t, ValidPeriod(PeriodOneDay))
	assert.False(t, ValidPeriod("2days"))
}

func TestClassifyElapsed(t *testing.T) {
	start := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		elapsed time.Duration
		want    RentalPeriod
	}{
		{30 * time.Minute, PeriodOneHour},
		{90 * time.Minute, PeriodOneHour},
		{2 * time.Hour, PeriodFourHours},
		{5 * time.Hour, PeriodFourHours},
		{6 * time.Hour, PeriodOneDay},
		{25 * time.Hour, PeriodOneDay},
		{26 * time.Hour, PeriodOneWeek},
		{200 * time.Hour, PeriodOneWeek},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyElapsed(start, start.Add(tc.elapsed)), "elapsed %s", tc.elapsed)
	}
}

func TestPricingDiscountDefaultsToOne(t *testing.T) {
	cfg := &PricingConfig{
		BaseHourlyRate:  20,
		PeriodDiscounts: map[RentalPeriod]float64{PeriodFourHours: 0.9},
	}
	assert.Equal(t, 0.9, cfg.Discount(PeriodFourHours))
	assert.Equal(t, 1.0, cfg.Discount(PeriodOneHour))
}

func TestFinalized(t *testing.T) {
	assert.True(t, (&Rental{Status: RentalStatusCompleted}).Finalized())
	assert.True(t, (&Rental{Status: RentalStatusPaid}).Finalized())
	assert.False(t, (&Rental{Status: RentalStatusActive}).Finalized())
	assert.False(t, (&Rental{Status: RentalStatusCancelled}).Finalized())
}
