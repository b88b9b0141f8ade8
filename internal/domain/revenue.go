package domain

import "time"

// PeriodRevenue is one duration bucket inside a daily stats row.
type PeriodRevenue struct {
	Count   int32   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// RevenueStats is the daily rollup of completed payments, keyed uniquely by
// calendar date. Recomputing a date is side-effect-free and overwrites the
// row in place.
type RevenueStats struct {
	ID              int32                          `json:"id"`
	Date            time.Time                      `json:"date"`
	TotalRevenue    float64                        `json:"total_revenue"`
	RentalCount     int32                          `json:"rental_count"`
	RevenueByPeriod map[RentalPeriod]PeriodRevenue `json:"revenue_by_period"`
	CreatedOn       time.Time                      `json:"created_on"`
}

// PeriodSummary extends a bucket with its daily average over a summary range.
type PeriodSummary struct {
	Count        int32   `json:"count"`
	Revenue      float64 `json:"revenue"`
	AverageDaily float64 `json:"average_daily"`
}

// RevenueSummary aggregates daily stats over an inclusive date range.
type RevenueSummary struct {
	StartDate       time.Time                      `json:"start_date"`
	EndDate         time.Time                      `json:"end_date"`
	TotalRevenue    float64                        `json:"total_revenue"`
	TotalRentals    int32                          `json:"total_rentals"`
	DailyAverage    float64                        `json:"daily_average"`
	RevenueByPeriod map[RentalPeriod]PeriodSummary `json:"revenue_by_period"`
	DailyStats      []RevenueStats                 `json:"daily_stats"`
}

// ClassifyElapsed buckets a finished rental by wall-clock duration rather
// than its original tier label, tolerating early completions and sweeps.
func ClassifyElapsed(start, end time.Time) RentalPeriod {
	hours := end.Sub(start).Hours()
	switch {
	case hours <= 1.5:
		return PeriodOneHour
	case hours <= 5:
		return PeriodFourHours
	case hours <= 25:
		return PeriodOneDay
	default:
		return PeriodOneWeek
	}
}
