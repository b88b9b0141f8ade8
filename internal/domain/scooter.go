package domain

import "time"

type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "available"
	ScooterStatusInUse       ScooterStatus = "in_use"
	ScooterStatusMaintenance ScooterStatus = "maintenance"
	ScooterStatusUnavailable ScooterStatus = "unavailable"
)

// Location is a geo-coordinate stored as JSON on the scooter row.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Scooter struct {
	ID           int32         `json:"id"`
	Model        string        `json:"model"`
	Status       ScooterStatus `json:"status"`
	BatteryLevel int32         `json:"battery_level"`
	Location     Location      `json:"location"`
	CreatedOn    time.Time     `json:"created_on"`
	UpdatedOn    time.Time     `json:"updated_on"`
}
