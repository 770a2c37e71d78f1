package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "Available"
	VehicleStatusRented      VehicleStatus = "Rented"
	VehicleStatusMaintenance VehicleStatus = "Maintenance"
)

// Next returns the status that follows s in the Available, Rented,
// Maintenance cycle.
func (s VehicleStatus) Next() VehicleStatus {
	switch s {
	case VehicleStatusAvailable:
		return VehicleStatusRented
	case VehicleStatusRented:
		return VehicleStatusMaintenance
	default:
		return VehicleStatusAvailable
	}
}

type Vehicle struct {
	ID              string        `json:"id"`
	Brand           string        `json:"brand"`
	Model           string        `json:"model"`
	Year            int           `json:"year"`
	Plate           string        `json:"plate"`
	PricePerDay     float64       `json:"price_per_day"`
	Category        string        `json:"category"`
	Seats           int           `json:"seats"`
	Transmission    string        `json:"transmission"`
	Fuel            string        `json:"fuel"`
	Image           string        `json:"image"`
	Mileage         int           `json:"mileage"`
	Status          VehicleStatus `json:"status"`
	LastMaintenance Date          `json:"last_maintenance"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (v Vehicle) Name() string {
	return v.Brand + " " + v.Model
}
