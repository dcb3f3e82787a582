package load

import (
	"fmt"
	"time"
)

// LoadCreateRequest represents the request payload for posting a load.
type LoadCreateRequest struct {
	Title           string  `json:"title"`
	CargoType       string  `json:"cargo_type"`
	WeightTons      float64 `json:"weight_tons"`
	OriginCity      string  `json:"origin_city"`
	DestinationCity string  `json:"destination_city"`
	DistanceKm      float64 `json:"distance_km"`
	BudgetUsd       float64 `json:"budget_usd"`
	PickupDate      time.Time `json:"pickup_date"`
	DeliveryDate    time.Time `json:"delivery_date"`
	TripType        string    `json:"trip_type"`
	Urgency         string    `json:"urgency"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
}

func (r LoadCreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.CargoType == "" {
		return fmt.Errorf("cargo_type is required")
	}
	if r.WeightTons <= 0 {
		return fmt.Errorf("weight_tons must be greater than zero")
	}
	if r.OriginCity == "" {
		return fmt.Errorf("origin_city is required")
	}
	if r.DestinationCity == "" {
		return fmt.Errorf("destination_city is required")
	}
	if r.OriginCity == r.DestinationCity {
		return fmt.Errorf("origin and destination must differ")
	}
	if r.BudgetUsd <= 0 {
		return fmt.Errorf("budget_usd must be greater than zero")
	}
	if r.PickupDate.IsZero() || r.DeliveryDate.IsZero() {
		return fmt.Errorf("pickup_date and delivery_date are required")
	}
	if r.PickupDate.After(r.DeliveryDate) {
		return fmt.Errorf("pickup_date must not be after delivery_date")
	}
	return nil
}

// TransitionRequest represents the request payload for moving a load to a
// new lifecycle status.
type TransitionRequest struct {
	Status string `json:"status"`
}

func (r TransitionRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}
