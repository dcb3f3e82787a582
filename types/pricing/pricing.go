package pricing

import (
	"fmt"
	"time"
)

// EstimateRequest represents the request payload for a price suggestion.
type EstimateRequest struct {
	DistanceKm     float64   `json:"distance_km"`
	PickupDatetime time.Time `json:"pickup_datetime"`
	Temperature    float64   `json:"temperature"`
	Precipitation  float64   `json:"precipitation"`
}

func (r EstimateRequest) Validate() error {
	if r.DistanceKm <= 0 {
		return fmt.Errorf("distance_km must be greater than zero")
	}
	if r.PickupDatetime.IsZero() {
		return fmt.Errorf("pickup_datetime is required")
	}
	return nil
}

// EstimateResponse is the suggested price returned to the frontend.
// Available is false when the estimator could not be reached; that is a
// degraded answer, not an error.
type EstimateResponse struct {
	Available    bool               `json:"available"`
	EstimateUsd  float64            `json:"estimate_usd,omitempty"`
	SuggestedBid float64            `json:"suggested_bid,omitempty"`
	Confidence   float64            `json:"confidence,omitempty"`
	Breakdown    map[string]float64 `json:"breakdown,omitempty"`
	Range        map[string]float64 `json:"range,omitempty"`
	ModelVersion string             `json:"model_version,omitempty"`
}
