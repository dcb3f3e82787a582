package job

import (
	"fmt"
)

// DirectOfferRequest represents the request payload for a client offering a
// job straight to a driver, bypassing the bidding round.
type DirectOfferRequest struct {
	DriverID string  `json:"driver_id"`
	LoadID   string  `json:"load_id"`
	RateUsd  float64 `json:"rate_usd"`
	Message  string  `json:"message"`
}

func (r DirectOfferRequest) Validate() error {
	if r.DriverID == "" {
		return fmt.Errorf("driver_id is required")
	}
	if r.LoadID == "" {
		return fmt.Errorf("load_id is required")
	}
	if r.RateUsd <= 0 {
		return fmt.Errorf("rate_usd must be greater than zero")
	}
	return nil
}
