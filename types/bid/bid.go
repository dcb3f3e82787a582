package bid

import (
	"fmt"
)

// BidCreateRequest represents the request payload for a driver submitting a
// bid against a load.
type BidCreateRequest struct {
	LoadID    string  `json:"load_id"`
	AmountUsd float64 `json:"amount_usd"`
	Message   string  `json:"message"`
}

func (r BidCreateRequest) Validate() error {
	if r.LoadID == "" {
		return fmt.Errorf("load_id is required")
	}
	if r.AmountUsd <= 0 {
		return fmt.Errorf("amount_usd must be greater than zero")
	}
	return nil
}
