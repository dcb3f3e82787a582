package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// Client talks to the external ML pricing service. It only ever suggests
// amounts; it is not part of the bid state machine and callers are expected
// to degrade gracefully when it is down.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// RequestEstimate asks the ML service for a price prediction for a trip of
// the given distance starting at pickup time.
func (c *Client) RequestEstimate(distanceKm float64, pickup time.Time, temperature, precipitation float64) (*Estimate, error) {
	if temperature == 0 {
		temperature = 25.0
	}

	// The model counts days from Monday = 0.
	dayOfWeek := (int(pickup.Weekday()) + 6) % 7

	body, err := json.Marshal(estimateRequest{
		Distance:      distanceKm,
		Hour:          pickup.Hour(),
		DayOfWeek:     dayOfWeek,
		Temperature:   temperature,
		Precipitation: precipitation,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/estimate", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("pricing API returned non-OK status: " + resp.Status)
	}

	var estimate Estimate
	if err := json.NewDecoder(resp.Body).Decode(&estimate); err != nil {
		return nil, err
	}

	return &estimate, nil
}
