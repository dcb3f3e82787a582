package pricing

// estimateRequest is the payload the ML service expects. Hour and DayOfWeek
// are derived from the pickup time; the model counts days from Monday = 0.
type estimateRequest struct {
	Distance      float64 `json:"distance"`
	Hour          int     `json:"hour"`
	DayOfWeek     int     `json:"day_of_week"`
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
}

// Estimate is the ML service's prediction.
type Estimate struct {
	EstimateUsd  float64            `json:"estimate_usd"`
	Confidence   float64            `json:"confidence"`
	Breakdown    map[string]float64 `json:"breakdown"`
	Range        map[string]float64 `json:"range"`
	ModelVersion string             `json:"model_version"`
}
