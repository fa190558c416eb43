package models

// Successful transcript response
type TranscriptResponse struct {
	Text string `json:"text"`
}

// Error body served on every failed request
type JSONErrorData struct {
	Error string `json:"error"`
}

// Liveness probe response
type HealthResponse struct {
	Status string `json:"status"`
}
