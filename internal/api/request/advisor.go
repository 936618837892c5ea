package request

// AdvisorRequest is one user question for the advisory chat.
type AdvisorRequest struct {
	Message string `json:"message"`
}

// GeminiKeyRequest carries the API key stored via the settings endpoint.
type GeminiKeyRequest struct {
	APIKey string `json:"apiKey"`
}
