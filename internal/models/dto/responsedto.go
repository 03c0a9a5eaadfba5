package dto

type MessageResponseDTO struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ValidationErrorResponseDTO struct {
	Errors []string `json:"errors"`
}

type RateLimitResponse struct {
	Message string `json:"message"`
}
