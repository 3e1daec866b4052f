package dto

// ErrorResponse is the envelope for error payloads.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for plain message payloads.
type MessageResponse struct {
	Message string `json:"message"`
}
