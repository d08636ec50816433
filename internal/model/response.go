package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Actor is the identity supplied by the authentication layer on every mutating call.
type Actor struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}
