package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-fridge-tracker/internal/model"
)

// Timeout bounds request handling. Long-lived routes such as the change feed
// must be mounted outside it because http.TimeoutHandler cannot be hijacked.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "REQUEST_TIMEOUT", Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
