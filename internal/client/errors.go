package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for common API error cases.
var (
	// ErrNotFound is returned when the requested zone does not exist.
	ErrNotFound = errors.New("dhaka2070: zone not found")
	// ErrUnauthenticated is returned when the server rejects the bearer token.
	ErrUnauthenticated = errors.New("dhaka2070: unauthenticated")
)

// APIError represents a structured error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dhaka2070: status %d: %s", e.StatusCode, e.Message)
}

// parseError maps a non-2xx response to a sentinel or APIError.
func parseError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: statusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
}
