package client

import (
	"encoding/json"
	"fmt"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// UnmarshalJSON accepts both a flat error body and the mock server's
// {"success": false, "error": {...}} envelope.
func (e *APIError) UnmarshalJSON(data []byte) error {
	type flat struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}
	var body struct {
		flat
		Error *flat `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	src := body.flat
	if body.Error != nil {
		src = *body.Error
	}
	e.Code, e.Message, e.Details = src.Code, src.Message, src.Details
	return nil
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true if the error is a 401 unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsRateLimited returns true if the error is a 429 too many requests error
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
