// Package errors provides the standardized error taxonomy for the API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodeAccessCodeInvalid      ErrorCode = "ACCESS_CODE_INVALID"
	ErrCodeCampaignNotFound       ErrorCode = "CAMPAIGN_NOT_FOUND"
	ErrCodeConfigurationError     ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeStoreQueryFailed       ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeStoreInsertFailed      ErrorCode = "STORE_INSERT_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeRateLimited            ErrorCode = "RATE_LIMITED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationError creates a non-retryable bad-input error.
func NewValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAccessCodeInvalidError creates a non-retryable authorization error
// for a code that matches no active campaign.
func NewAccessCodeInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAccessCodeInvalid,
		Message:   "Invalid or inactive access code",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCampaignNotFoundError creates a non-retryable authorization error
// for the candidate-listing path (maps to 403 rather than 401).
func NewCampaignNotFoundError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCampaignNotFound,
		Message:   "This campaign link has expired or is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a non-retryable missing-settings error.
// Details stay server-side; only Message is client-safe.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationError,
		Message:   "Server configuration error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryError creates a retryable record store query error.
func NewStoreQueryError(table string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   "Record store query failed",
		Details:   fmt.Sprintf("table: %s, error: %s", table, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreInsertError creates a retryable record store write error.
func NewStoreInsertError(table string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreInsertFailed,
		Message:   "Record store write failed",
		Details:   fmt.Sprintf("table: %s, error: %s", table, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendError creates a retryable email delivery error.
func NewNotificationSendError(kind string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("kind: %s, error: %s", kind, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a non-retryable throttle error.
func NewRateLimitedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many attempts, slow down",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus returns the HTTP status code for an error. Unknown errors
// collapse to 500.
func HTTPStatus(err error) int {
	stdErr, ok := err.(*StandardError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch stdErr.Code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAccessCodeInvalid:
		return http.StatusUnauthorized
	case ErrCodeCampaignNotFound:
		return http.StatusForbidden
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message that is safe to show callers.
// Configuration and store failures never leak Details.
func ClientMessage(err error) string {
	stdErr, ok := err.(*StandardError)
	if !ok {
		return "Internal server error"
	}
	switch stdErr.Code {
	case ErrCodeConfigurationError:
		return "Server configuration error. Please contact support."
	case ErrCodeStoreQueryFailed, ErrCodeStoreInsertFailed:
		return "Failed to fetch data. Please try again later."
	default:
		return stdErr.Message
	}
}
