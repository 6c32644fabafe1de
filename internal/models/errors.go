package models

import "errors"

// Application-wide standard errors
var (
	// Request validation
	ErrInvalidRequest = errors.New("invalid request data")

	// Record store lookups
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrUserNotFound      = errors.New("user not found")

	// Recipient is known but has no delivery token on file
	ErrTokenUnavailable = errors.New("recipient has no fcm token")

	// Downstream push-delivery failure
	ErrDeliveryFailed = errors.New("notification delivery failed")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
)

// Stable machine-readable error codes returned alongside the legacy
// human-readable error string.
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeRecipientNotFound = "RECIPIENT_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeTokenUnavailable  = "TOKEN_UNAVAILABLE"
	ErrCodeDeliveryFailed    = "DELIVERY_FAILED"
	ErrCodeInternal          = "INTERNAL"
)
