// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Transport errors.
	ErrTransportNotReady = errors.New("transport not ready")
	ErrSendFailed        = errors.New("send failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

