package models

import "errors"

// Sentinel errors for business-rule rejections. Handlers map these to HTTP
// status codes; none of them triggers a retry or a partial rollback.
var (
	// ErrNotFound signals a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied signals the acting user neither owns the
	// resource nor is an admin.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError is a business-rule rejection carrying a human-readable
// reason (out-of-order payment, same-month repayment, negative balance).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
