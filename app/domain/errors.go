package domain

import "errors"

// Identity provider and session errors
var (
	// Identity provider errors (user-facing, non-fatal)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
	ErrIdentityNotFound   = errors.New("identity not found")

	// Session errors
	ErrProfileMissing   = errors.New("profile missing for authenticated identity")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTooManyAttempts  = errors.New("too many login attempts")

	// Store errors
	ErrStoreUninitialized = errors.New("record store not initialized")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrListenerClosed     = errors.New("listener closed")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidRole  = errors.New("invalid role")
)

// IdentityError wraps identity-provider failures with a stable code so
// callers can present a message without inspecting provider internals.
type IdentityError struct {
	Code    string
	Message string
	Cause   error
}

func (e *IdentityError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *IdentityError) Unwrap() error {
	return e.Cause
}

// NewIdentityError creates a new identity provider error
func NewIdentityError(code, message string, cause error) *IdentityError {
	return &IdentityError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Identity error codes
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeAccountDisabled     = "ACCOUNT_DISABLED"
	ErrCodeEmailInUse          = "EMAIL_IN_USE"
	ErrCodeWeakPassword        = "WEAK_PASSWORD"
	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
)

// StoreError carries the failing store operation alongside its cause.
type StoreError struct {
	Op         string
	Collection string
	Cause      error
}

func (e *StoreError) Error() string {
	if e.Collection != "" {
		return "store " + e.Op + " " + e.Collection + ": " + e.Cause.Error()
	}
	return "store " + e.Op + ": " + e.Cause.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new store error
func NewStoreError(op, collection string, cause error) *StoreError {
	return &StoreError{
		Op:         op,
		Collection: collection,
		Cause:      cause,
	}
}
