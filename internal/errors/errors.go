// Package errors provides custom error types for the Campfire marketplace API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Error codes shared by every sentinel of the same class.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeStoreFailure = "STORE_FAILURE"
)

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrRateLimited  = &AppError{Code: "RATE_LIMITED", Message: "Too many requests", StatusCode: http.StatusTooManyRequests}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: CodeInvalidInput, Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrForbidden      = &AppError{Code: CodeForbidden, Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrNotFound       = &AppError{Code: CodeNotFound, Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConflict       = &AppError{Code: CodeConflict, Message: "Resource conflict", StatusCode: http.StatusConflict}
	ErrStoreFailure   = &AppError{Code: CodeStoreFailure, Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Holding errors.
var (
	ErrHoldingNotFound = &AppError{Code: CodeNotFound, Message: "Holding not found", StatusCode: http.StatusNotFound}
	ErrNotHoldingOwner = &AppError{Code: CodeForbidden, Message: "Only the current holder can list this badge", StatusCode: http.StatusForbidden}
	ErrOwnershipDrift  = &AppError{Code: CodeConflict, Message: "Holding ownership changed since the listing was created", StatusCode: http.StatusConflict}
)

// Award errors.
var (
	ErrCatalogItemNotFound  = &AppError{Code: CodeNotFound, Message: "Catalog item not found", StatusCode: http.StatusNotFound}
	ErrDuplicateChainObject = &AppError{Code: CodeConflict, Message: "A holding already exists for this chain object", StatusCode: http.StatusConflict}
)

// Listing errors.
var (
	ErrListingNotFound     = &AppError{Code: CodeNotFound, Message: "Listing not found", StatusCode: http.StatusNotFound}
	ErrOpenListingExists   = &AppError{Code: CodeConflict, Message: "This badge already has an open listing", StatusCode: http.StatusConflict}
	ErrInvalidPrice        = &AppError{Code: CodeInvalidInput, Message: "Price must be a positive number", StatusCode: http.StatusBadRequest}
	ErrListingUnavailable  = &AppError{Code: CodeInvalidInput, Message: "Listing no longer available", StatusCode: http.StatusBadRequest}
	ErrSelfPurchase        = &AppError{Code: CodeInvalidInput, Message: "You cannot purchase your own listing", StatusCode: http.StatusBadRequest}
	ErrNotSeller           = &AppError{Code: CodeForbidden, Message: "Only the seller can perform this action", StatusCode: http.StatusForbidden}
	ErrNotBuyer            = &AppError{Code: CodeForbidden, Message: "Only the reserving buyer can perform this action", StatusCode: http.StatusForbidden}
	ErrNotParticipant      = &AppError{Code: CodeForbidden, Message: "Only the buyer or seller can release this reservation", StatusCode: http.StatusForbidden}
	ErrNotActive           = &AppError{Code: CodeInvalidInput, Message: "Listing is not active", StatusCode: http.StatusBadRequest}
	ErrNotPaymentPending   = &AppError{Code: CodeInvalidInput, Message: "Listing is not awaiting payment", StatusCode: http.StatusBadRequest}
	ErrNotAwaitingTransfer = &AppError{Code: CodeInvalidInput, Message: "Listing is not awaiting transfer", StatusCode: http.StatusBadRequest}
	ErrNoBuyer             = &AppError{Code: CodeInvalidInput, Message: "Listing has no buyer", StatusCode: http.StatusBadRequest}
	ErrMissingPaymentTx    = &AppError{Code: CodeInvalidInput, Message: "Payment transaction hash is required", StatusCode: http.StatusBadRequest}
	ErrMissingTransferTx   = &AppError{Code: CodeInvalidInput, Message: "Transfer transaction hash is required", StatusCode: http.StatusBadRequest}
	ErrMissingAction       = &AppError{Code: CodeInvalidInput, Message: "Action is required", StatusCode: http.StatusBadRequest}
	ErrUnknownAction       = &AppError{Code: CodeInvalidInput, Message: "Unknown action", StatusCode: http.StatusBadRequest}
)
