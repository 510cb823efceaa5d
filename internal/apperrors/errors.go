package apperrors

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned for resources belonging to another company, so callers
// cannot distinguish "does not exist" from "not yours".
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the request carries no usable credential.
var ErrUnauthorized = errors.New("authentication required")

// ErrForbidden indicates that the authenticated user lacks the required role.
var ErrForbidden = errors.New("insufficient permissions")

// ErrEmailNotVerified indicates a correct login against an account that has not
// completed email verification yet.
var ErrEmailNotVerified = errors.New("email not verified")

// ErrAccountDisabled indicates an authentication attempt against a deactivated account.
var ErrAccountDisabled = errors.New("account is disabled")

// ErrAlreadyVerified indicates a verification attempt against an already verified account.
var ErrAlreadyVerified = errors.New("account already verified")

// ErrCodeInvalid indicates that a submitted verification code does not match.
var ErrCodeInvalid = errors.New("verification code is invalid")

// ErrCodeExpired indicates that a verification code is past its validity window.
var ErrCodeExpired = errors.New("verification code has expired")

// ErrAlreadyPaid indicates a payment attempt against an expense that is already settled.
var ErrAlreadyPaid = errors.New("expense is already paid")

// ErrCannotDeletePaid indicates a delete attempt against a paid expense.
var ErrCannotDeletePaid = errors.New("paid expenses cannot be deleted")

// ErrUnknownCurrency indicates a currency code outside the supported set.
var ErrUnknownCurrency = errors.New("unknown currency code")

// ErrInvalidStatus indicates a shipment status outside the known lifecycle.
var ErrInvalidStatus = errors.New("invalid shipment status")

// ErrShipmentClosed indicates a mutation attempt against a closed or archived shipment.
var ErrShipmentClosed = errors.New("shipment can no longer be modified")

// ErrAssistantUnavailable indicates that the assistant collaborator is not configured.
var ErrAssistantUnavailable = errors.New("assistant is not available")

// AppError pairs an HTTP status hint with an underlying error, for faults that
// have no dedicated sentinel (mostly infrastructure failures).
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// LockedError is returned when login is refused because the account is locked
// out after repeated failures. RetryAfter is the remaining lock duration.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %d minute(s)", e.RetryAfterMinutes())
}

// RetryAfterMinutes reports the remaining lockout rounded up to whole minutes,
// never less than 1 so clients always see a usable wait time.
func (e *LockedError) RetryAfterMinutes() int {
	m := int(math.Ceil(e.RetryAfter.Minutes()))
	if m < 1 {
		m = 1
	}
	return m
}

// InsufficientBalanceError is returned when paying a disbursement would drive
// the shipment balance negative. Available carries the balance at decision time
// so the client can surface it.
type InsufficientBalanceError struct {
	Available int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: %d available, %d requested", e.Available, e.Requested)
}
