package errors

import (
	"net/http"

	"marketplace/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Business-rule violations
	ErrInvalidOperation = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_OPERATION",
		"operation violates a business rule",
		"",
	)

	// Category tree errors
	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"category not found",
		"",
	)

	ErrParentCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"PARENT_CATEGORY_NOT_FOUND",
		"parent category not found",
		"",
	)

	ErrCategoryCycle = NewBaseError(
		http.StatusUnprocessableEntity,
		"CATEGORY_CYCLE",
		"category cannot become its own ancestor",
		"",
	)

	ErrCycleDetected = NewBaseError(
		http.StatusInternalServerError,
		"CYCLE_DETECTED",
		"category hierarchy exceeded the traversal depth bound",
		"",
	)

	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"this email is already registered",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"failed to create user",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"failed to update user",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrPasswordTooWeak = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_WEAK",
		"password does not meet strength requirements",
		"",
	)

	ErrPasswordForbiddenWords = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_FORBIDDEN_WORDS",
		"password contains forbidden words",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"token is invalid or expired",
		"",
	)

	// Catalog errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusUnprocessableEntity,
		"INSUFFICIENT_STOCK",
		"not enough stock to fulfil the request",
		"",
	)

	// Commerce errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	ErrInvalidStatusTransition = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVALID_STATUS_TRANSITION",
		"order status transition is not allowed",
		"",
	)

	ErrCartNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_NOT_FOUND",
		"cart not found",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusUnprocessableEntity,
		"EMPTY_CART",
		"cart has no items",
		"",
	)

	ErrMixedShopCart = NewBaseError(
		http.StatusUnprocessableEntity,
		"MIXED_SHOP_CART",
		"cart contains items from more than one shop",
		"",
	)

	// Vendor/shop errors
	ErrVendorNotFound = NewBaseError(
		http.StatusNotFound,
		"VENDOR_NOT_FOUND",
		"vendor not found",
		"",
	)

	ErrVendorAlreadyExists = NewBaseError(
		http.StatusConflict,
		"VENDOR_ALREADY_EXISTS",
		"this user already has a vendor profile",
		"",
	)

	ErrShopAlreadyExists = NewBaseError(
		http.StatusConflict,
		"SHOP_ALREADY_EXISTS",
		"shop name or url already in use",
		"",
	)

	ErrShopNotFound = NewBaseError(
		http.StatusNotFound,
		"SHOP_NOT_FOUND",
		"shop not found",
		"",
	)

	ErrSubscriptionNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIPTION_NOT_FOUND",
		"subscription not found",
		"",
	)

	ErrActivityNotFound = NewBaseError(
		http.StatusNotFound,
		"ACTIVITY_NOT_FOUND",
		"activity record not found",
		"",
	)

	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"notification not found",
		"",
	)
)

// NewDatabaseExecuteError wraps an unexpected datastore error so the API
// layer reports a generic internal failure without leaking the cause.
func NewDatabaseExecuteError(err error, message string) error {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		"",
	)

	return errors.Wrap(base, err.Error())
}
