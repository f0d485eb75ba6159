package apperrors

import (
	"net/http"
)

// Factories and predefined values for the errors the domain services
// return. Messages for validation/conflict/forbidden cases are written
// to be shown to users verbatim.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrInvalidTransition is the conflict raised when a booking is asked to
// move along an edge the state machine does not have. Kept distinct from
// generic validation by code and message.
func ErrInvalidTransition(from, to string) *AppError {
	return New(
		CodeInvalidTransition,
		"booking",
		"Cannot change booking status from '"+from+"' to '"+to+"'",
		http.StatusBadRequest,
	)
}

// ErrTransitionRaceLost is returned when the conditional status update
// affected no rows: another request changed the booking first.
func ErrTransitionRaceLost() *AppError {
	return New(
		CodeConflict,
		"booking",
		"Booking status was changed by a concurrent request, please retry",
		http.StatusConflict,
	)
}

var ErrNotBookingOwner = New(
	CodeForbidden,
	"booking",
	"Only the provider of this tour can change the booking status",
	http.StatusForbidden,
)

var ErrTourNotFound = New(
	CodeNotFound,
	"tour",
	"Tour not found",
	http.StatusNotFound,
)

var ErrBookingNotFound = New(
	CodeNotFound,
	"booking",
	"Booking not found",
	http.StatusNotFound,
)

// --- Chat ---

var ErrSelfMessage = New(
	CodeValidationFailed,
	"chat",
	"You cannot send a message to yourself",
	http.StatusBadRequest,
)

var ErrEmptyMessage = New(
	CodeValidationFailed,
	"chat",
	"Message text must not be empty",
	http.StatusBadRequest,
)

var ErrMessageNotFound = New(
	CodeNotFound,
	"chat",
	"Message not found",
	http.StatusNotFound,
)

var ErrNotParticipant = New(
	CodeForbidden,
	"chat",
	"You are not a participant of this conversation",
	http.StatusForbidden,
)

// --- Notifications ---

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// --- Auth & accounts ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrAccountBlocked = New(
	CodeAccountBlocked,
	"auth",
	"Your account has been blocked",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Disputes & badges ---

var ErrDisputeNotFound = New(
	CodeNotFound,
	"dispute",
	"Dispute not found",
	http.StatusNotFound,
)

var ErrBadgeRequestNotFound = New(
	CodeNotFound,
	"badge",
	"Badge request not found",
	http.StatusNotFound,
)
