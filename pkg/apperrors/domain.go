package apperrors

import (
	"fmt"
	"net/http"
)

// Factories and predefined variables for the domain errors of the booking
// ledger, the matching engine and the skill/profile boundary.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound or a repo
// sentinel) into a 404 AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrNotParty is returned when the caller is not the party a booking
// operation requires (structural authorization, not cryptographic).
func ErrNotParty(message string) *AppError {
	return New(CodeForbidden, "booking", message, http.StatusForbidden)
}

// ErrInvalidStatus rejects a transition attempted from a state that forbids
// it. The message must name the current status.
func ErrInvalidStatus(message string) *AppError {
	return New(CodeInvalidStatus, "booking", message, http.StatusConflict)
}

// ErrInsufficientPoints is returned when a mentee tries to create a booking
// with an empty balance.
func ErrInsufficientPoints(balance int) *AppError {
	return New(
		CodeLimitExceeded,
		"ledger",
		fmt.Sprintf("Not enough GivePoints. You have %d, need at least 1.", balance),
		http.StatusConflict,
	)
}

// ErrUpstream wraps a failure of the embedding provider or the similarity
// backend.
func ErrUpstream(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, "embedding", message, http.StatusServiceUnavailable)
}

// ErrReviewExists rejects the second review for a booking.
var ErrReviewExists = New(
	CodeAlreadyExists,
	"review",
	"Review already submitted for this session",
	http.StatusConflict,
)

// ErrInvalidRating rejects a rating outside [1,5].
var ErrInvalidRating = New(
	CodeValidationFailed,
	"review",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)

// ErrSelfBooking rejects a booking where the mentee books themself.
var ErrSelfBooking = New(
	CodeInvalidOperation,
	"booking",
	"You cannot book a session with yourself",
	http.StatusBadRequest,
)
