package errors

import "net/http"

var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrIndexEmpty = New(
		"INDEX_EMPTY",
		"Map index holds no routable nodes",
		http.StatusServiceUnavailable,
	)

	ErrTooManyRequests = New(
		"TOO_MANY_REQUESTS",
		"Rate limit exceeded",
		http.StatusTooManyRequests,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
