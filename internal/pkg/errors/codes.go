package errors

import "net/http"

var (
	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"No route could be computed by any routing backend",
		http.StatusNotFound,
	)

	ErrBackendUnavailable = New(
		"BACKEND_UNAVAILABLE",
		"Routing backend unavailable",
		http.StatusServiceUnavailable,
	)

	ErrEmptyInput = New(
		"EMPTY_INPUT",
		"Empty geometric input",
		http.StatusBadRequest,
	)

	ErrPOINotFound = New(
		"POI_NOT_FOUND",
		"POI not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidSettings = New(
		"INVALID_ROUTE_SETTINGS",
		"Invalid route settings",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
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
