package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Duplicate names are
	// checked before the failures that wrap them.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, "no active session"
	case errors.Is(err, domain.ErrWrongRole):
		return http.StatusForbidden, "action not allowed for this role"
	case errors.Is(err, domain.ErrWalletConnectionRejected):
		return http.StatusForbidden, "wallet connection rejected"
	case errors.Is(err, domain.ErrWalletUnavailable):
		return http.StatusPreconditionFailed, "no wallet found"
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict, "name already exists"
	case errors.Is(err, domain.ErrSessionActive),
		errors.Is(err, domain.ErrBootstrapInFlight),
		errors.Is(err, domain.ErrRoleConflict),
		errors.Is(err, domain.ErrSoldOut),
		errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrMintInFlight):
		return http.StatusConflict, conflictMessage(err)
	case errors.Is(err, domain.ErrCollectionNotFound):
		return http.StatusNotFound, "collection not found"
	case errors.Is(err, domain.ErrLoginFailed),
		errors.Is(err, domain.ErrRegistrationFailed),
		errors.Is(err, domain.ErrProfileFetchFailed),
		errors.Is(err, domain.ErrQueryFailed),
		errors.Is(err, domain.ErrMintFailed),
		errors.Is(err, domain.ErrCollectionCreateFailed):
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("ledger request failed")
		return http.StatusBadGateway, gatewayMessage(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func conflictMessage(err error) string {
	for _, known := range []error{
		domain.ErrSessionActive,
		domain.ErrBootstrapInFlight,
		domain.ErrRoleConflict,
		domain.ErrSoldOut,
		domain.ErrAlreadyClaimed,
		domain.ErrMintInFlight,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "conflict"
}

func gatewayMessage(err error) string {
	for _, known := range []error{
		domain.ErrLoginFailed,
		domain.ErrRegistrationFailed,
		domain.ErrProfileFetchFailed,
		domain.ErrMintFailed,
		domain.ErrCollectionCreateFailed,
		domain.ErrQueryFailed,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "ledger unavailable"
}
