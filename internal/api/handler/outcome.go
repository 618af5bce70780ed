package handler

import (
	"errors"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// outcome turns a service result into a low-cardinality metric label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNoSession):
		return "no_session"
	case errors.Is(err, domain.ErrSessionActive):
		return "session_active"
	case errors.Is(err, domain.ErrBootstrapInFlight):
		return "bootstrap_in_flight"
	case errors.Is(err, domain.ErrWalletUnavailable):
		return "wallet_unavailable"
	case errors.Is(err, domain.ErrWalletConnectionRejected):
		return "wallet_rejected"
	case errors.Is(err, domain.ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, domain.ErrRoleConflict):
		return "role_conflict"
	case errors.Is(err, domain.ErrLoginFailed):
		return "login_failed"
	case errors.Is(err, domain.ErrRegistrationFailed):
		return "registration_failed"
	case errors.Is(err, domain.ErrSoldOut):
		return "sold_out"
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, domain.ErrMintInFlight):
		return "in_flight"
	case errors.Is(err, domain.ErrCollectionNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrQueryFailed):
		return "query_failed"
	default:
		return "failed"
	}
}
