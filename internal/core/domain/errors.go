package domain

import (
	"errors"
	"strings"
)

var (
	ErrWalletUnavailable        = errors.New("wallet unavailable")
	ErrWalletConnectionRejected = errors.New("wallet connection rejected")
	ErrLoginFailed              = errors.New("login failed")
	ErrRegistrationFailed       = errors.New("registration failed")
	ErrDuplicateName            = errors.New("name already exists")
	ErrRoleConflict             = errors.New("account already registered under the other role")
	ErrProfileFetchFailed       = errors.New("profile fetch failed")
	ErrMintFailed               = errors.New("mint failed")
	ErrValidation               = errors.New("validation failed")

	ErrNoSession              = errors.New("no active session")
	ErrSessionActive          = errors.New("a session is already active")
	ErrBootstrapInFlight      = errors.New("a login is already in progress")
	ErrWrongRole              = errors.New("session role does not allow this action")
	ErrSoldOut                = errors.New("collection sold out")
	ErrAlreadyClaimed         = errors.New("voucher already claimed from this collection")
	ErrMintInFlight           = errors.New("mint already in progress for this collection")
	ErrCollectionNotFound     = errors.New("collection not found")
	ErrCollectionCreateFailed = errors.New("collection creation failed")
	ErrQueryFailed            = errors.New("ledger query failed")
)

// duplicateKeyMarker is the fragment the ledger puts in unique-constraint rejections.
const duplicateKeyMarker = "duplicate key value violates unique constraint"

// IsDuplicateKey reports whether a remote error is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), duplicateKeyMarker)
}
