package ports

import (
	"context"
	"time"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// Session is an authorised, time-limited handle on one ledger account.
// It is immutable once created and safe for concurrent use.
type Session interface {
	AccountID() domain.HexBytes
	ExpiresAt() time.Time
	// Query runs a read-only ledger query and decodes the result into out.
	Query(ctx context.Context, name string, args map[string]any, out any) error
	// Call submits a state-changing operation and waits for it to be confirmed.
	Call(ctx context.Context, name string, args ...any) (*domain.Receipt, error)
}

// KeyStore is a connected wallet signing key.
type KeyStore interface {
	// ID is the signer identifier the ledger knows the key by.
	ID() domain.HexBytes
	// SignMessage signs an arbitrary message the way a browser wallet does.
	SignMessage(ctx context.Context, msg []byte) ([]byte, error)
}

// WalletProvider connects to the operator's wallet.
type WalletProvider interface {
	// Connect returns domain.ErrWalletUnavailable when no wallet exists and
	// domain.ErrWalletConnectionRejected when the operator declines.
	Connect(ctx context.Context) (KeyStore, error)
}

// AuthGateway is the ledger's account and session surface.
type AuthGateway interface {
	// Accounts lists every account associated with the key, in ledger order.
	Accounts(ctx context.Context, ks KeyStore) ([]domain.WalletAccount, error)
	// Login starts a session on an existing account.
	Login(ctx context.Context, ks KeyStore, accountID domain.HexBytes, cfg domain.LoginConfig) (Session, error)
	// Register creates an account for the key and runs op in the same transaction.
	Register(ctx context.Context, ks KeyStore, cfg domain.LoginConfig, op domain.Operation) (Session, error)
}

// GatewayProvider hands out the ledger gateway, creating it at most once.
type GatewayProvider interface {
	Gateway(ctx context.Context, devMode bool) (AuthGateway, error)
}
