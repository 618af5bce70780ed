package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/wallet"
)

// session implements ports.Session. Every call is authenticated with the
// session key, never the wallet key.
type session struct {
	client  *Client
	account domain.HexBytes
	key     *wallet.KeyStore
	expires time.Time
}

func newSession(client *Client, account domain.HexBytes, key *wallet.KeyStore, expires time.Time) *session {
	return &session{client: client, account: account, key: key, expires: expires}
}

func (s *session) AccountID() domain.HexBytes { return s.account }

func (s *session) ExpiresAt() time.Time { return s.expires }

func (s *session) Query(ctx context.Context, name string, args map[string]any, out any) error {
	return s.client.Query(ctx, name, args, out)
}

func (s *session) Call(ctx context.Context, name string, args ...any) (*domain.Receipt, error) {
	if !time.Now().Before(s.expires) {
		return nil, domain.ErrNoSession
	}
	tx := NewTransaction(s.client.Network().BlockchainRID,
		op("ft4.ft_auth", s.account, s.key.ID()),
		op(name, args...),
	)
	if err := tx.Sign(ctx, s.key); err != nil {
		return nil, err
	}
	receipt, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return receipt, nil
}
