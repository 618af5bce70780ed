package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/wallet"
)

const accountsPageSize = 100

// Main account keys may administer the account and transfer.
var mainKeyFlags = []string{"A", "T"}

// authDescriptor grants a single signer the listed permissions on an account.
type authDescriptor struct {
	AuthType string            `json:"auth_type"`
	Signers  []domain.HexBytes `json:"signers"`
	Flags    []string          `json:"flags"`
	Rules    *expiryRule       `json:"rules,omitempty"`
}

// expiryRule limits a descriptor to timestamps (ms) before Value.
type expiryRule struct {
	Name  string `json:"name"`
	Op    string `json:"op"`
	Value int64  `json:"value"`
}

func singleSig(signer domain.HexBytes, flags []string) authDescriptor {
	return authDescriptor{AuthType: "S", Signers: []domain.HexBytes{signer}, Flags: flags}
}

func sessionDescriptor(signer domain.HexBytes, cfg domain.LoginConfig, expires time.Time) authDescriptor {
	d := singleSig(signer, cfg.Flags)
	d.Rules = &expiryRule{Name: "valid_until", Op: "lt", Value: expires.UnixMilli()}
	return d
}

// Gateway implements ports.AuthGateway on top of a Client. Sessions are
// backed by a disposable key that the wallet key authorises for the
// configured TTL.
type Gateway struct {
	client     *Client
	newSignKey func() (*wallet.KeyStore, error)
	now        func() time.Time
	log        zerolog.Logger
}

func NewGateway(client *Client, log zerolog.Logger) *Gateway {
	return &Gateway{
		client:     client,
		newSignKey: wallet.GenerateKeyStore,
		now:        time.Now,
		log:        log,
	}
}

type accountsPage struct {
	Data []domain.WalletAccount `json:"data"`
}

// Accounts lists the accounts ks is a signer of.
func (g *Gateway) Accounts(ctx context.Context, ks ports.KeyStore) ([]domain.WalletAccount, error) {
	var page accountsPage
	args := map[string]any{
		"id":          ks.ID(),
		"page_size":   accountsPageSize,
		"page_cursor": nil,
	}
	if err := g.client.Query(ctx, "ft4.get_accounts_by_signer", args, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		return []domain.WalletAccount{}, nil
	}
	return page.Data, nil
}

// Login authorises a fresh session key on accountID, signed by both keys.
func (g *Gateway) Login(ctx context.Context, ks ports.KeyStore, accountID domain.HexBytes, cfg domain.LoginConfig) (ports.Session, error) {
	sk, err := g.newSignKey()
	if err != nil {
		return nil, err
	}
	expires := g.now().Add(cfg.TTL)

	tx := NewTransaction(g.client.Network().BlockchainRID,
		op("ft4.ft_auth", accountID, ks.ID()),
		op("ft4.add_auth_descriptor", sessionDescriptor(sk.ID(), cfg, expires)),
	)
	if err := tx.Sign(ctx, ks, sk); err != nil {
		return nil, err
	}
	if _, err := g.client.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	g.log.Debug().Str("account", accountID.String()).Time("expires", expires).Msg("session key authorised")
	return newSession(g.client, accountID, sk, expires), nil
}

// Register opens a new account for ks with a session key and runs op in the
// same transaction.
func (g *Gateway) Register(ctx context.Context, ks ports.KeyStore, cfg domain.LoginConfig, operation domain.Operation) (ports.Session, error) {
	sk, err := g.newSignKey()
	if err != nil {
		return nil, err
	}
	expires := g.now().Add(cfg.TTL)
	if operation.Args == nil {
		operation.Args = []any{}
	}

	tx := NewTransaction(g.client.Network().BlockchainRID,
		op("ft4.ras_open", singleSig(ks.ID(), mainKeyFlags), sessionDescriptor(sk.ID(), cfg, expires)),
		op("ft4.register_account"),
		operation,
	)
	if err := tx.Sign(ctx, ks, sk); err != nil {
		return nil, err
	}
	if _, err := g.client.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	accounts, err := g.Accounts(ctx, ks)
	if err != nil {
		return nil, fmt.Errorf("register: look up new account: %w", err)
	}
	if len(accounts) == 0 {
		return nil, errors.New("register: account not found after registration")
	}
	return newSession(g.client, accounts[0].ID, sk, expires), nil
}
