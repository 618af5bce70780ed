package wallet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

// FileWallet connects to the key stored in an encrypted key file.
type FileWallet struct {
	path       string
	passphrase string
	log        zerolog.Logger
}

// NewFileWallet returns a wallet reading path on every Connect.
func NewFileWallet(path, passphrase string, log zerolog.Logger) *FileWallet {
	return &FileWallet{path: path, passphrase: passphrase, log: log}
}

// Connect decrypts the key file. A missing file means no wallet is installed;
// a missing or wrong passphrase is treated as the operator declining.
func (w *FileWallet) Connect(_ context.Context) (ports.KeyStore, error) {
	if w.path == "" {
		return nil, domain.ErrWalletUnavailable
	}
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrWalletUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}
	if w.passphrase == "" {
		return nil, domain.ErrWalletConnectionRejected
	}

	key, err := DecryptKey(data, w.passphrase)
	if errors.Is(err, ErrBadPassphrase) {
		return nil, domain.ErrWalletConnectionRejected
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}

	ks := NewKeyStore(key)
	w.log.Debug().Str("address", ks.Address().Hex()).Msg("wallet connected")
	return ks, nil
}
