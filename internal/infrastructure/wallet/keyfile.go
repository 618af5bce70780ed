package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// Key files use the Web3 Secret Storage format, so they can be moved to and
// from other Ethereum tooling.
var (
	scryptN = keystore.StandardScryptN
	scryptP = keystore.StandardScryptP
)

// ErrBadPassphrase is returned when a key file cannot be opened with the
// given passphrase.
var ErrBadPassphrase = errors.New("wallet: wrong passphrase")

// EncryptKey seals key into a version 3 key file.
func EncryptKey(key *ecdsa.PrivateKey, passphrase string) ([]byte, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("key id: %w", err)
	}
	data, err := keystore.EncryptKey(&keystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}, passphrase, scryptN, scryptP)
	if err != nil {
		return nil, fmt.Errorf("encrypt key: %w", err)
	}
	return data, nil
}

// DecryptKey opens a key file produced by EncryptKey or any other Web3
// Secret Storage writer.
func DecryptKey(data []byte, passphrase string) (*ecdsa.PrivateKey, error) {
	key, err := keystore.DecryptKey(data, passphrase)
	if errors.Is(err, keystore.ErrDecrypt) {
		return nil, ErrBadPassphrase
	}
	if err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	return key.PrivateKey, nil
}

// WriteKeyFile encrypts key and writes it to path. An existing file is never
// overwritten.
func WriteKeyFile(path string, key *ecdsa.PrivateKey, passphrase string) error {
	if passphrase == "" {
		return errors.New("passphrase must not be empty")
	}
	data, err := EncryptKey(key, passphrase)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write key file: %w", err)
	}
	return f.Close()
}
