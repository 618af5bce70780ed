// Package wallet provides the operator's signing key: an EVM secp256k1 key
// kept in a passphrase-encrypted file and used the way a browser wallet is,
// through personal_sign.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// KeyStore signs with an in-memory EVM key. It implements ports.KeyStore.
type KeyStore struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeyStore wraps an existing private key.
func NewKeyStore(key *ecdsa.PrivateKey) *KeyStore {
	return &KeyStore{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// GenerateKeyStore creates a key store around a fresh random key.
func GenerateKeyStore() (*KeyStore, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return NewKeyStore(key), nil
}

// ID is the 20-byte EVM address of the key.
func (k *KeyStore) ID() domain.HexBytes {
	return domain.HexBytes(k.address.Bytes())
}

func (k *KeyStore) Address() common.Address {
	return k.address
}

// PrivateKey exposes the key for writing it to a key file.
func (k *KeyStore) PrivateKey() *ecdsa.PrivateKey {
	return k.key
}

// SignMessage produces a personal_sign signature: the message is prefixed
// with the Ethereum signed-message header, hashed, and V is 27 or 28.
func (k *KeyStore) SignMessage(_ context.Context, msg []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(msg), k.key)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverAddress returns the address that produced a personal_sign signature.
func RecoverAddress(msg, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, errors.New("recover address: invalid signature length")
	}
	s := make([]byte, len(sig))
	copy(s, sig)
	if s[crypto.RecoveryIDOffset] >= 27 {
		s[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash(msg), s)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover address: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
