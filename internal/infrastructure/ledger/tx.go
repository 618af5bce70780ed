package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

// Transaction is a batch of operations signed by every listed signer. Its RID
// is the Keccak-256 hash of the unsigned body, and each signer signs the RID.
type Transaction struct {
	BlockchainRID string             `json:"blockchain_rid"`
	Operations    []domain.Operation `json:"operations"`
	Signers       []domain.HexBytes  `json:"signers"`
	Signatures    []domain.HexBytes  `json:"signatures"`
}

// NewTransaction starts an unsigned transaction on the given chain.
func NewTransaction(blockchainRID string, ops ...domain.Operation) *Transaction {
	return &Transaction{BlockchainRID: blockchainRID, Operations: ops}
}

func op(name string, args ...any) domain.Operation {
	if args == nil {
		args = []any{}
	}
	return domain.Operation{Name: name, Args: args}
}

// RID hashes the canonical JSON of the transaction body without signatures.
func (t *Transaction) RID() (domain.HexBytes, error) {
	body, err := canonicalJSON(struct {
		BlockchainRID string             `json:"blockchain_rid"`
		Operations    []domain.Operation `json:"operations"`
		Signers       []domain.HexBytes  `json:"signers"`
	}{t.BlockchainRID, t.Operations, t.Signers})
	if err != nil {
		return nil, fmt.Errorf("encode transaction body: %w", err)
	}
	return domain.HexBytes(crypto.Keccak256(body)), nil
}

// canonicalJSON encodes v with object keys sorted, so a node that decoded the
// transaction into generic maps hashes the same bytes.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// Sign registers the signers and collects their signatures over the RID, in
// signer order.
func (t *Transaction) Sign(ctx context.Context, signers ...ports.KeyStore) error {
	t.Signers = make([]domain.HexBytes, len(signers))
	for i, s := range signers {
		t.Signers[i] = s.ID()
	}
	rid, err := t.RID()
	if err != nil {
		return err
	}
	t.Signatures = make([]domain.HexBytes, len(signers))
	for i, s := range signers {
		sig, err := s.SignMessage(ctx, rid)
		if err != nil {
			return fmt.Errorf("sign transaction: %w", err)
		}
		t.Signatures[i] = sig
	}
	return nil
}
