package domain

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the side of the marketplace an account acts as.
type Role string

const (
	RoleBrand Role = "brand"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleBrand || r == RoleUser
}

// Opposite returns the other role. The zero Role has no opposite.
func (r Role) Opposite() Role {
	switch r {
	case RoleBrand:
		return RoleUser
	case RoleUser:
		return RoleBrand
	}
	return ""
}

// HexBytes is a byte array that the ledger encodes as a hex string.
type HexBytes []byte

// ParseHexBytes decodes a hex string, with or without a 0x prefix.
func ParseHexBytes(s string) (HexBytes, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse hex bytes: %w", err)
	}
	return HexBytes(b), nil
}

func (h HexBytes) String() string {
	return hex.EncodeToString(h)
}

// Equal reports whether both byte arrays hold the same bytes.
func (h HexBytes) Equal(other HexBytes) bool {
	return bytes.Equal(h, other)
}

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hex bytes: %w", err)
	}
	parsed, err := ParseHexBytes(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Account is a ledger account reference.
type Account struct {
	ID HexBytes `json:"id"`
}

// WalletAccount is an account discovered for the connected signing key.
type WalletAccount struct {
	ID HexBytes `json:"id"`
}

// Brand is the profile of an account registered as a brand.
type Brand struct {
	Account Account `json:"account"`
	Name    string  `json:"name"`
}

// User is the profile of an account registered as a consumer.
type User struct {
	Account Account `json:"account"`
}
