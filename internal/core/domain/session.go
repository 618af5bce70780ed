package domain

import "time"

const (
	// SessionTTL is how long a login or registration session stays valid.
	SessionTTL = 2 * time.Hour
	// SessionFlag is the flag attached to every session auth descriptor.
	SessionFlag = "MySession"
)

// LoginConfig describes the disposable session key granted at login.
type LoginConfig struct {
	TTL   time.Duration
	Flags []string
}

// DefaultLoginConfig is the fixed-duration rule used by the bootstrapper.
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{TTL: SessionTTL, Flags: []string{SessionFlag}}
}

// Operation is a named ledger operation with positional arguments.
type Operation struct {
	Name string `json:"name"`
	Args []any  `json:"args"`
}

// Receipt is returned once a transaction has been confirmed by the ledger.
type Receipt struct {
	TxRID  HexBytes `json:"tx_rid"`
	Status string   `json:"status"`
}

// NotificationLevel is the severity of a user-facing notification.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a single user-facing message.
type Notification struct {
	ID          string            `json:"id"`
	Level       NotificationLevel `json:"level"`
	Message     string            `json:"message"`
	Description string            `json:"description,omitempty"`
	Reload      bool              `json:"reload,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
