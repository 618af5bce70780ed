package ports

import (
	"context"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// Notifier surfaces a message to the operator.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// NotificationFeed is a Notifier whose messages can be drained by a UI.
type NotificationFeed interface {
	Notifier
	Drain(ctx context.Context) ([]domain.Notification, error)
}
