package ports

import (
	"context"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// ActivityRepository persists the audit trail of state-changing attempts.
type ActivityRepository interface {
	Record(ctx context.Context, a domain.Activity) error
}
