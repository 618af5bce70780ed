package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

func newNotification(level domain.NotificationLevel, message, description string) domain.Notification {
	return domain.Notification{
		ID:          uuid.NewString(),
		Level:       level,
		Message:     message,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

func notifySuccess(ctx context.Context, n ports.Notifier, message string) {
	n.Notify(ctx, newNotification(domain.NotifySuccess, message, ""))
}

func notifyError(ctx context.Context, n ports.Notifier, message, description string) {
	n.Notify(ctx, newNotification(domain.NotifyError, message, description))
}

// record writes to the audit trail. Failures are logged and otherwise ignored.
func record(ctx context.Context, repo ports.ActivityRepository, log zerolog.Logger, a domain.Activity) {
	if repo == nil {
		return
	}
	a.At = time.Now().UTC()
	if err := repo.Record(ctx, a); err != nil {
		log.Warn().Err(err).Str("kind", string(a.Kind)).Msg("failed to record activity")
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// activeSession returns the session when it was authenticated as want.
func activeSession(store sessionSource, want domain.Role) (ports.Session, error) {
	sess, role, err := store.Session()
	if err != nil {
		return nil, err
	}
	if role != want {
		return nil, domain.ErrWrongRole
	}
	return sess, nil
}

type sessionSource interface {
	Session() (ports.Session, domain.Role, error)
}
