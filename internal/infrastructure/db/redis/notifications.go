package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

const (
	notificationsKey         = keyPrefix + "notifications"
	defaultNotificationLimit = 100
)

// NotificationFeed keeps pending notifications in a capped Redis list so they
// survive a restart and can be drained by any UI instance.
type NotificationFeed struct {
	client *redis.Client
	limit  int64
	log    zerolog.Logger
}

// NewNotificationFeed creates a feed holding at most limit notifications.
func NewNotificationFeed(client *redis.Client, limit int, log zerolog.Logger) *NotificationFeed {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return &NotificationFeed{client: client, limit: int64(limit), log: log}
}

// Notify appends n. Storage errors are logged, never returned.
func (f *NotificationFeed) Notify(ctx context.Context, n domain.Notification) {
	f.log.Info().
		Str("notification_id", n.ID).
		Str("level", string(n.Level)).
		Msg(n.Message)

	data, err := json.Marshal(n)
	if err != nil {
		f.log.Error().Err(err).Msg("encode notification")
		return
	}
	_, err = f.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, notificationsKey, data)
		p.LTrim(ctx, notificationsKey, -f.limit, -1)
		return nil
	})
	if err != nil {
		f.log.Error().Err(err).Str("notification_id", n.ID).Msg("failed to store notification")
	}
}

// Drain returns pending notifications oldest first and empties the list.
func (f *NotificationFeed) Drain(ctx context.Context) ([]domain.Notification, error) {
	var lrange *redis.StringSliceCmd
	_, err := f.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lrange = p.LRange(ctx, notificationsKey, 0, -1)
		p.Del(ctx, notificationsKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain notifications: %w", err)
	}

	raw := lrange.Val()
	out := make([]domain.Notification, 0, len(raw))
	for _, item := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			f.log.Warn().Err(err).Msg("skipping malformed notification")
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
