// Package memory holds in-process implementations of the notification feed and
// the mint in-flight guard, used when Redis is not configured.
package memory

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

const defaultFeedCapacity = 100

// Feed keeps the most recent notifications until they are drained.
type Feed struct {
	mu       sync.Mutex
	items    []domain.Notification
	capacity int
	log      zerolog.Logger
}

// NewFeed returns a feed holding at most capacity notifications. When full the
// oldest are dropped.
func NewFeed(capacity int, log zerolog.Logger) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{capacity: capacity, log: log}
}

func (f *Feed) Notify(_ context.Context, n domain.Notification) {
	logNotification(f.log, n)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.capacity; over > 0 {
		f.items = append([]domain.Notification(nil), f.items[over:]...)
	}
}

// Drain returns pending notifications oldest first and empties the feed.
func (f *Feed) Drain(_ context.Context) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out, nil
}

func logNotification(log zerolog.Logger, n domain.Notification) {
	ev := log.Info()
	if n.Level == domain.NotifyError {
		ev = log.Warn()
	}
	ev.Str("notification_id", n.ID).
		Str("level", string(n.Level)).
		Str("description", n.Description).
		Msg(n.Message)
}
