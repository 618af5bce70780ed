package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

// ProfileService keeps the store's profile in line with the authenticated
// role. It only ever fetches the profile of the role the session was
// established for.
type ProfileService struct {
	store    *state.Store
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewProfileService(store *state.Store, notifier ports.Notifier, log zerolog.Logger) *ProfileService {
	return &ProfileService{store: store, notifier: notifier, log: log}
}

// Resolve fetches the profile for the current session. On failure the
// profile stays unset and the caller has to ask again.
func (p *ProfileService) Resolve(ctx context.Context) error {
	snap := p.store.Snapshot()
	if !snap.Active(time.Now()) {
		return domain.ErrNoSession
	}
	sess := snap.Session
	name, key := profileQuery(snap.Role)
	args := map[string]any{key: sess.AccountID()}

	var err error
	switch snap.Role {
	case domain.RoleBrand:
		var b *domain.Brand
		if err = sess.Query(ctx, name, args, &b); err == nil {
			p.store.SetBrand(snap.Generation, b)
		}
	case domain.RoleUser:
		var u *domain.User
		if err = sess.Query(ctx, name, args, &u); err == nil {
			p.store.SetUser(snap.Generation, u)
		}
	default:
		return domain.ErrNoSession
	}
	if err != nil {
		p.log.Error().Err(err).Str("role", string(snap.Role)).Msg("profile fetch failed")
		notifyError(ctx, p.notifier, "Error fetching account details! Please try again.", "")
		return fmt.Errorf("%w: %v", domain.ErrProfileFetchFailed, err)
	}
	return nil
}

// Run resolves the profile whenever a session is established or a refetch is
// requested, until ctx is cancelled.
func (p *ProfileService) Run(ctx context.Context) {
	events, unsubscribe := p.store.Subscribe()
	defer unsubscribe()
	p.consume(ctx, events)
}

func (p *ProfileService) consume(ctx context.Context, events <-chan state.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Kind {
			case state.EventSessionEstablished, state.EventRefetchRequested:
				// Errors are already logged and notified.
				_ = p.Resolve(ctx)
			}
		}
	}
}
