package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

// MintState is the lifecycle of a single mint row.
type MintState string

const (
	MintIdle      MintState = "idle"
	MintMinting   MintState = "minting"
	MintSucceeded MintState = "succeeded"
	MintFailed    MintState = "failed"
)

// MintOutcome is the refreshed consumer view after a successful mint.
type MintOutcome struct {
	Collection domain.VoucherCollection
	Minted     []domain.MintedVoucher
	Brands     []domain.BrandSummary
	// Stale is set when the mint went through but the refetch did not.
	Stale bool
}

// MintService runs the per-row mint state machine. Rows are independent:
// two different collections may be minting at the same time.
type MintService struct {
	store    *state.Store
	browse   *BrowseService
	guard    ports.InFlightGuard
	notifier ports.Notifier
	activity ports.ActivityRepository
	log      zerolog.Logger

	mu     sync.Mutex
	states map[string]MintState
}

func NewMintService(
	store *state.Store,
	browse *BrowseService,
	guard ports.InFlightGuard,
	notifier ports.Notifier,
	activity ports.ActivityRepository,
	log zerolog.Logger,
) *MintService {
	return &MintService{
		store:    store,
		browse:   browse,
		guard:    guard,
		notifier: notifier,
		activity: activity,
		log:      log,
		states:   make(map[string]MintState),
	}
}

// RowKey identifies a mint row by brand account and collection name.
func RowKey(c domain.VoucherCollection) string {
	return c.Brand.Account.ID.String() + "/" + c.Name
}

// State reports the last known state of a row.
func (m *MintService) State(key string) MintState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[key]; ok {
		return st
	}
	return MintIdle
}

// Mint looks the collection up among the brand's listings and mints it.
func (m *MintService) Mint(ctx context.Context, brandName, collectionName string) (*MintOutcome, error) {
	listing, err := m.browse.BrandCollections(ctx, brandName)
	if err != nil {
		return nil, err
	}
	for _, row := range listing {
		if row.Collection.Name == collectionName {
			return m.MintRow(ctx, row)
		}
	}
	return nil, domain.ErrCollectionNotFound
}

// MintRow mints one voucher from an already-rendered row. Sold-out and
// claimed rows never reach the ledger.
func (m *MintService) MintRow(ctx context.Context, row domain.CollectionListing) (*MintOutcome, error) {
	sess, err := activeSession(m.store, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	if row.Status == domain.ListingClaimed {
		return nil, domain.ErrAlreadyClaimed
	}
	if row.Remaining <= 0 || !row.Mintable() {
		return nil, domain.ErrSoldOut
	}

	key := RowKey(row.Collection)
	token, acquired, err := m.guard.Acquire(ctx, key)
	switch {
	case err != nil:
		m.log.Warn().Err(err).Str("row", key).Msg("in-flight check failed, minting anyway")
	case !acquired:
		return nil, domain.ErrMintInFlight
	default:
		defer func() {
			if err := m.guard.Release(context.WithoutCancel(ctx), key, token); err != nil {
				m.log.Warn().Err(err).Str("row", key).Msg("failed to release in-flight flag")
			}
		}()
	}

	m.setState(key, MintMinting)
	activity := domain.Activity{
		Kind:    domain.ActivityMint,
		Role:    domain.RoleUser,
		Account: sess.AccountID().String(),
		Subject: key,
	}

	c := row.Collection
	if _, err := sess.Call(ctx, "mint_nft_voucher", c.Brand.Account.ID, c.Name); err != nil {
		m.setState(key, MintFailed)
		m.log.Error().Err(err).Str("row", key).Msg("mint failed")
		notifyError(ctx, m.notifier, "Error minting NFT Voucher!", "")
		activity.Detail = errText(err)
		record(ctx, m.activity, m.log, activity)
		return nil, fmt.Errorf("%w: %v", domain.ErrMintFailed, err)
	}

	m.setState(key, MintSucceeded)
	notifySuccess(ctx, m.notifier, "NFT Voucher successfully minted!")
	activity.Succeeded = true
	record(ctx, m.activity, m.log, activity)
	m.log.Info().Str("row", key).Msg("voucher minted")

	out := &MintOutcome{Collection: c}
	cols, minted, err := m.browse.collectionsAndMinted(ctx, sess)
	if err != nil {
		out.Stale = true
		return out, nil
	}
	out.Minted = minted
	out.Brands = GroupByBrand(cols)
	return out, nil
}

func (m *MintService) setState(key string, st MintState) {
	m.mu.Lock()
	m.states[key] = st
	m.mu.Unlock()
}
