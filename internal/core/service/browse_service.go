package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

// BrowseService backs the consumer views: brand browsing, a brand's
// collections and the consumer's minted vouchers. Every call re-fetches.
type BrowseService struct {
	store    *state.Store
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewBrowseService(store *state.Store, notifier ports.Notifier, log zerolog.Logger) *BrowseService {
	return &BrowseService{store: store, notifier: notifier, log: log}
}

// Brands returns the per-brand summaries matching search.
func (s *BrowseService) Brands(ctx context.Context, search string) ([]domain.BrandSummary, error) {
	sess, err := activeSession(s.store, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	cols, err := s.allCollections(ctx, sess)
	if err != nil {
		return nil, err
	}
	return FilterBrands(GroupByBrand(cols), search), nil
}

// BrandCollections lists a brand's collections with their claimed, available
// or sold-out status for the current consumer.
func (s *BrowseService) BrandCollections(ctx context.Context, brandName string) ([]domain.CollectionListing, error) {
	sess, err := activeSession(s.store, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	cols, minted, err := s.collectionsAndMinted(ctx, sess)
	if err != nil {
		return nil, err
	}
	return Listing(CollectionsForBrand(cols, brandName), minted), nil
}

// Minted lists the vouchers owned by the current consumer.
func (s *BrowseService) Minted(ctx context.Context) ([]domain.MintedVoucher, error) {
	sess, err := activeSession(s.store, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.minted(ctx, sess)
}

func (s *BrowseService) collectionsAndMinted(ctx context.Context, sess ports.Session) ([]domain.VoucherCollection, []domain.MintedVoucher, error) {
	var (
		cols   []domain.VoucherCollection
		minted []domain.MintedVoucher
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cols, err = s.allCollections(gctx, sess)
		return err
	})
	g.Go(func() error {
		var err error
		minted, err = s.minted(gctx, sess)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cols, minted, nil
}

func (s *BrowseService) allCollections(ctx context.Context, sess ports.Session) ([]domain.VoucherCollection, error) {
	var cols []domain.VoucherCollection
	if err := sess.Query(ctx, "get_nft_voucher_collections", nil, &cols); err != nil {
		s.log.Error().Err(err).Msg("fetch collections failed")
		notifyError(ctx, s.notifier, "Error fetching vouchers!", "")
		return nil, fmt.Errorf("%w: collections: %v", domain.ErrQueryFailed, err)
	}
	return cols, nil
}

func (s *BrowseService) minted(ctx context.Context, sess ports.Session) ([]domain.MintedVoucher, error) {
	var minted []domain.MintedVoucher
	args := map[string]any{"user_account_id": sess.AccountID()}
	if err := sess.Query(ctx, "get_nft_vouchers_by_owner", args, &minted); err != nil {
		s.log.Error().Err(err).Msg("fetch minted vouchers failed")
		notifyError(ctx, s.notifier, "Error fetching minted vouchers!", "")
		return nil, fmt.Errorf("%w: minted vouchers: %v", domain.ErrQueryFailed, err)
	}
	return minted, nil
}
