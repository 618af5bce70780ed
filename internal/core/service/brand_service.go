package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

// CreateCollectionInput is the brand dashboard's collection form.
type CreateCollectionInput struct {
	Name        string
	Description string
	MaxDiscount int64
	TotalSupply int64
}

func (in CreateCollectionInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description is required")
	}
	if in.MaxDiscount <= 0 || in.MaxDiscount > 100 {
		missing = append(missing, "max discount must be between 1 and 100")
	}
	if in.TotalSupply <= 0 {
		missing = append(missing, "total supply must be greater than 0")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(missing, "; "))
	}
	return nil
}

// BrandService backs the brand dashboard.
type BrandService struct {
	store    *state.Store
	notifier ports.Notifier
	activity ports.ActivityRepository
	log      zerolog.Logger
}

func NewBrandService(store *state.Store, notifier ports.Notifier, activity ports.ActivityRepository, log zerolog.Logger) *BrandService {
	return &BrandService{store: store, notifier: notifier, activity: activity, log: log}
}

// Collections lists the collections issued by the logged-in brand.
func (s *BrandService) Collections(ctx context.Context) ([]domain.VoucherCollection, error) {
	sess, err := activeSession(s.store, domain.RoleBrand)
	if err != nil {
		return nil, err
	}
	return s.collections(ctx, sess)
}

// CreateCollection issues a new collection and returns the refreshed list.
func (s *BrandService) CreateCollection(ctx context.Context, in CreateCollectionInput) ([]domain.VoucherCollection, error) {
	sess, err := activeSession(s.store, domain.RoleBrand)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	activity := domain.Activity{
		Kind:    domain.ActivityCreateCollection,
		Role:    domain.RoleBrand,
		Account: sess.AccountID().String(),
		Subject: name,
	}

	_, err = sess.Call(ctx, "create_nft_voucher_collection", name, in.Description, in.MaxDiscount, in.TotalSupply)
	if err != nil {
		s.log.Error().Err(err).Str("collection", name).Msg("create collection failed")
		activity.Detail = errText(err)
		record(ctx, s.activity, s.log, activity)
		if domain.IsDuplicateKey(err) {
			notifyError(ctx, s.notifier, "Collection with same name already exists!", "")
			return nil, fmt.Errorf("%w: %w", domain.ErrCollectionCreateFailed, domain.ErrDuplicateName)
		}
		notifyError(ctx, s.notifier, "Error adding NFT Voucher Collection!", "")
		return nil, fmt.Errorf("%w: %v", domain.ErrCollectionCreateFailed, err)
	}

	notifySuccess(ctx, s.notifier, "NFT Voucher Collection added successfully!")
	activity.Succeeded = true
	record(ctx, s.activity, s.log, activity)
	s.log.Info().Str("collection", name).Int64("total_supply", in.TotalSupply).Msg("collection created")

	return s.collections(ctx, sess)
}

func (s *BrandService) collections(ctx context.Context, sess ports.Session) ([]domain.VoucherCollection, error) {
	var cols []domain.VoucherCollection
	args := map[string]any{"brand_account_id": sess.AccountID()}
	if err := sess.Query(ctx, "get_nft_voucher_collections_by_brand", args, &cols); err != nil {
		s.log.Error().Err(err).Msg("fetch brand collections failed")
		notifyError(ctx, s.notifier, "Error fetching NFT Voucher Collections!", "")
		return nil, fmt.Errorf("%w: brand collections: %v", domain.ErrQueryFailed, err)
	}
	return cols, nil
}
