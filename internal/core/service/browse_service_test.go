package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

func consumerStore(t *testing.T, sess *stubSession) *state.Store {
	t.Helper()
	store := state.NewStore()
	if err := store.Establish(sess, domain.RoleUser); err != nil {
		t.Fatalf("establish: %v", err)
	}
	return store
}

func marketplace() (acme, globex domain.Brand, cols []domain.VoucherCollection) {
	acme = brand("Acme", 0xa1)
	globex = brand("Globex", 0xa2)
	cols = []domain.VoucherCollection{
		collection(acme, "Summer", 5, 2),
		collection(globex, "Winter", 3, 3),
		collection(acme, "Spring", 2, 0),
	}
	return acme, globex, cols
}

func TestBrowseBrands_GroupsAndFilters(t *testing.T) {
	_, _, cols := marketplace()
	sess := newStubSession(userAccountHex).returns("get_nft_voucher_collections", cols)
	svc := NewBrowseService(consumerStore(t, sess), &recordingNotifier{}, zerolog.Nop())

	all, err := svc.Brands(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].Brand.Name != "Acme" || all[0].Available != 2 || all[1].Available != 0 {
		t.Errorf("unexpected summaries %+v", all)
	}

	filtered, err := svc.Brands(context.Background(), "GLO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Brand.Name != "Globex" {
		t.Errorf("expected only Globex, got %+v", filtered)
	}
}

func TestBrowseBrandCollections_MarksClaimed(t *testing.T) {
	acme, _, cols := marketplace()
	minted := []domain.MintedVoucher{{ID: domain.HexBytes{0x01}, Collection: collection(acme, "Spring", 2, 1)}}
	sess := newStubSession(userAccountHex).
		returns("get_nft_voucher_collections", cols).
		on("get_nft_vouchers_by_owner", func(args map[string]any) (any, error) {
			if _, ok := args["user_account_id"]; !ok {
				return nil, errors.New("missing user_account_id")
			}
			return minted, nil
		})
	svc := NewBrowseService(consumerStore(t, sess), &recordingNotifier{}, zerolog.Nop())

	rows, err := svc.BrandCollections(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two Acme rows, got %d", len(rows))
	}
	if rows[0].Status != domain.ListingAvailable || rows[0].Remaining != 3 {
		t.Errorf("Summer: unexpected row %+v", rows[0])
	}
	if rows[1].Status != domain.ListingClaimed || rows[1].Mintable() {
		t.Errorf("Spring: expected claimed and not mintable, got %+v", rows[1])
	}
}

func TestBrowse_RequiresUserSession(t *testing.T) {
	store := state.NewStore()
	_ = store.Establish(newStubSession(brandAccountHex), domain.RoleBrand)
	svc := NewBrowseService(store, &recordingNotifier{}, zerolog.Nop())

	if _, err := svc.Brands(context.Background(), ""); !errors.Is(err, domain.ErrWrongRole) {
		t.Errorf("expected ErrWrongRole, got %v", err)
	}
	if _, err := svc.Minted(context.Background()); !errors.Is(err, domain.ErrWrongRole) {
		t.Errorf("expected ErrWrongRole, got %v", err)
	}

	empty := NewBrowseService(state.NewStore(), &recordingNotifier{}, zerolog.Nop())
	if _, err := empty.Brands(context.Background(), ""); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestBrowseMinted_QueryFailure(t *testing.T) {
	sess := newStubSession(userAccountHex).fails("get_nft_vouchers_by_owner", errors.New("timeout"))
	notes := &recordingNotifier{}
	svc := NewBrowseService(consumerStore(t, sess), notes, zerolog.Nop())

	if _, err := svc.Minted(context.Background()); !errors.Is(err, domain.ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed, got %v", err)
	}
	if errs := notes.errors(); len(errs) != 1 || errs[0].Message != "Error fetching minted vouchers!" {
		t.Errorf("unexpected notifications %+v", errs)
	}
}
