package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/api/middleware"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/service"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

var expiry = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

type stubSession struct{ account domain.HexBytes }

func (s stubSession) AccountID() domain.HexBytes { return s.account }
func (s stubSession) ExpiresAt() time.Time       { return expiry }
func (s stubSession) Query(context.Context, string, map[string]any, any) error {
	return nil
}
func (s stubSession) Call(context.Context, string, ...any) (*domain.Receipt, error) {
	return &domain.Receipt{}, nil
}

type stubBootstrapper struct {
	bootstrapFn func(ctx context.Context, in service.Intent) (*service.BootstrapResult, error)
	loggedOut   bool
}

func (s *stubBootstrapper) Bootstrap(ctx context.Context, in service.Intent) (*service.BootstrapResult, error) {
	return s.bootstrapFn(ctx, in)
}

func (s *stubBootstrapper) Logout() { s.loggedOut = true }

type stubStore struct {
	snap      state.Snapshot
	refetched int
	// after replaces snap once Resolve has run.
	after *state.Snapshot
}

func (s *stubStore) Snapshot() state.Snapshot { return s.snap }
func (s *stubStore) RequestRefetch()          { s.refetched++ }

type stubResolver struct {
	store *stubStore
	err   error
	calls int
}

func (r *stubResolver) Resolve(context.Context) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	if r.store.after != nil {
		r.store.snap = *r.store.after
	}
	return nil
}

type stubDashboard struct {
	cols    []domain.VoucherCollection
	err     error
	created *service.CreateCollectionInput
}

func (d *stubDashboard) Collections(context.Context) ([]domain.VoucherCollection, error) {
	return d.cols, d.err
}

func (d *stubDashboard) CreateCollection(_ context.Context, in service.CreateCollectionInput) ([]domain.VoucherCollection, error) {
	d.created = &in
	if d.err != nil {
		return nil, d.err
	}
	return d.cols, nil
}

type stubBrowser struct {
	brands   []domain.BrandSummary
	listing  []domain.CollectionListing
	minted   []domain.MintedVoucher
	err      error
	search   string
	drawerOf string
}

func (b *stubBrowser) Brands(_ context.Context, search string) ([]domain.BrandSummary, error) {
	b.search = search
	return b.brands, b.err
}

func (b *stubBrowser) BrandCollections(_ context.Context, brandName string) ([]domain.CollectionListing, error) {
	b.drawerOf = brandName
	return b.listing, b.err
}

func (b *stubBrowser) Minted(context.Context) ([]domain.MintedVoucher, error) {
	return b.minted, b.err
}

type stubMinter struct {
	out        *service.MintOutcome
	err        error
	brand      string
	collection string
}

func (m *stubMinter) Mint(_ context.Context, brandName, collectionName string) (*service.MintOutcome, error) {
	m.brand, m.collection = brandName, collectionName
	return m.out, m.err
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaims(c echo.Context, role domain.Role, account string) {
	c.Set(middleware.ContextRole, string(role))
	c.Set(middleware.ContextAccount, account)
}

func acme() domain.Brand {
	return domain.Brand{Account: domain.Account{ID: domain.HexBytes{0xa1}}, Name: "Acme"}
}
