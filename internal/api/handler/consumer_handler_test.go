package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/service"
)

func TestConsumerHandler_Brands_PassesSearch(t *testing.T) {
	browse := &stubBrowser{brands: []domain.BrandSummary{{Brand: acme(), Available: 2}}}
	h := NewConsumerHandler(browse, &stubMinter{})

	c, rec := newContext(http.MethodGet, "/v1/brands?search=ac", "")
	if err := h.Brands(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if browse.search != "ac" {
		t.Fatalf("expected search term ac, got %q", browse.search)
	}

	var resp brandsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Brands) != 1 || resp.Brands[0].Name != "Acme" || resp.Brands[0].Available != 2 || resp.Brands[0].Account != "a1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestConsumerHandler_Collections(t *testing.T) {
	col := domain.VoucherCollection{Brand: acme(), Name: "Summer", TotalSupply: 5, MintedCount: 2}
	browse := &stubBrowser{listing: []domain.CollectionListing{
		{Collection: col, Remaining: 3, Status: domain.ListingAvailable},
	}}
	h := NewConsumerHandler(browse, &stubMinter{})

	c, rec := newContext(http.MethodGet, "/v1/brands/Acme%20Co/collections", "")
	c.SetParamNames("name")
	c.SetParamValues("Acme%20Co")
	if err := h.Collections(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if browse.drawerOf != "Acme Co" {
		t.Fatalf("expected unescaped brand name, got %q", browse.drawerOf)
	}

	var resp struct {
		Collections []struct {
			Status   string `json:"status"`
			Mintable bool   `json:"mintable"`
		} `json:"collections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Collections) != 1 || resp.Collections[0].Status != "available" || !resp.Collections[0].Mintable {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestConsumerHandler_Mint(t *testing.T) {
	col := domain.VoucherCollection{Brand: acme(), Name: "Summer"}
	minter := &stubMinter{out: &service.MintOutcome{
		Collection: col,
		Minted: []domain.MintedVoucher{{
			ID:         domain.HexBytes{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd},
			Discount:   7,
			Collection: col,
		}},
		Brands: []domain.BrandSummary{{Brand: acme(), Available: 1}},
	}}
	h := NewConsumerHandler(&stubBrowser{}, minter)

	c, rec := newContext(http.MethodPost, "/v1/brands/Acme/collections/Summer/mint", "")
	c.SetParamNames("name", "collection")
	c.SetParamValues("Acme", "Summer")
	if err := h.Mint(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if minter.brand != "Acme" || minter.collection != "Summer" {
		t.Fatalf("unexpected mint target: %s/%s", minter.brand, minter.collection)
	}

	var resp mintResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Vouchers) != 1 {
		t.Fatalf("expected one voucher, got %d", len(resp.Vouchers))
	}
	v := resp.Vouchers[0]
	if v.Code != "0123456789abcd" || v.ShortCode != "0123456789..." || v.Brand != "Acme" {
		t.Fatalf("unexpected voucher: %+v", v)
	}
	if resp.Stale {
		t.Fatalf("expected fresh views")
	}
}

func TestConsumerHandler_Mint_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrSoldOut, domain.ErrAlreadyClaimed, domain.ErrMintInFlight, domain.ErrMintFailed} {
		t.Run(want.Error(), func(t *testing.T) {
			h := NewConsumerHandler(&stubBrowser{}, &stubMinter{err: want})

			c, rec := newContext(http.MethodPost, "/v1/brands/Acme/collections/Summer/mint", "")
			c.SetParamNames("name", "collection")
			c.SetParamValues("Acme", "Summer")
			if err := h.Mint(c); !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("expected nothing written")
			}
		})
	}
}

func TestConsumerHandler_Mint_BadParam(t *testing.T) {
	minter := &stubMinter{}
	h := NewConsumerHandler(&stubBrowser{}, minter)

	c, _ := newContext(http.MethodPost, "/", "")
	c.SetParamNames("name", "collection")
	c.SetParamValues("Acme", "%zz")
	if err := h.Mint(c); err == nil {
		t.Fatalf("expected error for malformed escape")
	}
	if minter.brand != "" {
		t.Fatalf("minter should not be called")
	}
}

func TestConsumerHandler_Vouchers(t *testing.T) {
	browse := &stubBrowser{minted: []domain.MintedVoucher{{ID: domain.HexBytes{0xab, 0xcd}, Discount: 5}}}
	h := NewConsumerHandler(browse, &stubMinter{})

	c, rec := newContext(http.MethodGet, "/v1/vouchers", "")
	if err := h.Vouchers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp vouchersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Vouchers) != 1 || resp.Vouchers[0].Code != "abcd" || resp.Vouchers[0].ShortCode != "abcd" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestConsumerHandler_Vouchers_QueryFailure(t *testing.T) {
	h := NewConsumerHandler(&stubBrowser{err: domain.ErrQueryFailed}, &stubMinter{})

	c, _ := newContext(http.MethodGet, "/v1/vouchers", "")
	if err := h.Vouchers(c); !errors.Is(err, domain.ErrQueryFailed) {
		t.Fatalf("expected query failure, got %v", err)
	}
}
