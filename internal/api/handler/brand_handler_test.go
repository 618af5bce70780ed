package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

func TestBrandHandler_List_Badges(t *testing.T) {
	dash := &stubDashboard{cols: []domain.VoucherCollection{
		{Brand: acme(), Name: "Summer", Description: "10% off", MaxDiscount: 10, TotalSupply: 5, MintedCount: 2},
		{Brand: acme(), Name: "Winter", Description: "gone", MaxDiscount: 20, TotalSupply: 3, MintedCount: 3},
	}}
	h := NewBrandHandler(dash)

	c, rec := newContext(http.MethodGet, "/v1/brand/collections", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp collectionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Collections) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Collections))
	}
	if r := resp.Collections[0]; r.Remaining != 3 || r.Badge != "Available" || r.Minted != 2 {
		t.Fatalf("unexpected first row: %+v", r)
	}
	if r := resp.Collections[1]; r.Remaining != 0 || r.Badge != "Sold Out" {
		t.Fatalf("unexpected second row: %+v", r)
	}
}

func TestBrandHandler_List_EmptyIsArray(t *testing.T) {
	h := NewBrandHandler(&stubDashboard{})

	c, rec := newContext(http.MethodGet, "/v1/brand/collections", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"collections":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestBrandHandler_Create(t *testing.T) {
	dash := &stubDashboard{cols: []domain.VoucherCollection{{Brand: acme(), Name: "Autumn", TotalSupply: 50}}}
	h := NewBrandHandler(dash)

	c, rec := newContext(http.MethodPost, "/v1/brand/collections",
		`{"name":"Autumn","desc":"15% off","max_discount":15,"total_supply":50}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	in := dash.created
	if in == nil || in.Name != "Autumn" || in.Description != "15% off" || in.MaxDiscount != 15 || in.TotalSupply != 50 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestBrandHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"desc":"d","max_discount":10,"total_supply":5}`, "name is required"},
		{"missing desc", `{"name":"n","max_discount":10,"total_supply":5}`, "desc is required"},
		{"zero discount", `{"name":"n","desc":"d","max_discount":0,"total_supply":5}`, "max_discount must be greater than 0"},
		{"discount over 100", `{"name":"n","desc":"d","max_discount":101,"total_supply":5}`, "max_discount must be at most 100"},
		{"zero supply", `{"name":"n","desc":"d","max_discount":10,"total_supply":0}`, "total_supply must be greater than 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dash := &stubDashboard{}
			h := NewBrandHandler(dash)

			c, _ := newContext(http.MethodPost, "/v1/brand/collections", tc.body)
			err := h.Create(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
			if dash.created != nil {
				t.Fatalf("dashboard should not be called")
			}
		})
	}
}

func TestBrandHandler_Create_Duplicate(t *testing.T) {
	dash := &stubDashboard{err: fmt.Errorf("%w: %w", domain.ErrCollectionCreateFailed, domain.ErrDuplicateName)}
	h := NewBrandHandler(dash)

	c, _ := newContext(http.MethodPost, "/v1/brand/collections",
		`{"name":"Autumn","desc":"d","max_discount":15,"total_supply":50}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected duplicate name, got %v", err)
	}
}
