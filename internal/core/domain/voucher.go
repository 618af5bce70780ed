package domain

import "encoding/json"

// VoucherCollection is a named batch of discount vouchers issued by a brand.
type VoucherCollection struct {
	Brand       Brand  `json:"brand"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	MaxDiscount int64  `json:"max_discount"`
	TotalSupply int64  `json:"total_supply"`
	MintedCount int64  `json:"minted_nft_count"`
}

// Remaining is the number of vouchers that can still be minted.
func (c VoucherCollection) Remaining() int64 {
	return c.TotalSupply - c.MintedCount
}

// Available reports whether at least one voucher can still be minted.
func (c VoucherCollection) Available() bool {
	return c.Remaining() > 0
}

// MintedVoucher is a single voucher owned by a user.
type MintedVoucher struct {
	ID         HexBytes          `json:"id"`
	Discount   int64             `json:"discount"`
	Collection VoucherCollection `json:"nft_voucher_collection"`
	Owner      User              `json:"owner"`
}

// Code is the full redeemable code of the voucher.
func (v MintedVoucher) Code() string {
	return v.ID.String()
}

// ShortCode is the truncated code shown on voucher cards.
func (v MintedVoucher) ShortCode() string {
	code := v.Code()
	if len(code) <= 10 {
		return code
	}
	return code[:10] + "..."
}

// BrandSummary is one entry of the consumer browse view.
type BrandSummary struct {
	Brand     Brand `json:"brand"`
	Available int   `json:"available"`
}

// ListingStatus is the badge shown next to a collection.
type ListingStatus string

const (
	ListingClaimed   ListingStatus = "claimed"
	ListingAvailable ListingStatus = "available"
	ListingSoldOut   ListingStatus = "sold_out"
)

// CollectionListing is a collection as shown to a consumer, with the
// client-side claimed check already applied.
type CollectionListing struct {
	Collection VoucherCollection `json:"collection"`
	Remaining  int64             `json:"remaining"`
	Status     ListingStatus     `json:"status"`
}

// Mintable reports whether the mint action is enabled for this row.
func (l CollectionListing) Mintable() bool {
	return l.Status == ListingAvailable
}

func (l CollectionListing) MarshalJSON() ([]byte, error) {
	type listing CollectionListing
	return json.Marshal(struct {
		listing
		Mintable bool `json:"mintable"`
	}{listing(l), l.Mintable()})
}
