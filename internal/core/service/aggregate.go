package service

import (
	"strings"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// GroupByBrand folds a flat collection list into one summary per brand,
// counting the collections that still have supply left. Brands are keyed by
// display name and keep the order in which they first appear.
func GroupByBrand(cols []domain.VoucherCollection) []domain.BrandSummary {
	index := make(map[string]int, len(cols))
	out := make([]domain.BrandSummary, 0)
	for _, c := range cols {
		i, ok := index[c.Brand.Name]
		if !ok {
			i = len(out)
			index[c.Brand.Name] = i
			out = append(out, domain.BrandSummary{Brand: c.Brand})
		}
		if c.Available() {
			out[i].Available++
		}
	}
	return out
}

// FilterBrands keeps the summaries whose brand name contains term, ignoring
// case. An empty term returns the input unchanged.
func FilterBrands(summaries []domain.BrandSummary, term string) []domain.BrandSummary {
	if term == "" {
		return summaries
	}
	needle := strings.ToLower(term)
	out := make([]domain.BrandSummary, 0, len(summaries))
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.Brand.Name), needle) {
			out = append(out, s)
		}
	}
	return out
}

// CollectionsForBrand selects the collections shown when a brand is opened.
func CollectionsForBrand(cols []domain.VoucherCollection, brandName string) []domain.VoucherCollection {
	out := make([]domain.VoucherCollection, 0)
	for _, c := range cols {
		if c.Brand.Name == brandName {
			out = append(out, c)
		}
	}
	return out
}

// IsClaimed reports whether the consumer already holds a voucher minted from
// the collection, matched on (brand name, collection name).
func IsClaimed(minted []domain.MintedVoucher, c domain.VoucherCollection) bool {
	for _, m := range minted {
		if m.Collection.Brand.Name == c.Brand.Name && m.Collection.Name == c.Name {
			return true
		}
	}
	return false
}

// Listing decorates collections with the status badge and remaining supply.
func Listing(cols []domain.VoucherCollection, minted []domain.MintedVoucher) []domain.CollectionListing {
	out := make([]domain.CollectionListing, len(cols))
	for i, c := range cols {
		status := domain.ListingSoldOut
		switch {
		case IsClaimed(minted, c):
			status = domain.ListingClaimed
		case c.Available():
			status = domain.ListingAvailable
		}
		out[i] = domain.CollectionListing{Collection: c, Remaining: c.Remaining(), Status: status}
	}
	return out
}
