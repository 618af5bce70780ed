package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

func brand(name string, id byte) domain.Brand {
	return domain.Brand{Name: name, Account: domain.Account{ID: domain.HexBytes{id}}}
}

func collection(b domain.Brand, name string, total, minted int64) domain.VoucherCollection {
	return domain.VoucherCollection{Brand: b, Name: name, TotalSupply: total, MintedCount: minted, MaxDiscount: 10}
}

func TestGroupByBrand_StableOrder(t *testing.T) {
	a, b := brand("brandA", 1), brand("brandB", 2)
	cols := []domain.VoucherCollection{
		collection(a, "spring", 5, 2),
		collection(b, "summer", 3, 3),
		collection(a, "autumn", 2, 2),
	}

	got := GroupByBrand(cols)

	require.Len(t, got, 2)
	assert.Equal(t, "brandA", got[0].Brand.Name)
	assert.Equal(t, 1, got[0].Available)
	assert.Equal(t, "brandB", got[1].Brand.Name)
	assert.Equal(t, 0, got[1].Available)
}

func TestGroupByBrand_SumMatchesAvailableCollections(t *testing.T) {
	a, b, c := brand("a", 1), brand("b", 2), brand("c", 3)
	cols := []domain.VoucherCollection{
		collection(a, "1", 10, 0),
		collection(b, "2", 1, 1),
		collection(c, "3", 4, 3),
		collection(a, "4", 7, 7),
		collection(b, "5", 2, 0),
		collection(c, "6", 9, 1),
	}

	want := 0
	for _, col := range cols {
		if col.Remaining() > 0 {
			want++
		}
	}

	sum := 0
	for _, s := range GroupByBrand(cols) {
		sum += s.Available
	}
	assert.Equal(t, want, sum)
}

func TestGroupByBrand_MergesSameDisplayName(t *testing.T) {
	cols := []domain.VoucherCollection{
		collection(brand("shared", 1), "x", 1, 0),
		collection(brand("shared", 2), "y", 1, 0),
	}

	got := GroupByBrand(cols)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Available)
	assert.Equal(t, domain.HexBytes{1}, got[0].Brand.Account.ID)
}

func TestGroupByBrand_Empty(t *testing.T) {
	assert.Empty(t, GroupByBrand(nil))
}

func TestFilterBrands(t *testing.T) {
	summaries := []domain.BrandSummary{
		{Brand: brand("nike store", 1), Available: 2},
		{Brand: brand("Adidas", 2), Available: 1},
	}

	t.Run("case insensitive", func(t *testing.T) {
		got := FilterBrands(summaries, "Nike")
		require.Len(t, got, 1)
		assert.Equal(t, "nike store", got[0].Brand.Name)
	})

	t.Run("empty term is identity", func(t *testing.T) {
		assert.Equal(t, summaries, FilterBrands(summaries, ""))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := FilterBrands(summaries, "DAS")
		assert.Equal(t, once, FilterBrands(once, "DAS"))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterBrands(summaries, "puma"))
	})
}

func TestCollectionsForBrand(t *testing.T) {
	a, b := brand("a", 1), brand("b", 2)
	cols := []domain.VoucherCollection{collection(a, "1", 1, 0), collection(b, "2", 1, 0), collection(a, "3", 1, 0)}

	got := CollectionsForBrand(cols, "a")

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Name)
	assert.Equal(t, "3", got[1].Name)
}

func TestListing_Statuses(t *testing.T) {
	x := brand("brandX", 1)
	claimed := collection(x, "collectionY", 10, 1)
	open := collection(x, "open", 3, 1)
	soldOut := collection(x, "gone", 3, 3)

	minted := []domain.MintedVoucher{
		{Collection: collection(brand("other", 9), "collectionY", 1, 1)},
		{Collection: claimed},
		{Collection: collection(x, "unrelated", 1, 1)},
	}

	got := Listing([]domain.VoucherCollection{claimed, open, soldOut}, minted)

	require.Len(t, got, 3)
	assert.Equal(t, domain.ListingClaimed, got[0].Status)
	assert.False(t, got[0].Mintable())
	assert.Equal(t, domain.ListingAvailable, got[1].Status)
	assert.True(t, got[1].Mintable())
	assert.Equal(t, int64(2), got[1].Remaining)
	assert.Equal(t, domain.ListingSoldOut, got[2].Status)
	assert.False(t, got[2].Mintable())
}

func TestIsClaimed_RequiresBrandAndName(t *testing.T) {
	c := collection(brand("brandX", 1), "collectionY", 5, 0)

	assert.False(t, IsClaimed(nil, c))
	assert.False(t, IsClaimed([]domain.MintedVoucher{{Collection: collection(brand("brandZ", 2), "collectionY", 1, 1)}}, c))
	assert.True(t, IsClaimed([]domain.MintedVoucher{{Collection: collection(brand("brandX", 1), "collectionY", 1, 1)}}, c))
}
