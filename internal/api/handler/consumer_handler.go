package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/api/metrics"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/service"
)

// Browser serves the consumer's marketplace views.
type Browser interface {
	Brands(ctx context.Context, search string) ([]domain.BrandSummary, error)
	BrandCollections(ctx context.Context, brandName string) ([]domain.CollectionListing, error)
	Minted(ctx context.Context) ([]domain.MintedVoucher, error)
}

// Minter mints a voucher from a brand's collection.
type Minter interface {
	Mint(ctx context.Context, brandName, collectionName string) (*service.MintOutcome, error)
}

// ConsumerHandler backs the consumer pages: brand search, the per-brand
// drawer, minting and the minted voucher list.
type ConsumerHandler struct {
	browse Browser
	mint   Minter
}

func NewConsumerHandler(browse Browser, mint Minter) *ConsumerHandler {
	return &ConsumerHandler{browse: browse, mint: mint}
}

type brandSummaryView struct {
	Name      string `json:"name"`
	Account   string `json:"account"`
	Available int    `json:"available"`
}

type brandsResponse struct {
	Brands []brandSummaryView `json:"brands"`
}

type listingResponse struct {
	Brand       string                     `json:"brand"`
	Collections []domain.CollectionListing `json:"collections"`
}

type voucherView struct {
	Code       string `json:"code"`
	ShortCode  string `json:"short_code"`
	Discount   int64  `json:"discount"`
	Collection string `json:"collection"`
	Brand      string `json:"brand"`
}

type vouchersResponse struct {
	Vouchers []voucherView `json:"vouchers"`
}

type mintResponse struct {
	Collection string             `json:"collection"`
	Brand      string             `json:"brand"`
	Vouchers   []voucherView      `json:"vouchers"`
	Brands     []brandSummaryView `json:"brands"`
	// Stale is set when the mint went through but the views could not be refreshed.
	Stale bool `json:"stale"`
}

// Brands lists the brands with their available collection count.
//
// @Summary      Browse brands
// @Tags         consumer
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive brand name filter"
// @Success      200     {object}  brandsResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      502     {object}  map[string]string
// @Router       /v1/brands [get]
func (h *ConsumerHandler) Brands(c echo.Context) error {
	summaries, err := h.browse.Brands(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brandsResponse{Brands: toBrandViews(summaries)})
}

// Collections lists one brand's collections with their status for the
// current user.
//
// @Summary      Collections of a brand
// @Tags         consumer
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Brand name"
// @Success      200   {object}  listingResponse
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/brands/{name}/collections [get]
func (h *ConsumerHandler) Collections(c echo.Context) error {
	brand, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	listing, err := h.browse.BrandCollections(c.Request().Context(), brand)
	if err != nil {
		return err
	}
	if listing == nil {
		listing = []domain.CollectionListing{}
	}
	return c.JSON(http.StatusOK, listingResponse{Brand: brand, Collections: listing})
}

// Mint claims a voucher from a collection.
//
// @Summary      Mint a voucher
// @Tags         consumer
// @Produce      json
// @Security     BearerAuth
// @Param        name        path      string  true  "Brand name"
// @Param        collection  path      string  true  "Collection name"
// @Success      201         {object}  mintResponse
// @Failure      404         {object}  map[string]string
// @Failure      409         {object}  map[string]string
// @Failure      502         {object}  map[string]string
// @Router       /v1/brands/{name}/collections/{collection}/mint [post]
func (h *ConsumerHandler) Mint(c echo.Context) error {
	brand, err := pathParam(c, "name")
	if err != nil {
		return err
	}
	collection, err := pathParam(c, "collection")
	if err != nil {
		return err
	}

	out, err := h.mint.Mint(c.Request().Context(), brand, collection)
	metrics.MintTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, mintResponse{
		Collection: out.Collection.Name,
		Brand:      out.Collection.Brand.Name,
		Vouchers:   toVoucherViews(out.Minted),
		Brands:     toBrandViews(out.Brands),
		Stale:      out.Stale,
	})
}

// Vouchers lists the vouchers the user has minted.
//
// @Summary      Minted vouchers
// @Tags         consumer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  vouchersResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/vouchers [get]
func (h *ConsumerHandler) Vouchers(c echo.Context) error {
	minted, err := h.browse.Minted(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vouchersResponse{Vouchers: toVoucherViews(minted)})
}

func pathParam(c echo.Context, name string) (string, error) {
	v, err := url.PathUnescape(c.Param(name))
	if err != nil || v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

func toBrandViews(summaries []domain.BrandSummary) []brandSummaryView {
	views := make([]brandSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, brandSummaryView{
			Name:      s.Brand.Name,
			Account:   s.Brand.Account.ID.String(),
			Available: s.Available,
		})
	}
	return views
}

func toVoucherViews(minted []domain.MintedVoucher) []voucherView {
	views := make([]voucherView, 0, len(minted))
	for _, v := range minted {
		views = append(views, voucherView{
			Code:       v.Code(),
			ShortCode:  v.ShortCode(),
			Discount:   v.Discount,
			Collection: v.Collection.Name,
			Brand:      v.Collection.Brand.Name,
		})
	}
	return views
}
