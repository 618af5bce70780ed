package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/api/metrics"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/service"
)

const (
	badgeAvailable = "Available"
	badgeSoldOut   = "Sold Out"
)

// BrandDashboard lists and issues the logged-in brand's collections.
type BrandDashboard interface {
	Collections(ctx context.Context) ([]domain.VoucherCollection, error)
	CreateCollection(ctx context.Context, in service.CreateCollectionInput) ([]domain.VoucherCollection, error)
}

type BrandHandler struct {
	dashboard BrandDashboard
}

func NewBrandHandler(dashboard BrandDashboard) *BrandHandler {
	return &BrandHandler{dashboard: dashboard}
}

type createCollectionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"desc" validate:"required,max=500"`
	MaxDiscount int64  `json:"max_discount" validate:"gt=0,lte=100"`
	TotalSupply int64  `json:"total_supply" validate:"gt=0"`
}

type collectionRow struct {
	Name        string `json:"name"`
	Description string `json:"desc"`
	MaxDiscount int64  `json:"max_discount"`
	TotalSupply int64  `json:"total_supply"`
	Minted      int64  `json:"minted"`
	Remaining   int64  `json:"remaining"`
	Badge       string `json:"badge"`
}

type collectionsResponse struct {
	Collections []collectionRow `json:"collections"`
}

// List returns the brand's collections.
//
// @Summary      List own collections
// @Tags         brand
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  collectionsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/brand/collections [get]
func (h *BrandHandler) List(c echo.Context) error {
	cols, err := h.dashboard.Collections(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCollectionsResponse(cols))
}

// Create issues a new voucher collection and returns the refreshed list.
//
// @Summary      Create a collection
// @Tags         brand
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCollectionRequest  true  "Collection details"
// @Success      201   {object}  collectionsResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/brand/collections [post]
func (h *BrandHandler) Create(c echo.Context) error {
	var req createCollectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.CollectionsCreatedTotal.WithLabelValues(outcome(err)).Inc()
		return err
	}

	cols, err := h.dashboard.CreateCollection(c.Request().Context(), service.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		MaxDiscount: req.MaxDiscount,
		TotalSupply: req.TotalSupply,
	})
	metrics.CollectionsCreatedTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCollectionsResponse(cols))
}

func toCollectionsResponse(cols []domain.VoucherCollection) collectionsResponse {
	rows := make([]collectionRow, 0, len(cols))
	for _, col := range cols {
		badge := badgeSoldOut
		if col.Available() {
			badge = badgeAvailable
		}
		rows = append(rows, collectionRow{
			Name:        col.Name,
			Description: col.Description,
			MaxDiscount: col.MaxDiscount,
			TotalSupply: col.TotalSupply,
			Minted:      col.MintedCount,
			Remaining:   col.Remaining(),
			Badge:       badge,
		})
	}
	return collectionsResponse{Collections: rows}
}
