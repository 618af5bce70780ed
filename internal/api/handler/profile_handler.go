package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

// ProfileResolver loads the profile of the authenticated role.
type ProfileResolver interface {
	Resolve(ctx context.Context) error
}

// ProfileStore is the part of the state store the profile routes read.
type ProfileStore interface {
	Snapshot() state.Snapshot
	RequestRefetch()
}

type ProfileHandler struct {
	resolver ProfileResolver
	store    ProfileStore
}

func NewProfileHandler(resolver ProfileResolver, store ProfileStore) *ProfileHandler {
	return &ProfileHandler{resolver: resolver, store: store}
}

type profileResponse struct {
	Role    domain.Role   `json:"role"`
	Account string        `json:"account"`
	Brand   *domain.Brand `json:"brand,omitempty"`
	User    *domain.User  `json:"user,omitempty"`
}

// Me returns the profile of the authenticated role, fetching it when the
// background resolver has not stored it yet.
//
// @Summary      Current profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	role, account, err := ctxClaims(c)
	if err != nil {
		return err
	}

	snap := h.store.Snapshot()
	if !hasProfile(snap) {
		if err := h.resolver.Resolve(c.Request().Context()); err != nil {
			return err
		}
		snap = h.store.Snapshot()
	}

	return c.JSON(http.StatusOK, profileResponse{
		Role:    role,
		Account: account,
		Brand:   snap.Brand,
		User:    snap.User,
	})
}

// Refetch asks the resolver to load the profile again.
//
// @Summary      Refetch profile
// @Tags         profile
// @Security     BearerAuth
// @Success      202
// @Router       /v1/me/refetch [post]
func (h *ProfileHandler) Refetch(c echo.Context) error {
	h.store.RequestRefetch()
	return c.NoContent(http.StatusAccepted)
}

func hasProfile(s state.Snapshot) bool {
	switch s.Role {
	case domain.RoleBrand:
		return s.Brand != nil
	case domain.RoleUser:
		return s.User != nil
	}
	return false
}
