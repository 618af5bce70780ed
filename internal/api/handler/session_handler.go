package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/api/metrics"
	"github.com/vouchervault/voucher-vault/internal/api/middleware"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/service"
	"github.com/vouchervault/voucher-vault/internal/core/state"
)

// Bootstrapper starts and ends the operator's ledger session.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, in service.Intent) (*service.BootstrapResult, error)
	Logout()
}

// SnapshotReader reads the application state.
type SnapshotReader interface {
	Snapshot() state.Snapshot
}

// SessionHandler exposes the login/sign-up flow for both roles.
type SessionHandler struct {
	sessions  Bootstrapper
	store     SnapshotReader
	jwtSecret string
}

func NewSessionHandler(sessions Bootstrapper, store SnapshotReader, jwtSecret string) *SessionHandler {
	return &SessionHandler{sessions: sessions, store: store, jwtSecret: jwtSecret}
}

type brandAuthRequest struct {
	// Name is only used when the wallet has no account yet.
	Name    string `json:"name" validate:"max=100"`
	DevMode bool   `json:"dev_mode"`
}

type userAuthRequest struct {
	DevMode bool `json:"dev_mode"`
}

type authResponse struct {
	Token      string      `json:"token"`
	Role       domain.Role `json:"role"`
	Account    string      `json:"account"`
	ExpiresAt  time.Time   `json:"expires_at"`
	Registered bool        `json:"registered"`
	Redirect   string      `json:"redirect"`
}

type sessionResponse struct {
	Role      domain.Role `json:"role"`
	Account   string      `json:"account"`
	ExpiresAt time.Time   `json:"expires_at"`
	BrandName string      `json:"brand_name,omitempty"`
}

// Brand logs in as a brand, registering the wallet under name when it has no
// account yet.
//
// @Summary      Log in or sign up as a brand
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      brandAuthRequest  true  "Brand name and network"
// @Success      200   {object}  authResponse
// @Failure      409   {object}  map[string]string
// @Failure      412   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/brand [post]
func (h *SessionHandler) Brand(c echo.Context) error {
	var req brandAuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.bootstrap(c, service.Intent{Role: domain.RoleBrand, BrandName: req.Name, DevMode: req.DevMode})
}

// User logs in as a consumer, registering the wallet when it has no account.
//
// @Summary      Log in or sign up as a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      userAuthRequest  false  "Network"
// @Success      200   {object}  authResponse
// @Failure      409   {object}  map[string]string
// @Failure      412   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/user [post]
func (h *SessionHandler) User(c echo.Context) error {
	var req userAuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	return h.bootstrap(c, service.Intent{Role: domain.RoleUser, DevMode: req.DevMode})
}

func (h *SessionHandler) bootstrap(c echo.Context, in service.Intent) error {
	res, err := h.sessions.Bootstrap(c.Request().Context(), in)
	metrics.BootstrapTotal.WithLabelValues(string(in.Role), outcome(err)).Inc()
	if err != nil {
		return err
	}

	account := res.Session.AccountID().String()
	expires := res.Session.ExpiresAt()
	token, err := middleware.NewToken(h.jwtSecret, string(res.Role), account, expires)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:      token,
		Role:       res.Role,
		Account:    account,
		ExpiresAt:  expires,
		Registered: res.Registered,
		Redirect:   res.Redirect,
	})
}

// Logout drops the session. Every token issued for it stops working. Only a
// token of the active session may log out.
//
// @Summary      Log out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Current returns the header data for the active session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	snap := h.store.Snapshot()
	if snap.Session == nil {
		return domain.ErrNoSession
	}

	resp := sessionResponse{
		Role:      snap.Role,
		Account:   snap.Session.AccountID().String(),
		ExpiresAt: snap.Session.ExpiresAt(),
	}
	if snap.Brand != nil {
		resp.BrandName = snap.Brand.Name
	}
	return c.JSON(http.StatusOK, resp)
}
