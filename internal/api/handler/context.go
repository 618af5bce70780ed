package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/api/middleware"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// ctxClaims extracts the claims injected by the Auth middleware. Both must be
// present: a token without an account is structurally valid but cannot be
// matched to a ledger session.
func ctxClaims(c echo.Context) (domain.Role, string, error) {
	role, _ := c.Get(middleware.ContextRole).(string)
	if !domain.Role(role).Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	account, _ := c.Get(middleware.ContextAccount).(string)
	if account == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing account identity")
	}

	return domain.Role(role), account, nil
}
