package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
)

// SessionSource exposes the active ledger session.
type SessionSource interface {
	Session() (ports.Session, domain.Role, error)
}

// CurrentSession rejects tokens that no longer match the active session, for
// example after a logout, a role conflict reset or a TTL expiry. It must run
// after Auth.
func CurrentSession(store SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, role, err := store.Session()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
			}
			account, _ := c.Get(ContextAccount).(string)
			claimedRole, _ := c.Get(ContextRole).(string)
			if account != sess.AccountID().String() || claimedRole != string(role) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token does not match the active session")
			}
			return next(c)
		}
	}
}
