package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vouchervault/voucher-vault/internal/core/domain"
)

// NotificationDrainer hands out pending notifications once.
type NotificationDrainer interface {
	Drain(ctx context.Context) ([]domain.Notification, error)
}

type NotificationHandler struct {
	feed NotificationDrainer
}

func NewNotificationHandler(feed NotificationDrainer) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

type notificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// List drains the notification feed. A notification with reload set asks the
// UI to start over from the login page.
//
// @Summary      Pending notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notificationsResponse
// @Failure      500  {object}  map[string]string
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	items, err := h.feed.Drain(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notifications: items})
}
