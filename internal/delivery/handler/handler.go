package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"course-service/internal/domain"
	"course-service/internal/usecase"
)

// Handler serves the HTTP surface next to the websocket gateway: the
// notification feed, health and metrics.
type Handler struct {
	auth     *usecase.AuthUsecase
	notifier *usecase.Notifier
}

func NewHandler(auth *usecase.AuthUsecase, notifier *usecase.Notifier) *Handler {
	return &Handler{auth: auth, notifier: notifier}
}

func (h *Handler) Register(e *echo.Echo, gateway http.Handler) {
	e.GET("/ws", echo.WrapHandler(gateway))
	e.GET("/api/user/notifications", h.Notifications)
	e.GET("/healthz", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Notifications returns the caller's feed, newest first, and resets the
// unread counter: fetching the feed is what marks everything seen.
func (h *Handler) Notifications(c echo.Context) error {
	userID, err := h.auth.VerifyUser(c.Request().Context(), c.Request().Header.Get("Authorization"))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": domain.ClientMessage(err)})
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": domain.ClientMessage(domain.ErrUnauthorized)})
	}

	notifications, err := h.notifier.Feed(c.Request().Context(), oid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": domain.ClientMessage(errors.New("feed failed"))})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"notifications": notifications})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
