package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundhaven/musicstore/internal/events"
	"github.com/soundhaven/musicstore/internal/logging"
	"github.com/soundhaven/musicstore/internal/middleware"
	"github.com/soundhaven/musicstore/internal/service"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID)
	if err != nil {
		l.Warn("place_order_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicOrderEvents, userID.String(), map[string]any{
		"type":     "order_placed",
		"user_id":  userID,
		"order_id": order.ID,
		"lines":    len(order.Items),
	})

	l.Info("order_placed", "order_id", order.ID, "lines", len(order.Items))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		l.Warn("list_orders_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) OrderHistory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.history")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	history, err := h.Svc.GetOrderHistory(ctx, userID)
	if err != nil {
		l.Warn("order_history_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}
