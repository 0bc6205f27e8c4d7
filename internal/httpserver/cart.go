package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundhaven/musicstore/internal/events"
	"github.com/soundhaven/musicstore/internal/logging"
	"github.com/soundhaven/musicstore/internal/middleware"
	"github.com/soundhaven/musicstore/internal/service"
	"github.com/soundhaven/musicstore/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Producer *events.Producer
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	cart, err := h.Svc.CreateCart(ctx, userID)
	if err != nil {
		l.Warn("create_cart_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCartEvents, userID.String(), map[string]any{
		"type":    "cart_created",
		"user_id": userID,
		"cart_id": cart.ID,
	})

	l.Info("cart_created", "cart_id", cart.ID)
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Warn("get_cart_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_bad_body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AddItem(ctx, userID, req.AlbumID, req.Quantity)
	if err != nil {
		l.Warn("add_item_failed", "album_id", req.AlbumID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCartEvents, userID.String(), map[string]any{
		"type":     "cart_item_added",
		"user_id":  userID,
		"album_id": req.AlbumID,
		"quantity": req.Quantity,
	})

	l.Info("cart_item_added", "album_id", req.AlbumID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_item_bad_body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, req.AlbumID, req.Quantity)
	if err != nil {
		l.Warn("remove_item_failed", "album_id", req.AlbumID, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, events.TopicCartEvents, userID.String(), map[string]any{
		"type":     "cart_item_removed",
		"user_id":  userID,
		"album_id": req.AlbumID,
		"quantity": req.Quantity,
	})

	l.Info("cart_item_removed", "album_id", req.AlbumID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, cart)
}
