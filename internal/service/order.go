package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/models"
	"github.com/soundhaven/musicstore/internal/repo"
	"github.com/soundhaven/musicstore/internal/transport"
)

// OrderService owns the checkout transition and order history. An order is
// a frozen copy of the cart at placement time; history projections look the
// catalog up at read time, so displayed prices can drift after purchase.
type OrderService struct {
	Repo    *repo.GormRepo
	Catalog AlbumResolver
}

// PlaceOrder atomically snapshots the user's cart into a new order and
// drains the cart. The cart row survives, empty, for future use.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.PlaceOrder(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		case errors.Is(err, repo.ErrEmptyCart):
			return nil, fmt.Errorf("cart is empty: %w", ErrInvalidState)
		}
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("no orders for user %s: %w", userID, ErrNotFound)
	}
	return orders, nil
}

// GetOrderHistory returns the user's orders newest first, each line
// resolved against the catalog for display.
func (s *OrderService) GetOrderHistory(ctx context.Context, userID uuid.UUID) ([]transport.OrderView, error) {
	orders, err := s.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]transport.OrderView, 0, len(orders))
	for _, order := range orders {
		lines := make([]transport.LineView, len(order.Items))
		for i, it := range order.Items {
			lines[i] = transport.LineView{AlbumID: it.AlbumID, Quantity: it.Quantity}
		}
		resolved, err := resolveLines(ctx, s.Catalog, lines)
		if err != nil {
			return nil, fmt.Errorf("resolve order %s: %w", order.ID, err)
		}
		views = append(views, transport.OrderView{
			ID:        order.ID,
			UserID:    order.UserID,
			CreatedAt: order.CreatedAt,
			Items:     resolved,
		})
	}
	return views, nil
}
