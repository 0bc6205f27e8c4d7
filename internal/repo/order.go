package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/models"
)

// ErrEmptyCart is returned by PlaceOrder when the cart holds no lines.
var ErrEmptyCart = errors.New("cart is empty")

// PlaceOrder snapshots the cart's lines into a new order and clears the
// cart, all inside one transaction holding the cart row lock. The cart row
// itself stays behind, empty, for reuse.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var out *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := r.lockCartForUpdate(tx, userID)
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("created_at, id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order := models.Order{UserID: userID}
		snapshot := make([]models.OrderItem, 0, len(items))
		for i, it := range items {
			snapshot = append(snapshot, models.OrderItem{
				AlbumID:  it.AlbumID,
				Quantity: it.Quantity,
				Position: i,
			})
		}
		order.Items = snapshot

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		out = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
