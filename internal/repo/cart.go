package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/models"
)

// ErrLineNotFound distinguishes "no such line in the cart" from the cart
// itself being absent, which surfaces as gorm.ErrRecordNotFound.
var ErrLineNotFound = errors.New("line not found in cart")

func (r *GormRepo) CreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := r.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", cartItemOrder).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges quantity into an existing line for the album or appends a
// new line, inside one transaction holding the cart row lock.
func (r *GormRepo) AddItem(ctx context.Context, userID, albumID uuid.UUID, quantity uint) (*models.Cart, error) {
	var out *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := r.lockCartForUpdate(tx, userID)
		if err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND album_id = ?", cart.ID, albumID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item := models.CartItem{CartID: cart.ID, AlbumID: albumID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		if err := tx.Preload("Items", cartItemOrder).First(cart, "id = ?", cart.ID).Error; err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem decrements the line for the album, deleting it when the
// decrement would reach zero or below. Returns gorm.ErrRecordNotFound
// when the album is not a line in the cart.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, albumID uuid.UUID, quantity uint) (*models.Cart, error) {
	var out *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := r.lockCartForUpdate(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND album_id = ?", cart.ID, albumID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLineNotFound
			}
			return err
		}

		if item.Quantity > quantity {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - ?", quantity)).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
		}

		if err := tx.Preload("Items", cartItemOrder).First(cart, "id = ?", cart.ID).Error; err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
