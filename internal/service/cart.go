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

// CartService is the single writer of a user's in-progress selection.
// Every mutation runs inside a transaction that locks the cart row, so
// operations on one user serialize while different users never contend.
type CartService struct {
	Repo    *repo.GormRepo
	Catalog AlbumResolver
}

func (s *CartService) CreateCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.CreateCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return &transport.CartView{ID: cart.ID, UserID: cart.UserID, Items: []transport.LineView{}}, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return s.view(ctx, cart)
}

// AddItem merges quantity into the existing line for the album, or appends
// a new line. The album must exist in the catalog at the time of the add.
func (s *CartService) AddItem(ctx context.Context, userID, albumID uuid.UUID, quantity int) (*transport.CartView, error) {
	if err := checkItemArgs(albumID, quantity); err != nil {
		return nil, err
	}
	if _, err := s.Catalog.ResolveAlbum(ctx, albumID); err != nil {
		return nil, err
	}

	cart, err := s.Repo.AddItem(ctx, userID, albumID, uint(quantity))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Two adds raced on inserting the same new line; the caller
			// retries and lands on the merge path.
			return nil, fmt.Errorf("add item: %w", ErrConflict)
		}
		return nil, fmt.Errorf("add item: %w", err)
	}
	return s.view(ctx, cart)
}

// RemoveItem decrements the line for the album. Removal saturates: asking
// to remove more than the line holds deletes the line instead of erroring.
func (s *CartService) RemoveItem(ctx context.Context, userID, albumID uuid.UUID, quantity int) (*transport.CartView, error) {
	if err := checkItemArgs(albumID, quantity); err != nil {
		return nil, err
	}
	if _, err := s.Catalog.ResolveAlbum(ctx, albumID); err != nil {
		return nil, err
	}

	cart, err := s.Repo.RemoveItem(ctx, userID, albumID, uint(quantity))
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrLineNotFound):
			return nil, fmt.Errorf("album %s is not in the cart: %w", albumID, ErrInvalidState)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("remove item: %w", err)
	}
	return s.view(ctx, cart)
}

func checkItemArgs(albumID uuid.UUID, quantity int) error {
	if albumID == uuid.Nil {
		return fmt.Errorf("album_id is required: %w", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be a positive integer: %w", ErrInvalidArgument)
	}
	return nil
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*transport.CartView, error) {
	lines := make([]transport.LineView, len(cart.Items))
	for i, it := range cart.Items {
		lines[i] = transport.LineView{AlbumID: it.AlbumID, Quantity: it.Quantity}
	}

	resolved, err := resolveLines(ctx, s.Catalog, lines)
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}
	return &transport.CartView{ID: cart.ID, UserID: cart.UserID, Items: resolved}, nil
}
