package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/soundhaven/musicstore/internal/models"
	"github.com/soundhaven/musicstore/internal/service"
)

func TestPlaceOrderSnapshotsAndDrainsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)
	_, err = env.Carts.AddItem(ctx, userID, env.AlbumA.ID, 2)
	require.NoError(t, err)
	_, err = env.Carts.AddItem(ctx, userID, env.AlbumB.ID, 1)
	require.NoError(t, err)

	order, err := env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, userID, order.UserID)
	require.Len(t, order.Items, 2)

	quantities := map[uuid.UUID]uint{}
	for _, it := range order.Items {
		quantities[it.AlbumID] = it.Quantity
	}
	require.Equal(t, uint(2), quantities[env.AlbumA.ID])
	require.Equal(t, uint(1), quantities[env.AlbumB.ID])

	// The cart survives checkout, drained to empty.
	cart, err := env.Carts.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)

	_, err = env.Orders.PlaceOrder(ctx, userID)
	require.ErrorIs(t, err, service.ErrInvalidState)

	var count int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count, "a rejected checkout must not create an order")
}

func TestPlaceOrderWithoutCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Orders.PlaceOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderImmutableAfterCartMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)
	_, err = env.Carts.AddItem(ctx, userID, env.AlbumA.ID, 2)
	require.NoError(t, err)

	order, err := env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	// Refilling the cart must not bleed into the placed order.
	_, err = env.Carts.AddItem(ctx, userID, env.AlbumB.ID, 7)
	require.NoError(t, err)

	stored, err := env.Orders.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, order.ID, stored[0].ID)
	require.Len(t, stored[0].Items, 1)
	require.Equal(t, env.AlbumA.ID, stored[0].Items[0].AlbumID)
	require.Equal(t, uint(2), stored[0].Items[0].Quantity)
}

func TestListOrdersEmpty(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Orders.ListOrders(context.Background(), uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)

	_, err = env.Carts.AddItem(ctx, userID, env.AlbumA.ID, 1)
	require.NoError(t, err)
	first, err := env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = env.Carts.AddItem(ctx, userID, env.AlbumB.ID, 1)
	require.NoError(t, err)
	second, err := env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	history, err := env.Orders.GetOrderHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, second.ID, history[0].ID)
	require.Equal(t, first.ID, history[1].ID)
}

func TestOrderHistoryResolvesCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)
	_, err = env.Carts.AddItem(ctx, userID, env.AlbumA.ID, 3)
	require.NoError(t, err)
	_, err = env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	history, err := env.Orders.GetOrderHistory(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Items, 1)

	line := history[0].Items[0]
	require.NotNil(t, line.Album)
	require.Equal(t, "Northern Glass", line.Album.Title)
	require.Equal(t, "Velvet Meridian", line.Album.Artist)
}

func TestOrderHistoryMarksUnresolvedAlbums(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)
	_, err = env.Carts.AddItem(ctx, userID, env.AlbumA.ID, 1)
	require.NoError(t, err)
	_, err = env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, env.DB.Delete(&env.AlbumA).Error)

	history, err := env.Orders.GetOrderHistory(ctx, userID)
	require.NoError(t, err, "a vanished album must not fail history")
	require.Len(t, history, 1)
	require.True(t, history[0].Items[0].Unresolved)
	require.Nil(t, history[0].Items[0].Album)
}

// Walks the full shopping cycle: create, fill, saturate-remove, checkout.
func TestShoppingScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	cart, err := env.Carts.CreateCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	cart, err = env.Carts.AddItem(ctx, userID, env.AlbumA.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = env.Carts.AddItem(ctx, userID, env.AlbumB.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = env.Carts.RemoveItem(ctx, userID, env.AlbumA.ID, 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, env.AlbumB.ID, cart.Items[0].AlbumID)

	order, err := env.Orders.PlaceOrder(ctx, userID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, env.AlbumB.ID, order.Items[0].AlbumID)
	require.Equal(t, uint(1), order.Items[0].Quantity)

	cart, err = env.Carts.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}
