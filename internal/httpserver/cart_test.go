package httpserver_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundhaven/musicstore/internal/transport"
)

func TestCartRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/cart", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndGetCart(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("alice")

	rec := env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var cart transport.CartView
	env.decode(rec, &cart)
	require.Empty(t, cart.Items)

	rec = env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusBadRequest, rec.Code, "second create must report the existing cart")

	rec = env.do(http.MethodGet, "/api/cart", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCartBeforeCreate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("bob")

	rec := env.do(http.MethodGet, "/api/cart", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("carol")

	rec := env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := transport.CartItemRequest{AlbumID: env.AlbumA.ID, Quantity: 2}
	rec = env.do(http.MethodPut, "/api/cart/add", body, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart transport.CartView
	env.decode(rec, &cart)
	require.Len(t, cart.Items, 1)
	require.Equal(t, uint(2), cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Album)
	require.Equal(t, "Low Orbit", cart.Items[0].Album.Title)

	// Same album again merges into the existing line.
	rec = env.do(http.MethodPut, "/api/cart/add", body, token)
	require.Equal(t, http.StatusOK, rec.Code)
	env.decode(rec, &cart)
	require.Len(t, cart.Items, 1)
	require.Equal(t, uint(4), cart.Items[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("dave")

	rec := env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, q := range []int{0, -1} {
		body := transport.CartItemRequest{AlbumID: env.AlbumA.ID, Quantity: q}
		rec = env.do(http.MethodPut, "/api/cart/add", body, token)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestAddItemUnknownAlbumEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("erin")

	rec := env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := map[string]any{"album_id": "00000000-0000-0000-0000-0000000000ff", "quantity": 1}
	rec = env.do(http.MethodPut, "/api/cart/add", body, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveItemEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("frank")

	rec := env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPut, "/api/cart/add", transport.CartItemRequest{AlbumID: env.AlbumA.ID, Quantity: 3}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPut, "/api/cart/remove", transport.CartItemRequest{AlbumID: env.AlbumA.ID, Quantity: 1}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart transport.CartView
	env.decode(rec, &cart)
	require.Len(t, cart.Items, 1)
	require.Equal(t, uint(2), cart.Items[0].Quantity)

	// Saturating removal deletes the whole line.
	rec = env.do(http.MethodPut, "/api/cart/remove", transport.CartItemRequest{AlbumID: env.AlbumA.ID, Quantity: 99}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	env.decode(rec, &cart)
	require.Empty(t, cart.Items)
}

func TestRemoveItemNotInCartEndpoint(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser("grace")

	rec := env.do(http.MethodPost, "/api/cart", nil, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPut, "/api/cart/remove", transport.CartItemRequest{AlbumID: env.AlbumA.ID, Quantity: 1}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
