package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundhaven/musicstore/internal/middleware"
)

type Deps struct {
	Auth      *AuthHTTP
	Cart      *CartHTTP
	Order     *OrderHTTP
	Catalog   *CatalogHTTP
	Seed      *SeedHTTP
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.RequireAuth(d.JWTSecret)

	api := e.Group("/api")

	api.POST("/user", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/logout", d.Auth.Logout, authMW)
	api.GET("/auth/session", d.Auth.Session, authMW)

	api.GET("/album", d.Catalog.ListAlbums)
	api.GET("/album/:id", d.Catalog.GetAlbum)
	api.GET("/artist", d.Catalog.ListArtists)
	api.GET("/artist/:id", d.Catalog.GetArtist)
	api.GET("/track/album/:id", d.Catalog.ListTracks)
	api.GET("/search", d.Catalog.SearchAlbums)

	cart := api.Group("/cart", authMW)
	cart.POST("", d.Cart.CreateCart)
	cart.GET("", d.Cart.GetCart)
	cart.PUT("/add", d.Cart.AddItem)
	cart.PUT("/remove", d.Cart.RemoveItem)

	order := api.Group("/order", authMW)
	order.POST("", d.Order.PlaceOrder)
	order.GET("", d.Order.ListOrders)
	order.GET("/history", d.Order.OrderHistory)

	api.POST("/seeding/catalog", d.Seed.SeedCatalog)
}
