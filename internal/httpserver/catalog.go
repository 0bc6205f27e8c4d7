package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/soundhaven/musicstore/internal/logging"
	"github.com/soundhaven/musicstore/internal/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *CatalogHTTP) ListAlbums(c echo.Context) error {
	ctx := c.Request().Context()

	albums, err := h.Svc.ListAlbums(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, albums)
}

func (h *CatalogHTTP) GetAlbum(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	album, err := h.Svc.GetAlbum(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, album)
}

func (h *CatalogHTTP) ListArtists(c echo.Context) error {
	ctx := c.Request().Context()

	artists, err := h.Svc.ListArtists(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, artists)
}

func (h *CatalogHTTP) GetArtist(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	artist, err := h.Svc.GetArtist(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, artist)
}

func (h *CatalogHTTP) ListTracks(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c)
	if err != nil {
		return err
	}

	tracks, err := h.Svc.ListTracks(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tracks)
}

func (h *CatalogHTTP) SearchAlbums(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 || size > 100 {
		size = 20
	}

	total, listings, err := h.Svc.SearchAlbums(ctx, q, from, size)
	if err != nil {
		l.Warn("search_failed", "query", q, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "albums": listings})
}
