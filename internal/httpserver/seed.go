package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soundhaven/musicstore/internal/logging"
	"github.com/soundhaven/musicstore/internal/seed"
	"github.com/soundhaven/musicstore/internal/service"
)

type SeedHTTP struct {
	Seeder  *seed.Seeder
	Catalog *service.CatalogService
}

func (h *SeedHTTP) SeedCatalog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seed.catalog")

	res, err := h.Seeder.SeedCatalog(ctx)
	if err != nil {
		l.Error("seed_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "seed failed")
	}

	if !res.Skipped {
		if err := h.Catalog.ReindexAlbums(ctx); err != nil {
			// Search stays behind the catalog until the next reindex;
			// seeding itself succeeded.
			l.Warn("seed_reindex_failed", "error", err)
		}
	}

	l.Info("seed_complete", "albums", res.Albums, "tracks", res.Tracks, "skipped", res.Skipped)
	return c.JSON(http.StatusCreated, res)
}
