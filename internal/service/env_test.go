package service_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/models"
	"github.com/soundhaven/musicstore/internal/repo"
	"github.com/soundhaven/musicstore/internal/service"
)

type testEnv struct {
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Catalog *service.CatalogService
	Carts   *service.CartService
	Orders  *service.OrderService

	Artist models.Artist
	Genre  models.Genre
	AlbumA models.Album
	AlbumB models.Album
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Genre{},
		&models.Album{},
		&models.Track{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	env := &testEnv{DB: db, Repo: &repo.GormRepo{DB: db}}
	env.Catalog = &service.CatalogService{Repo: env.Repo}
	env.Carts = &service.CartService{Repo: env.Repo, Catalog: env.Catalog}
	env.Orders = &service.OrderService{Repo: env.Repo, Catalog: env.Catalog}

	env.Artist = models.Artist{Name: "Velvet Meridian", Country: "United Kingdom"}
	require.NoError(t, db.Create(&env.Artist).Error)

	env.Genre = models.Genre{Name: "Rock"}
	require.NoError(t, db.Create(&env.Genre).Error)

	env.AlbumA = models.Album{
		Title:       "Northern Glass",
		ReleaseYear: 2014,
		ArtistID:    env.Artist.ID,
		GenreID:     env.Genre.ID,
		Price:       11.99,
	}
	require.NoError(t, db.Create(&env.AlbumA).Error)

	env.AlbumB = models.Album{
		Title:       "Static Bloom",
		ReleaseYear: 2018,
		ArtistID:    env.Artist.ID,
		GenreID:     env.Genre.ID,
		Price:       9.99,
	}
	require.NoError(t, db.Create(&env.AlbumB).Error)

	for _, album := range []models.Album{env.AlbumA, env.AlbumB} {
		track := models.Track{Title: "Opener", DurationSeconds: 200, AlbumID: album.ID}
		require.NoError(t, db.Create(&track).Error)
	}

	return env
}
