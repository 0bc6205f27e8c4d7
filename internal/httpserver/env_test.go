package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soundhaven/musicstore/internal/httpserver"
	"github.com/soundhaven/musicstore/internal/models"
	"github.com/soundhaven/musicstore/internal/repo"
	"github.com/soundhaven/musicstore/internal/seed"
	"github.com/soundhaven/musicstore/internal/service"
	"github.com/soundhaven/musicstore/internal/tokens"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Secret []byte

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

	r := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: r}
	cartSvc := &service.CartService{Repo: r, Catalog: catalogSvc}
	orderSvc := &service.OrderService{Repo: r, Catalog: catalogSvc}

	secret := []byte("test-secret")

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Repo: r, Carts: cartSvc, JWTSecret: secret},
		Cart:      &httpserver.CartHTTP{Svc: cartSvc},
		Order:     &httpserver.OrderHTTP{Svc: orderSvc},
		Catalog:   &httpserver.CatalogHTTP{Svc: catalogSvc},
		Seed:      &httpserver.SeedHTTP{Seeder: &seed.Seeder{DB: db}, Catalog: catalogSvc},
		JWTSecret: secret,
	})

	env := &testEnv{T: t, E: e, DB: db, Secret: secret}

	artist := models.Artist{Name: "Paper Satellites", Country: "Canada"}
	require.NoError(t, db.Create(&artist).Error)
	genre := models.Genre{Name: "Electronic"}
	require.NoError(t, db.Create(&genre).Error)

	env.AlbumA = models.Album{Title: "Low Orbit", ReleaseYear: 2016, ArtistID: artist.ID, GenreID: genre.ID, Price: 8.99}
	require.NoError(t, db.Create(&env.AlbumA).Error)
	env.AlbumB = models.Album{Title: "Ground Control", ReleaseYear: 2021, ArtistID: artist.ID, GenreID: genre.ID, Price: 10.99}
	require.NoError(t, db.Create(&env.AlbumB).Error)

	for _, album := range []models.Album{env.AlbumA, env.AlbumB} {
		require.NoError(t, db.Create(&models.Track{Title: "Track One", DurationSeconds: 180, AlbumID: album.ID}).Error)
	}

	return env
}

// newUser persists a user without a cart and returns its id and a signed
// access token for it.
func (env *testEnv) newUser(name string) (uuid.UUID, string) {
	user := models.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	token, err := tokens.NewAccessToken(user.ID, env.Secret)
	require.NoError(env.T, err)
	return user.ID, token
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token, Path: "/"})
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder, out any) {
	env.T.Helper()
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), out))
}
