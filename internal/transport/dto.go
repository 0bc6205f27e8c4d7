package transport

import (
	"time"

	"github.com/google/uuid"
)

// AlbumInfo is the catalog projection attached to cart and order lines.
type AlbumInfo struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Price  float64   `json:"price"`
	Artist string    `json:"artist"`
	Genre  string    `json:"genre,omitempty"`
}

// LineView is one (album, quantity) pair resolved against the catalog.
// Unresolved marks lines whose album has disappeared from the catalog;
// such lines are reported, never dropped.
type LineView struct {
	AlbumID    uuid.UUID  `json:"album_id"`
	Quantity   uint       `json:"quantity"`
	Unresolved bool       `json:"unresolved,omitempty"`
	Album      *AlbumInfo `json:"album,omitempty"`
}

type CartView struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Items  []LineView `json:"items"`
}

type OrderView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []LineView `json:"items"`
}

type CartItemRequest struct {
	AlbumID  uuid.UUID `json:"album_id"`
	Quantity int       `json:"quantity"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type ArtistDetail struct {
	ID         uuid.UUID     `json:"id"`
	Name       string        `json:"name"`
	Country    string        `json:"country"`
	AlbumCount int           `json:"album_count"`
	Albums     []ArtistAlbum `json:"albums"`
}

type ArtistAlbum struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"release_year"`
	Genre       string    `json:"genre"`
	Price       float64   `json:"price"`
	TrackCount  int64     `json:"track_count"`
}

type AlbumListing struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear int       `json:"release_year"`
	Artist      string    `json:"artist"`
	Genre       string    `json:"genre"`
	Price       float64   `json:"price"`
}
