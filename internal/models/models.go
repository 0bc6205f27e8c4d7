package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"      json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Artist struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name    string    `gorm:"not null"              json:"name"`
	Country string    `json:"country"`
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Genre struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name string    `gorm:"uniqueIndex;not null"  json:"name"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type Album struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	ReleaseYear int       `gorm:"not null"                 json:"release_year"`
	ArtistID    uuid.UUID `gorm:"type:uuid;index;not null" json:"artist_id"`
	GenreID     uuid.UUID `gorm:"type:uuid;index;not null" json:"genre_id"`
	Price       float64   `gorm:"not null"                 json:"price"`
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Track struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Title           string    `gorm:"not null"                 json:"title"`
	DurationSeconds int       `gorm:"not null"                 json:"duration_seconds"`
	AlbumID         uuid.UUID `gorm:"type:uuid;index;not null" json:"album_id"`
}

func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Cart is the single in-progress selection of a user. The row survives
// checkout: placing an order clears the items and leaves the cart empty.
type Cart struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID"              json:"items"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem holds one (album, quantity) line. The composite unique index
// keeps at most one line per album; quantity is never stored as zero.
// CreatedAt fixes the line's place in the cart: reads order by it, so the
// cart keeps append order across merges and reloads.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                          json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_album;not null" json:"cart_id"`
	AlbumID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_album;not null" json:"album_id"`
	Quantity  uint      `gorm:"not null;check:quantity>0"                     json:"quantity"`
	CreatedAt time.Time `json:"-"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Order is a frozen snapshot of a cart at checkout time. Items are value
// copies of the cart lines, never references back to the cart.
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt time.Time   `gorm:"not null"                 json:"created_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem lines carry their position within the order, so the snapshot
// reads back in the same sequence the cart held at checkout.
type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;not null"  json:"order_id"`
	AlbumID  uuid.UUID `gorm:"type:uuid;not null"        json:"album_id"`
	Quantity uint      `gorm:"not null;check:quantity>0" json:"quantity"`
	Position int       `gorm:"not null"                  json:"-"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
