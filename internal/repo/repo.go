package repo

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/soundhaven/musicstore/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// cartItemOrder keeps cart lines in append order on every read. The id
// tiebreak only matters when two lines share a creation timestamp.
func cartItemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

// lockCartForUpdate loads the user's cart row under FOR UPDATE inside tx, so
// that concurrent mutations for the same user serialize on the row lock.
// SQLite has a single writer per database, so the clause is skipped there.
func (r *GormRepo) lockCartForUpdate(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	q := tx.Where("user_id = ?", userID)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart models.Cart
	if err := q.First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
