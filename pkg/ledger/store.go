// Package ledger implements all operations on budgets, their categories,
// ledger entries and templates.
//
// Every mutation runs in a single transaction together with the change
// history row it produces, so a change is either recorded completely or
// not at all.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	"gorm.io/gorm"
)

// Store is the handle for all ledger operations.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns a Store working on db. db must have been opened with
// database.Connect so that foreign keys are enforced.
func New(db *gorm.DB) *Store {
	return &Store{
		db: db,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.conn(ctx).Transaction(fn)
}

// find loads the row of T with the primary key id.
//
// resource names the row in the *models.NotFoundError returned when there
// is none.
func find[T any](tx *gorm.DB, resource string, id uint64) (T, error) {
	var row T

	err := tx.First(&row, id).Error
	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return row, models.NotFound(resource, id)
	}

	return row, err
}

// touch marks the budget as edited now.
func (s *Store) touch(tx *gorm.DB, budgetID uint64) error {
	return tx.Model(&models.MonthlyBudget{}).
		Where("budget_id = ?", budgetID).
		Update("last_edited", s.now()).Error
}

func ptr[T any](v T) *T {
	return &v
}

// Migrate brings the schema of the database up to date. It is safe to call
// on a database that is already current.
func (s *Store) Migrate(ctx context.Context) error {
	return models.Migrate(s.conn(ctx))
}
