package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// change is a change history row before it is written.
type change struct {
	budgetID    uint64
	kind        models.ChangeType
	field       string
	oldValue    *string
	newValue    *string
	description string
}

// logChange appends c to the change history using the transaction of the
// mutation it describes. A failure here aborts the mutation.
func (s *Store) logChange(tx *gorm.DB, c change) error {
	entry := models.ChangeHistoryEntry{
		BudgetID:    c.budgetID,
		ChangeType:  c.kind,
		OldValue:    c.oldValue,
		NewValue:    c.newValue,
		Description: c.description,
		ChangedAt:   s.now(),
	}

	if c.field != "" {
		entry.FieldName = ptr(c.field)
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("writing change history: %w", err)
	}

	return nil
}

// History returns the change history of a budget, newest first.
func (s *Store) History(ctx context.Context, budgetID uint64) ([]models.ChangeHistoryEntry, error) {
	db := s.conn(ctx)

	if _, err := find[models.MonthlyBudget](db, "budget", budgetID); err != nil {
		return nil, err
	}

	history := []models.ChangeHistoryEntry{}
	err := db.
		Where("budget_id = ?", budgetID).
		Order("changed_at DESC, change_id DESC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}

	return history, nil
}

// money formats an amount the way it is shown in change descriptions.
func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func timestamp(t *time.Time) *string {
	if t == nil {
		return ptr("null")
	}
	return ptr(t.Format(time.RFC3339Nano))
}
