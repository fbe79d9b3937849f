package ledger

import (
	"context"
	"fmt"

	"github.com/budgetbook/backend/internal/types"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLedgerLimit is the page size used when a query does not set one.
const DefaultLedgerLimit = 50

// NewEntry is the input for AddEntry.
type NewEntry struct {
	CategoryID uint64
	EntryType  models.EntryType
	Amount     decimal.Decimal
	What       string
	Where      *string
	Date       types.Date
}

// EntryUpdate replaces the editable fields of an entry.
type EntryUpdate struct {
	EntryID   uint64
	EntryType models.EntryType
	Amount    decimal.Decimal
	What      string
	Where     *string
	Date      types.Date
}

// LedgerQuery selects a page of a category ledger.
type LedgerQuery struct {
	Limit  int
	Offset int
	Sort   models.LedgerSort
}

// ledgerOrderings are the ORDER BY clauses for every ledger sort. Each ends
// on the primary key so that pages never overlap.
var ledgerOrderings = map[models.LedgerSort]string{
	models.LedgerDateAsc:     "date ASC, created_at ASC, entry_id ASC",
	models.LedgerDateDesc:    "date DESC, created_at DESC, entry_id DESC",
	models.LedgerAmountAsc:   "amount ASC, entry_id ASC",
	models.LedgerAmountDesc:  "amount DESC, entry_id DESC",
	models.LedgerCreatedAsc:  "created_at ASC, entry_id ASC",
	models.LedgerCreatedDesc: "created_at DESC, entry_id DESC",
}

func validateEntry(entryType models.EntryType, amount decimal.Decimal, date types.Date) error {
	if !entryType.Valid() {
		return models.Invalid("unknown entry type %q", entryType)
	}

	if !amount.IsPositive() {
		return models.Invalid("amount must be positive, got %s", amount)
	}

	if date.IsZero() {
		return models.Invalid("date is required")
	}

	return nil
}

// Ledger returns a page of the live entries of a category.
func (s *Store) Ledger(ctx context.Context, categoryID uint64, q LedgerQuery) ([]models.LedgerEntry, error) {
	sort, err := models.ParseLedgerSort(string(q.Sort))
	if err != nil {
		return nil, err
	}

	if q.Offset < 0 {
		return nil, models.Invalid("offset must not be negative")
	}

	if q.Limit <= 0 {
		q.Limit = DefaultLedgerLimit
	}

	db := s.conn(ctx)
	if _, err := find[models.BudgetCategory](db, "category", categoryID); err != nil {
		return nil, err
	}

	entries := []models.LedgerEntry{}
	err = db.
		Where("category_id = ? AND deleted_at IS NULL", categoryID).
		Order(ledgerOrderings[sort]).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Entry returns a single entry, soft-deleted or not.
func (s *Store) Entry(ctx context.Context, id uint64) (models.LedgerEntry, error) {
	return find[models.LedgerEntry](s.conn(ctx), "entry", id)
}

// AddEntry books a new entry on a category.
func (s *Store) AddEntry(ctx context.Context, in NewEntry) (models.LedgerEntry, error) {
	if err := validateEntry(in.EntryType, in.Amount, in.Date); err != nil {
		return models.LedgerEntry{}, err
	}

	var created models.LedgerEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		category, err := find[models.BudgetCategory](tx, "category", in.CategoryID)
		if err != nil {
			return err
		}

		entry := models.LedgerEntry{
			CategoryID: in.CategoryID,
			EntryType:  in.EntryType,
			Amount:     in.Amount,
			What:       in.What,
			Where:      in.Where,
			Date:       in.Date,
			CreatedAt:  s.now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		place := ""
		if in.Where != nil && *in.Where != "" {
			place = " @ " + *in.Where
		}

		err = s.logChange(tx, change{
			budgetID:    category.BudgetID,
			kind:        models.ChangeEntryAdd,
			field:       "ledger_entries",
			newValue:    ptr(money(in.Amount)),
			description: fmt.Sprintf("Added %s $%s to %s (%s%s)", in.EntryType, money(in.Amount), category.Name, in.What, place),
		})
		if err != nil {
			return err
		}

		if err := s.touch(tx, category.BudgetID); err != nil {
			return err
		}

		created, err = find[models.LedgerEntry](tx, "entry", entry.ID)
		return err
	})

	return created, err
}

// liveEntry loads an entry that has not been soft-deleted.
func liveEntry(tx *gorm.DB, id uint64) (models.LedgerEntry, error) {
	entry, err := find[models.LedgerEntry](tx, "entry", id)
	if err != nil {
		return entry, err
	}

	if entry.Deleted() {
		return entry, models.NotFound("entry", id)
	}

	return entry, nil
}

// UpdateEntry changes an entry in place.
func (s *Store) UpdateEntry(ctx context.Context, in EntryUpdate) (models.LedgerEntry, error) {
	if err := validateEntry(in.EntryType, in.Amount, in.Date); err != nil {
		return models.LedgerEntry{}, err
	}

	var updated models.LedgerEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		entry, err := liveEntry(tx, in.EntryID)
		if err != nil {
			return err
		}

		category, err := find[models.BudgetCategory](tx, "category", entry.CategoryID)
		if err != nil {
			return err
		}

		err = tx.Model(&entry).Updates(map[string]any{
			"entry_type":  in.EntryType,
			"amount":      in.Amount,
			"description": in.What,
			"place":       in.Where,
			"date":        in.Date,
		}).Error
		if err != nil {
			return err
		}

		err = s.logChange(tx, change{
			budgetID:    category.BudgetID,
			kind:        models.ChangeEntryUpdate,
			field:       "amount",
			oldValue:    ptr(money(entry.Amount)),
			newValue:    ptr(money(in.Amount)),
			description: fmt.Sprintf("Updated entry %d in %s", entry.ID, category.Name),
		})
		if err != nil {
			return err
		}

		if err := s.touch(tx, category.BudgetID); err != nil {
			return err
		}

		updated, err = find[models.LedgerEntry](tx, "entry", entry.ID)
		return err
	})

	return updated, err
}

// SoftDeleteEntry marks an entry as deleted. The entry no longer shows up
// in ledgers or aggregates but can still be read by its ID.
func (s *Store) SoftDeleteEntry(ctx context.Context, id uint64) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		entry, err := liveEntry(tx, id)
		if err != nil {
			return err
		}

		result := tx.Model(&models.LedgerEntry{}).
			Where("entry_id = ? AND deleted_at IS NULL", id).
			Update("deleted_at", s.now())
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return models.NotFound("entry", id)
		}

		category, err := find[models.BudgetCategory](tx, "category", entry.CategoryID)
		if err != nil {
			return err
		}

		err = s.logChange(tx, change{
			budgetID:    category.BudgetID,
			kind:        models.ChangeEntryDelete,
			field:       "deleted_at",
			oldValue:    ptr(money(entry.Amount)),
			description: fmt.Sprintf("Deleted entry %d from %s", entry.ID, category.Name),
		})
		if err != nil {
			return err
		}

		return s.touch(tx, category.BudgetID)
	})
}
