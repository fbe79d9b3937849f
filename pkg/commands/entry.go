package commands

import (
	"context"

	"github.com/budgetbook/backend/internal/types"
	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// LedgerPayload selects a page of a category ledger.
type LedgerPayload struct {
	CategoryID uint64            `json:"categoryId" validate:"required" example:"3"`
	Limit      int               `json:"limit" validate:"min=0" example:"50"`
	Offset     int               `json:"offset" validate:"min=0" example:"0"`
	Sort       models.LedgerSort `json:"sort" validate:"ledger_sort" example:"date_desc"`
}

// EntryPayload selects a ledger entry by its ID.
type EntryPayload struct {
	EntryID uint64 `json:"entryId" validate:"required" example:"12"`
}

// AddEntryPayload is the input of add_category_entry.
type AddEntryPayload struct {
	CategoryID uint64           `json:"categoryId" validate:"required" example:"3"`
	EntryType  models.EntryType `json:"entryType" validate:"entry_type" example:"expense"`
	What       string           `json:"what" example:"Groceries"`
	Where      *string          `json:"where" example:"Market"`
	Amount     decimal.Decimal  `json:"amount" example:"12.5"`
	Date       string           `json:"date" validate:"required,iso_date" example:"2024-03-15"`
}

// UpdateEntryPayload replaces the editable fields of an entry.
type UpdateEntryPayload struct {
	EntryID   uint64           `json:"entryId" validate:"required" example:"12"`
	EntryType models.EntryType `json:"entryType" validate:"entry_type" example:"expense"`
	What      string           `json:"what" example:"Groceries"`
	Where     *string          `json:"where" example:"Market"`
	Amount    decimal.Decimal  `json:"amount" example:"14"`
	Date      string           `json:"date" validate:"required,iso_date" example:"2024-03-16"`
}

func registerEntryCommands(r *Registry) {
	r.register("get_category_ledger", handle(categoryLedger))
	r.register("get_category_entry", handle(getEntry))
	r.register("add_category_entry", handle(addEntry))
	r.register("update_category_entry", handle(updateEntry))
	r.register("soft_delete_category_entry", handle(softDeleteEntry))
}

func categoryLedger(ctx context.Context, s *ledger.Store, p LedgerPayload) (any, error) {
	return s.Ledger(ctx, p.CategoryID, ledger.LedgerQuery{
		Limit:  p.Limit,
		Offset: p.Offset,
		Sort:   p.Sort,
	})
}

func getEntry(ctx context.Context, s *ledger.Store, p EntryPayload) (any, error) {
	return s.Entry(ctx, p.EntryID)
}

func addEntry(ctx context.Context, s *ledger.Store, p AddEntryPayload) (any, error) {
	date, err := types.ParseDate(p.Date)
	if err != nil {
		return nil, models.Invalid("%v", err)
	}

	return s.AddEntry(ctx, ledger.NewEntry{
		CategoryID: p.CategoryID,
		EntryType:  p.EntryType,
		Amount:     p.Amount,
		What:       p.What,
		Where:      p.Where,
		Date:       date,
	})
}

func updateEntry(ctx context.Context, s *ledger.Store, p UpdateEntryPayload) (any, error) {
	date, err := types.ParseDate(p.Date)
	if err != nil {
		return nil, models.Invalid("%v", err)
	}

	return s.UpdateEntry(ctx, ledger.EntryUpdate{
		EntryID:   p.EntryID,
		EntryType: p.EntryType,
		Amount:    p.Amount,
		What:      p.What,
		Where:     p.Where,
		Date:      date,
	})
}

func softDeleteEntry(ctx context.Context, s *ledger.Store, p EntryPayload) (any, error) {
	return nil, s.SoftDeleteEntry(ctx, p.EntryID)
}
