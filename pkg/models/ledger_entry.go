package models

import (
	"time"

	"github.com/budgetbook/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerEntry is a single expense, income or adjustment booked on a category.
type LedgerEntry struct {
	ID         uint64          `json:"entryId" gorm:"column:entry_id;primaryKey" example:"88"`
	CategoryID uint64          `json:"categoryId" example:"12"`
	EntryType  EntryType       `json:"entryType" example:"expense" enums:"expense,income,adjustment"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"12.5"` // Always positive, the sign comes from the entry type
	What       string          `json:"what" gorm:"column:description" example:"Weekly groceries"`
	Where      *string         `json:"where" gorm:"column:place" example:"Farmers market"`
	Date       types.Date      `json:"date" swaggertype:"primitive,string" example:"2024-03-15"`
	CreatedAt  time.Time       `json:"createdAt" example:"2024-03-15T18:02:11.11731Z"`
	DeletedAt  *time.Time      `json:"deletedAt" example:"2024-03-16T07:44:00Z"` // Soft delete marker
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

func (e *LedgerEntry) AfterFind(_ *gorm.DB) error {
	utc(&e.CreatedAt)
	utc(e.DeletedAt)
	return nil
}

// Deleted reports if the entry has been soft-deleted.
func (e LedgerEntry) Deleted() bool {
	return e.DeletedAt != nil
}
