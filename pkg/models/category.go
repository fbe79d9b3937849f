package models

import (
	"time"

	"github.com/budgetbook/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory is an allocation bucket inside a monthly budget.
type BudgetCategory struct {
	ID               uint64          `json:"categoryId" gorm:"column:category_id;primaryKey" example:"12"`
	BudgetID         uint64          `json:"budgetId" example:"3"`
	Name             string          `json:"categoryName" gorm:"column:category_name" example:"Groceries"`
	AllocatedAmount  decimal.Decimal `json:"allocatedAmount" gorm:"type:DECIMAL(20,8)" example:"450"` // May be negative
	CategoryType     CategoryType    `json:"categoryType" example:"expense" enums:"expense,savings"`
	GlobalCategoryID *uint64         `json:"globalCategoryId" example:"1"` // Catalog entry the category was created from, if any
	CreatedAt        time.Time       `json:"createdAt" example:"2024-03-01T09:12:44.491514Z"`
}

func (BudgetCategory) TableName() string {
	return "budget_categories"
}

func (c *BudgetCategory) AfterFind(_ *gorm.DB) error {
	utc(&c.CreatedAt)
	return nil
}

// CategoryStats is a category with the aggregates of its live entries.
type CategoryStats struct {
	BudgetCategory
	IncomeTotal     decimal.Decimal `json:"incomeTotal" example:"0"`
	ExpenseTotal    decimal.Decimal `json:"expenseTotal" example:"312.45"`
	NetAmount       decimal.Decimal `json:"netAmount" gorm:"-" example:"-312.45"`      // incomeTotal - expenseTotal, adjustments count as 0
	RemainingAmount decimal.Decimal `json:"remainingAmount" gorm:"-" example:"137.55"` // allocatedAmount + netAmount
	EntriesCount    int64           `json:"entriesCount" example:"14"`
	LastActivityAt  *types.Date     `json:"lastActivityAt" swaggertype:"primitive,string" example:"2024-03-17"` // Latest entry date, null without entries
}
