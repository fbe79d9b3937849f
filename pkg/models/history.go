package models

import (
	"time"

	"gorm.io/gorm"
)

// ChangeHistoryEntry is one row of the append-only audit trail of a budget.
type ChangeHistoryEntry struct {
	ID          uint64     `json:"changeId" gorm:"column:change_id;primaryKey" example:"41"`
	BudgetID    uint64     `json:"budgetId" example:"3"`
	ChangeType  ChangeType `json:"changeType" example:"allocation_change"`
	FieldName   *string    `json:"fieldName" example:"allocated_amount"`
	OldValue    *string    `json:"oldValue" example:"400.00"`
	NewValue    *string    `json:"newValue" example:"450.00"`
	Description string     `json:"changeDescription" gorm:"column:change_description" example:"Updated allocated for Groceries $400.00 → $450.00"`
	ChangedAt   time.Time  `json:"changedAt" example:"2024-03-17T20:14:01.048145Z"`
}

func (ChangeHistoryEntry) TableName() string {
	return "budget_change_history"
}

func (h *ChangeHistoryEntry) AfterFind(_ *gorm.DB) error {
	utc(&h.ChangedAt)
	return nil
}
