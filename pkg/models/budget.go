package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyBudget is the budget for one calendar month.
type MonthlyBudget struct {
	ID              uint64          `json:"budgetId" gorm:"column:budget_id;primaryKey" example:"3"`
	Month           int             `json:"month" example:"3" minimum:"1" maximum:"12"`
	Year            int             `json:"year" example:"2024"`
	TotalIncome     decimal.Decimal `json:"totalIncome" gorm:"type:DECIMAL(20,8)" example:"5200"`
	Name            *string         `json:"name" example:"Spring savings push"`                        // Optional title, overrides the month name when set
	TemplateID      *uint64         `json:"templateId" example:"2"`                                    // Template that was last applied
	CreatedAt       time.Time       `json:"createdAt" example:"2024-03-01T09:12:44.491514Z"`
	LastEdited      time.Time       `json:"lastEdited" example:"2024-03-17T20:14:01.048145Z"`          // Touched by every change to the budget or its contents
	FinishedAt      *time.Time      `json:"finishedAt" example:"2024-04-01T08:00:00Z"`                 // null while the budget is open
	FirstFinishedAt *time.Time      `json:"firstFinishedAt" example:"2024-04-01T08:00:00Z"`            // Set once, never cleared
	DisplayName     string          `json:"displayName" gorm:"-" example:"March 2024"`                 // name if set, otherwise "{Month} {Year}"
}

func (MonthlyBudget) TableName() string {
	return "monthly_budgets"
}

// Finished reports if the budget is currently closed.
func (b MonthlyBudget) Finished() bool {
	return b.FinishedAt != nil
}

// AfterFind sets the display name and normalizes timestamps.
func (b *MonthlyBudget) AfterFind(_ *gorm.DB) error {
	utc(&b.CreatedAt)
	utc(&b.LastEdited)
	utc(b.FinishedAt)
	utc(b.FirstFinishedAt)
	b.DisplayName = DisplayName(b.Name, b.Month, b.Year)
	return nil
}

// AfterCreate sets the display name for the newly created budget.
func (b *MonthlyBudget) AfterCreate(_ *gorm.DB) error {
	b.DisplayName = DisplayName(b.Name, b.Month, b.Year)
	return nil
}

// DisplayName is the title shown for a budget. An empty or missing name
// falls back to the English month name and the year.
func DisplayName(name *string, month, year int) string {
	if name != nil && *name != "" {
		return *name
	}

	if month < 1 || month > 12 {
		return fmt.Sprintf("Month %d %d", month, year)
	}

	return fmt.Sprintf("%s %d", time.Month(month), year)
}
