package models

import (
	"time"

	"gorm.io/gorm"
)

// GlobalCategory is an entry of the category catalog templates draw from.
type GlobalCategory struct {
	ID          uint64    `json:"globalCategoryId" gorm:"column:global_category_id;primaryKey" example:"1"`
	Name        string    `json:"name" example:"Food & Dining"`
	Description *string   `json:"description" example:"Groceries, restaurants, and food expenses"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-01T00:00:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2024-01-01T00:00:00Z"`
}

func (GlobalCategory) TableName() string {
	return "global_categories"
}

func (c *GlobalCategory) AfterFind(_ *gorm.DB) error {
	utc(&c.CreatedAt)
	utc(&c.UpdatedAt)
	return nil
}

// DefaultGlobalCategories is the catalog seeded into every database.
var DefaultGlobalCategories = []struct {
	Name        string
	Description string
}{
	{"Food & Dining", "Groceries, restaurants, and food expenses"},
	{"Transportation", "Gas, public transport, car maintenance"},
	{"Housing", "Rent, mortgage, utilities, home maintenance"},
	{"Healthcare", "Medical expenses, insurance, medications"},
	{"Entertainment", "Movies, games, hobbies, subscriptions"},
	{"Shopping", "Clothing, personal items, general shopping"},
	{"Education", "Books, courses, training, school supplies"},
	{"Savings", "Emergency fund, retirement, investments"},
	{"Insurance", "Life, health, car, home insurance"},
	{"Debt Payment", "Credit cards, loans, other debt payments"},
}
