package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetTemplate is a reusable set of category allocations.
type BudgetTemplate struct {
	ID          uint64    `json:"templateId" gorm:"column:template_id;primaryKey" example:"2"`
	Name        string    `json:"name" example:"Default month"`
	Description *string   `json:"description" example:"What a normal month looks like"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-02T10:00:00Z"`
	UpdatedAt   time.Time `json:"updatedAt" example:"2024-02-11T16:30:00Z"`
}

func (BudgetTemplate) TableName() string {
	return "budget_templates"
}

func (t *BudgetTemplate) AfterFind(_ *gorm.DB) error {
	utc(&t.CreatedAt)
	utc(&t.UpdatedAt)
	return nil
}

// TemplateCategoryItem is one category allocation of a template.
type TemplateCategoryItem struct {
	ID               uint64          `json:"templateCategoryId" gorm:"column:template_category_id;primaryKey" example:"7"`
	TemplateID       uint64          `json:"templateId" example:"2"`
	GlobalCategoryID uint64          `json:"globalCategoryId" example:"1"`
	AllocatedAmount  decimal.Decimal `json:"allocatedAmount" gorm:"type:DECIMAL(20,8)" example:"450"`
	CategoryType     CategoryType    `json:"categoryType" example:"expense" enums:"expense,savings"`
	SortOrder        int             `json:"sortOrder" example:"0"`
	CreatedAt        time.Time       `json:"createdAt" example:"2024-01-02T10:00:00Z"`
}

func (TemplateCategoryItem) TableName() string {
	return "template_categories"
}

// TemplateSummary is a template with the count and sum of its items.
type TemplateSummary struct {
	BudgetTemplate
	CategoryCount int64           `json:"categoryCount" example:"6"`
	TotalAmount   decimal.Decimal `json:"totalAmount" example:"3150"`
}

// TemplateCategoryDetail is a template item joined with its catalog name.
type TemplateCategoryDetail struct {
	TemplateCategoryItem
	CategoryName string `json:"categoryName" example:"Food & Dining"`
}

// TemplateWithCategories is a template with its ordered items.
type TemplateWithCategories struct {
	Template   BudgetTemplate           `json:"template"`
	Categories []TemplateCategoryDetail `json:"categories"`
}
