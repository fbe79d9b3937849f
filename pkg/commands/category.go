package commands

import (
	"context"

	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// AddCategoryPayload is the input of add_budget_category.
type AddCategoryPayload struct {
	BudgetID         uint64              `json:"budgetId" validate:"required" example:"1"`
	Name             string              `json:"name" validate:"required" example:"Groceries"`
	AllocatedAmount  decimal.Decimal     `json:"allocatedAmount" example:"400"`
	CategoryType     models.CategoryType `json:"categoryType" validate:"category_type" example:"expense"`
	GlobalCategoryID *uint64             `json:"globalCategoryId" example:"1"`
}

// CategoryPayload selects a category by its ID.
type CategoryPayload struct {
	CategoryID uint64 `json:"categoryId" validate:"required" example:"3"`
}

// AllocatedAmountPayload sets the allocation of a category.
type AllocatedAmountPayload struct {
	CategoryID uint64          `json:"categoryId" validate:"required" example:"3"`
	Amount     decimal.Decimal `json:"amount" example:"450"`
}

func registerCategoryCommands(r *Registry) {
	r.register("get_budget_categories_with_stats", handle(categoriesWithStats))
	r.register("get_budget_category", handle(getCategory))
	r.register("add_budget_category", handle(addCategory))
	r.register("set_category_allocated_amount", handle(setAllocatedAmount))
}

func categoriesWithStats(ctx context.Context, s *ledger.Store, p BudgetPayload) (any, error) {
	return s.CategoriesWithStats(ctx, p.BudgetID)
}

func getCategory(ctx context.Context, s *ledger.Store, p CategoryPayload) (any, error) {
	return s.Category(ctx, p.CategoryID)
}

// addCategory returns the ID of the new category.
func addCategory(ctx context.Context, s *ledger.Store, p AddCategoryPayload) (any, error) {
	category, err := s.AddCategory(ctx, ledger.NewCategory{
		BudgetID:         p.BudgetID,
		Name:             p.Name,
		AllocatedAmount:  p.AllocatedAmount,
		CategoryType:     p.CategoryType,
		GlobalCategoryID: p.GlobalCategoryID,
	})
	if err != nil {
		return nil, err
	}
	return category.ID, nil
}

func setAllocatedAmount(ctx context.Context, s *ledger.Store, p AllocatedAmountPayload) (any, error) {
	return s.SetAllocatedAmount(ctx, p.CategoryID, p.Amount)
}
