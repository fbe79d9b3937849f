package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewCategory is the input for AddCategory.
type NewCategory struct {
	BudgetID         uint64
	Name             string
	AllocatedAmount  decimal.Decimal
	CategoryType     models.CategoryType // defaults to expense
	GlobalCategoryID *uint64
}

// categoryStatsQuery aggregates the live entries of every category of a
// budget. Adjustments are counted, but contribute to neither total.
const categoryStatsQuery = `
SELECT
	c.category_id,
	c.budget_id,
	c.category_name,
	c.allocated_amount,
	c.category_type,
	c.global_category_id,
	c.created_at,
	COALESCE(SUM(CASE WHEN e.entry_type = 'income' THEN e.amount ELSE 0 END), 0) AS income_total,
	COALESCE(SUM(CASE WHEN e.entry_type = 'expense' THEN e.amount ELSE 0 END), 0) AS expense_total,
	COUNT(e.entry_id) AS entries_count,
	MAX(e.date) AS last_activity_at
FROM budget_categories c
LEFT JOIN ledger_entries e ON e.category_id = c.category_id AND e.deleted_at IS NULL
WHERE c.budget_id = ?
GROUP BY c.category_id
ORDER BY c.created_at ASC, c.category_id ASC`

// amountScale is the number of decimal places money is stored with.
const amountScale = 8

// CategoriesWithStats returns all categories of a budget with the
// aggregates of their entries, in creation order.
func (s *Store) CategoriesWithStats(ctx context.Context, budgetID uint64) ([]models.CategoryStats, error) {
	db := s.conn(ctx)

	if _, err := find[models.MonthlyBudget](db, "budget", budgetID); err != nil {
		return nil, err
	}

	stats := []models.CategoryStats{}
	if err := db.Raw(categoryStatsQuery, budgetID).Scan(&stats).Error; err != nil {
		return nil, err
	}

	for i := range stats {
		c := &stats[i]
		c.CreatedAt = c.CreatedAt.In(time.UTC)

		// SQLite sums in floating point
		c.IncomeTotal = c.IncomeTotal.Round(amountScale)
		c.ExpenseTotal = c.ExpenseTotal.Round(amountScale)
		c.AllocatedAmount = c.AllocatedAmount.Round(amountScale)

		c.NetAmount = c.IncomeTotal.Sub(c.ExpenseTotal)
		c.RemainingAmount = c.AllocatedAmount.Add(c.NetAmount)
	}

	return stats, nil
}

// Category returns a single budget category.
func (s *Store) Category(ctx context.Context, id uint64) (models.BudgetCategory, error) {
	return find[models.BudgetCategory](s.conn(ctx), "category", id)
}

// AddCategory adds a category to a budget.
func (s *Store) AddCategory(ctx context.Context, in NewCategory) (models.BudgetCategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return models.BudgetCategory{}, models.Invalid("category name must not be empty")
	}

	in.CategoryType = in.CategoryType.OrDefault()
	if !in.CategoryType.Valid() {
		return models.BudgetCategory{}, models.Invalid("unknown category type %q", in.CategoryType)
	}

	category := models.BudgetCategory{
		BudgetID:         in.BudgetID,
		Name:             in.Name,
		AllocatedAmount:  in.AllocatedAmount,
		CategoryType:     in.CategoryType,
		GlobalCategoryID: in.GlobalCategoryID,
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := find[models.MonthlyBudget](tx, "budget", in.BudgetID); err != nil {
			return err
		}

		if in.GlobalCategoryID != nil {
			if _, err := find[models.GlobalCategory](tx, "global category", *in.GlobalCategoryID); err != nil {
				return err
			}
		}

		category.CreatedAt = s.now()
		if err := tx.Create(&category).Error; err != nil {
			return err
		}

		err := s.logChange(tx, change{
			budgetID:    in.BudgetID,
			kind:        models.ChangeCategoryAdd,
			field:       "budget_categories",
			newValue:    ptr(category.Name),
			description: fmt.Sprintf("Added category '%s' with allocated $%s", category.Name, money(category.AllocatedAmount)),
		})
		if err != nil {
			return err
		}

		return s.touch(tx, in.BudgetID)
	})
	if err != nil {
		return models.BudgetCategory{}, err
	}

	return category, nil
}

// SetAllocatedAmount changes the amount allocated to a category.
func (s *Store) SetAllocatedAmount(ctx context.Context, categoryID uint64, amount decimal.Decimal) (models.BudgetCategory, error) {
	var updated models.BudgetCategory

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		category, err := find[models.BudgetCategory](tx, "category", categoryID)
		if err != nil {
			return err
		}

		if err := tx.Model(&category).Update("allocated_amount", amount).Error; err != nil {
			return err
		}

		old, updatedAmount := money(category.AllocatedAmount), money(amount)
		err = s.logChange(tx, change{
			budgetID:    category.BudgetID,
			kind:        models.ChangeAllocation,
			field:       "allocated_amount",
			oldValue:    ptr(old),
			newValue:    ptr(updatedAmount),
			description: fmt.Sprintf("Updated allocated for %s $%s → $%s", category.Name, old, updatedAmount),
		})
		if err != nil {
			return err
		}

		if err := s.touch(tx, category.BudgetID); err != nil {
			return err
		}

		updated, err = find[models.BudgetCategory](tx, "category", categoryID)
		return err
	})

	return updated, err
}
