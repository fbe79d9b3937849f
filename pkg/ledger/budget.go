package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewBudget is the input for CreateBudget.
type NewBudget struct {
	Month       int
	Year        int
	TotalIncome decimal.Decimal
	Name        *string
}

// CreateBudget creates the budget for a month. There can only be one
// budget per month and year.
func (s *Store) CreateBudget(ctx context.Context, in NewBudget) (models.MonthlyBudget, error) {
	if in.Month < 1 || in.Month > 12 {
		return models.MonthlyBudget{}, models.Invalid("month must be between 1 and 12, got %d", in.Month)
	}

	now := s.now()
	budget := models.MonthlyBudget{
		Month:       in.Month,
		Year:        in.Year,
		TotalIncome: in.TotalIncome,
		Name:        in.Name,
		CreatedAt:   now,
		LastEdited:  now,
	}

	err := s.conn(ctx).Create(&budget).Error
	if errors.Is(err, models.ErrBudgetPeriodNotUnique) {
		return models.MonthlyBudget{}, &models.ConflictError{
			Message: fmt.Sprintf("A budget for %d/%d already exists. Please choose a different month/year or edit the existing budget.", in.Month, in.Year),
		}
	}
	if err != nil {
		return models.MonthlyBudget{}, err
	}

	log.Debug().Uint64("budget_id", budget.ID).Int("month", budget.Month).Int("year", budget.Year).Msg("budget created")
	return budget, nil
}

// Budget returns a single budget.
func (s *Store) Budget(ctx context.Context, id uint64) (models.MonthlyBudget, error) {
	return find[models.MonthlyBudget](s.conn(ctx), "budget", id)
}

// ListBudgets returns all budgets, most recently edited first.
func (s *Store) ListBudgets(ctx context.Context) ([]models.MonthlyBudget, error) {
	budgets := []models.MonthlyBudget{}

	err := s.conn(ctx).Order("last_edited DESC, budget_id ASC").Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

// ListBudgetsSorted returns all budgets ordered by criteria. Unknown
// criteria order by last edit, newest first, regardless of ascending.
func (s *Store) ListBudgetsSorted(ctx context.Context, criteria models.SortCriteria, ascending bool) ([]models.MonthlyBudget, error) {
	budgets := []models.MonthlyBudget{}

	err := s.conn(ctx).Order("budget_id ASC").Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	sortBudgets(budgets, criteria, ascending)
	return budgets, nil
}

// FinishBudget closes a budget. The first time a budget is finished is
// kept in first_finished_at.
func (s *Store) FinishBudget(ctx context.Context, id uint64) (models.MonthlyBudget, error) {
	var finished models.MonthlyBudget

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		budget, err := find[models.MonthlyBudget](tx, "budget", id)
		if err != nil {
			return err
		}

		now := s.now()
		updates := map[string]any{
			"finished_at": now,
			"last_edited": now,
		}

		description := "Budget marked as finished again after being reopened"
		if budget.FirstFinishedAt == nil {
			updates["first_finished_at"] = now
			description = "Budget marked as finished for the first time"
		}

		if err := tx.Model(&budget).Updates(updates).Error; err != nil {
			return err
		}

		err = s.logChange(tx, change{
			budgetID:    id,
			kind:        models.ChangeStatus,
			field:       "finished_at",
			oldValue:    timestamp(budget.FinishedAt),
			newValue:    timestamp(&now),
			description: description,
		})
		if err != nil {
			return err
		}

		finished, err = find[models.MonthlyBudget](tx, "budget", id)
		return err
	})

	return finished, err
}

// UnfinishBudget reopens a budget for editing. first_finished_at is kept.
func (s *Store) UnfinishBudget(ctx context.Context, id uint64) (models.MonthlyBudget, error) {
	var reopened models.MonthlyBudget

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		budget, err := find[models.MonthlyBudget](tx, "budget", id)
		if err != nil {
			return err
		}

		err = tx.Model(&budget).Updates(map[string]any{
			"finished_at": nil,
			"last_edited": s.now(),
		}).Error
		if err != nil {
			return err
		}

		err = s.logChange(tx, change{
			budgetID:    id,
			kind:        models.ChangeStatus,
			field:       "finished_at",
			oldValue:    timestamp(budget.FinishedAt),
			newValue:    timestamp(nil),
			description: "Budget reopened for editing",
		})
		if err != nil {
			return err
		}

		reopened, err = find[models.MonthlyBudget](tx, "budget", id)
		return err
	})

	return reopened, err
}

// RenameBudget sets the title of a budget.
func (s *Store) RenameBudget(ctx context.Context, id uint64, title string) (models.MonthlyBudget, error) {
	var renamed models.MonthlyBudget

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		budget, err := find[models.MonthlyBudget](tx, "budget", id)
		if err != nil {
			return err
		}

		err = tx.Model(&budget).Updates(map[string]any{
			"name":        title,
			"last_edited": s.now(),
		}).Error
		if err != nil {
			return err
		}

		err = s.logChange(tx, change{
			budgetID:    id,
			kind:        models.ChangeTitle,
			field:       "name",
			oldValue:    budget.Name,
			newValue:    ptr(title),
			description: fmt.Sprintf("Budget title changed to '%s'", title),
		})
		if err != nil {
			return err
		}

		renamed, err = find[models.MonthlyBudget](tx, "budget", id)
		return err
	})

	return renamed, err
}

// DeleteBudget deletes a budget with all of its categories, entries and
// change history.
func (s *Store) DeleteBudget(ctx context.Context, id uint64) error {
	result := s.conn(ctx).Delete(&models.MonthlyBudget{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.NotFound("budget", id)
	}

	log.Debug().Uint64("budget_id", id).Msg("budget deleted")
	return nil
}
