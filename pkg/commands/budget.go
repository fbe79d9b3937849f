package commands

import (
	"context"
	"encoding/json"

	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// CreateBudgetPayload is the input of create_monthly_budget.
type CreateBudgetPayload struct {
	Month       int             `json:"month" validate:"min=1,max=12" example:"3"`
	Year        int             `json:"year" validate:"min=1" example:"2024"`
	TotalIncome decimal.Decimal `json:"totalIncome" example:"5200"`
	Name        *string         `json:"name" example:"Spring"`
}

// BudgetPayload selects a budget by its ID.
type BudgetPayload struct {
	BudgetID uint64 `json:"budgetId" validate:"required" example:"1"`
}

// ListSortedPayload is the input of list_monthly_budgets_sorted.
type ListSortedPayload struct {
	Criteria  models.SortCriteria `json:"criteria" example:"budget_date"`
	Ascending bool                `json:"ascending"`
}

// UpdateTitlePayload renames a budget.
type UpdateTitlePayload struct {
	BudgetID uint64 `json:"budgetId" validate:"required" example:"1"`
	Title    string `json:"title" example:"Vacation month"`
}

func registerBudgetCommands(r *Registry) {
	r.register("create_monthly_budget", handle(createBudget))
	r.register("get_monthly_budget", handle(getBudget))
	r.register("list_monthly_budgets", listBudgets)
	r.register("list_monthly_budgets_sorted", handle(listBudgetsSorted))
	r.register("finish_monthly_budget", handle(finishBudget))
	r.register("unfinish_monthly_budget", handle(unfinishBudget))
	r.register("update_budget_title", handle(updateBudgetTitle))
	r.register("delete_monthly_budget", handle(deleteBudget))
	r.register("get_budget_change_history", handle(budgetHistory))
}

// createBudget returns the ID of the new budget.
func createBudget(ctx context.Context, s *ledger.Store, p CreateBudgetPayload) (any, error) {
	budget, err := s.CreateBudget(ctx, ledger.NewBudget{
		Month:       p.Month,
		Year:        p.Year,
		TotalIncome: p.TotalIncome,
		Name:        p.Name,
	})
	if err != nil {
		return nil, err
	}
	return budget.ID, nil
}

func getBudget(ctx context.Context, s *ledger.Store, p BudgetPayload) (any, error) {
	return s.Budget(ctx, p.BudgetID)
}

func listBudgets(ctx context.Context, s *ledger.Store, _ json.RawMessage) (any, error) {
	return s.ListBudgets(ctx)
}

func listBudgetsSorted(ctx context.Context, s *ledger.Store, p ListSortedPayload) (any, error) {
	return s.ListBudgetsSorted(ctx, p.Criteria, p.Ascending)
}

func finishBudget(ctx context.Context, s *ledger.Store, p BudgetPayload) (any, error) {
	return s.FinishBudget(ctx, p.BudgetID)
}

func unfinishBudget(ctx context.Context, s *ledger.Store, p BudgetPayload) (any, error) {
	return s.UnfinishBudget(ctx, p.BudgetID)
}

func updateBudgetTitle(ctx context.Context, s *ledger.Store, p UpdateTitlePayload) (any, error) {
	return s.RenameBudget(ctx, p.BudgetID, p.Title)
}

func deleteBudget(ctx context.Context, s *ledger.Store, p BudgetPayload) (any, error) {
	return nil, s.DeleteBudget(ctx, p.BudgetID)
}

func budgetHistory(ctx context.Context, s *ledger.Store, p BudgetPayload) (any, error) {
	return s.History(ctx, p.BudgetID)
}
