package ledger_test

import (
	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestHistoryNewestFirst() {
	budget := suite.createBudget(1, 2024)
	category := suite.createCategory(budget.ID, "Food", 200)
	entry := suite.addEntry(category.ID, models.EntryTypeExpense, "10", mustDate("2024-01-05"))
	_, err := suite.store.SetAllocatedAmount(suite.ctx, category.ID, decimal.NewFromInt(250))
	suite.Require().Nil(err)
	suite.Require().Nil(suite.store.SoftDeleteEntry(suite.ctx, entry.ID))

	history := suite.history(budget.ID)
	suite.Require().Len(history, 4)

	kinds := make([]models.ChangeType, 0, len(history))
	for _, h := range history {
		kinds = append(kinds, h.ChangeType)
		suite.Assert().Equal(budget.ID, h.BudgetID)
	}
	suite.Assert().Equal([]models.ChangeType{
		models.ChangeEntryDelete,
		models.ChangeAllocation,
		models.ChangeEntryAdd,
		models.ChangeCategoryAdd,
	}, kinds)

	for i := 1; i < len(history); i++ {
		suite.Assert().False(history[i].ChangedAt.After(history[i-1].ChangedAt))
	}
}

func (suite *TestSuiteStandard) TestHistoryIsPerBudget() {
	a := suite.createBudget(1, 2024)
	b := suite.createBudget(2, 2024)
	suite.createCategory(a.ID, "Only in A", 1)

	suite.Assert().Len(suite.history(a.ID), 1)
	suite.Assert().Len(suite.history(b.ID), 0)
}

func (suite *TestSuiteStandard) TestCreateBudgetWritesNoHistory() {
	budget, err := suite.store.CreateBudget(suite.ctx, ledger.NewBudget{Month: 11, Year: 2024, TotalIncome: decimal.NewFromInt(1)})
	suite.Require().Nil(err)

	history, err := suite.store.History(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().NotNil(history)
	suite.Assert().Len(history, 0)
}

func (suite *TestSuiteStandard) TestMutationRolledBackWhenHistoryFails() {
	budget := suite.createBudget(6, 2024)
	category := suite.createCategory(budget.ID, "Groceries", 400)
	template := suite.createTemplate("Lean", ledger.TemplateItemInput{
		GlobalCategoryID: suite.globalCategoryID("Housing"),
		AllocatedAmount:  decimal.NewFromInt(1200),
	})

	before, err := suite.store.Budget(suite.ctx, budget.ID)
	suite.Require().Nil(err)

	suite.Require().Nil(suite.db.Exec("DROP TABLE budget_change_history").Error)

	_, err = suite.store.AddEntry(suite.ctx, ledger.NewEntry{
		CategoryID: category.ID,
		EntryType:  models.EntryTypeExpense,
		Amount:     decimal.NewFromInt(25),
		What:       "Market",
		Date:       mustDate("2024-06-02"),
	})
	suite.Assert().ErrorIs(err, models.ErrStorage)

	_, err = suite.store.SetAllocatedAmount(suite.ctx, category.ID, decimal.NewFromInt(500))
	suite.Assert().ErrorIs(err, models.ErrStorage)

	_, err = suite.store.ApplyTemplate(suite.ctx, budget.ID, template.Template.ID)
	suite.Assert().ErrorIs(err, models.ErrStorage)

	var entries int64
	suite.Require().Nil(suite.db.Model(&models.LedgerEntry{}).Count(&entries).Error)
	suite.Assert().Equal(int64(0), entries, "The entry must not be stored")

	stored, err := suite.store.Category(suite.ctx, category.ID)
	suite.Require().Nil(err, "The category must survive the failed template application")
	suite.Assert().True(decimal.NewFromInt(400).Equal(stored.AllocatedAmount), "The allocation must not change")

	var categories int64
	suite.Require().Nil(suite.db.Model(&models.BudgetCategory{}).Where("budget_id = ?", budget.ID).Count(&categories).Error)
	suite.Assert().Equal(int64(1), categories)

	unchanged, err := suite.store.Budget(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().Nil(unchanged.TemplateID)
	suite.Assert().True(unchanged.LastEdited.Equal(before.LastEdited), "last_edited must not be touched")
}
