package ledger_test

import (
	"github.com/budgetbook/backend/internal/types"
	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCategoriesWithStatsEmpty() {
	budget := suite.createBudget(1, 2024)

	stats, err := suite.store.CategoriesWithStats(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().NotNil(stats)
	suite.Assert().Len(stats, 0)
}

func (suite *TestSuiteStandard) TestCategoriesWithStatsWithoutEntries() {
	budget := suite.createBudget(1, 2024)
	suite.createCategory(budget.ID, "Rent", 1500)

	stats, err := suite.store.CategoriesWithStats(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Require().Len(stats, 1)

	c := stats[0]
	suite.Assert().Equal("Rent", c.Name)
	suite.Assert().Equal(models.CategoryTypeExpense, c.CategoryType)
	suite.Assert().Zero(c.EntriesCount)
	suite.Assert().Nil(c.LastActivityAt)
	suite.Assert().True(c.NetAmount.IsZero())
	suite.Assert().True(decimal.NewFromInt(1500).Equal(c.RemainingAmount))
}

func (suite *TestSuiteStandard) TestCategoryAggregates() {
	budget := suite.createBudget(3, 2024)
	food := suite.createCategory(budget.ID, "Food", 400)
	side := suite.createCategory(budget.ID, "Side job", 0)

	suite.addEntry(food.ID, models.EntryTypeExpense, "100.10", mustDate("2024-03-02"))
	suite.addEntry(food.ID, models.EntryTypeExpense, "0.20", mustDate("2024-03-09"))
	suite.addEntry(food.ID, models.EntryTypeIncome, "30", mustDate("2024-03-05"))
	suite.addEntry(food.ID, models.EntryTypeAdjustment, "999", mustDate("2024-03-20"))
	deleted := suite.addEntry(food.ID, models.EntryTypeExpense, "50", mustDate("2024-03-25"))
	suite.Require().Nil(suite.store.SoftDeleteEntry(suite.ctx, deleted.ID))

	suite.addEntry(side.ID, models.EntryTypeIncome, "250.55", mustDate("2024-03-15"))

	stats, err := suite.store.CategoriesWithStats(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Require().Len(stats, 2)

	// Creation order
	suite.Assert().Equal(food.ID, stats[0].ID)
	suite.Assert().Equal(side.ID, stats[1].ID)

	f := stats[0]
	suite.Assert().Equal("30", f.IncomeTotal.String())
	suite.Assert().Equal("100.3", f.ExpenseTotal.String())
	suite.Assert().Equal("-70.3", f.NetAmount.String(), "adjustments must not count")
	suite.Assert().Equal("329.7", f.RemainingAmount.String())
	suite.Assert().Equal(int64(4), f.EntriesCount, "soft-deleted entries must not count")
	suite.Require().NotNil(f.LastActivityAt)
	suite.Assert().Equal(types.NewDate(2024, 3, 20), *f.LastActivityAt)

	s := stats[1]
	suite.Assert().Equal("250.55", s.NetAmount.String())
	suite.Assert().Equal("250.55", s.RemainingAmount.String())

	for _, c := range stats {
		suite.Assert().True(c.RemainingAmount.Equal(c.AllocatedAmount.Add(c.IncomeTotal).Sub(c.ExpenseTotal)), "remaining = allocated + income - expense for %s", c.Name)
	}
}

func (suite *TestSuiteStandard) TestCategoriesWithStatsUnknownBudget() {
	_, err := suite.store.CategoriesWithStats(suite.ctx, 42)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAddCategory() {
	budget := suite.createBudget(4, 2024)

	category, err := suite.store.AddCategory(suite.ctx, ledger.NewCategory{
		BudgetID:        budget.ID,
		Name:            "  Emergency fund ",
		AllocatedAmount: decimal.RequireFromString("250.5"),
		CategoryType:    models.CategoryTypeSavings,
	})
	suite.Require().Nil(err)
	suite.Assert().Equal("Emergency fund", category.Name)
	suite.Assert().Equal(models.CategoryTypeSavings, category.CategoryType)

	changes := suite.changesOfType(budget.ID, models.ChangeCategoryAdd)
	suite.Require().Len(changes, 1)
	suite.Assert().Equal("Added category 'Emergency fund' with allocated $250.50", changes[0].Description)
	suite.Assert().Equal("Emergency fund", *changes[0].NewValue)

	touched, err := suite.store.Budget(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().True(touched.LastEdited.After(budget.LastEdited))
}

func (suite *TestSuiteStandard) TestAddCategoryFromGlobalCategory() {
	budget := suite.createBudget(4, 2024)
	catalog, err := suite.store.GlobalCategories(suite.ctx, "Housing")
	suite.Require().Nil(err)
	suite.Require().Len(catalog, 1)

	category, err := suite.store.AddCategory(suite.ctx, ledger.NewCategory{
		BudgetID:         budget.ID,
		Name:             "Rent",
		GlobalCategoryID: &catalog[0].ID,
	})
	suite.Require().Nil(err)
	suite.Require().NotNil(category.GlobalCategoryID)
	suite.Assert().Equal(catalog[0].ID, *category.GlobalCategoryID)

	missing := uint64(4711)
	_, err = suite.store.AddCategory(suite.ctx, ledger.NewCategory{BudgetID: budget.ID, Name: "Ghost", GlobalCategoryID: &missing})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAddCategoryErrors() {
	budget := suite.createBudget(4, 2024)

	_, err := suite.store.AddCategory(suite.ctx, ledger.NewCategory{BudgetID: 999, Name: "Food"})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = suite.store.AddCategory(suite.ctx, ledger.NewCategory{BudgetID: budget.ID, Name: " "})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = suite.store.AddCategory(suite.ctx, ledger.NewCategory{BudgetID: budget.ID, Name: "Food", CategoryType: "income"})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	suite.Assert().Len(suite.history(budget.ID), 0, "Failed operations must not write history")
}

func (suite *TestSuiteStandard) TestSetAllocatedAmount() {
	budget := suite.createBudget(5, 2024)
	category := suite.createCategory(budget.ID, "Groceries", 400)

	updated, err := suite.store.SetAllocatedAmount(suite.ctx, category.ID, decimal.NewFromInt(450))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(450).Equal(updated.AllocatedAmount))

	changes := suite.changesOfType(budget.ID, models.ChangeAllocation)
	suite.Require().Len(changes, 1)
	suite.Assert().Equal("allocated_amount", *changes[0].FieldName)
	suite.Assert().Equal("400.00", *changes[0].OldValue)
	suite.Assert().Equal("450.00", *changes[0].NewValue)
	suite.Assert().Equal("Updated allocated for Groceries $400.00 → $450.00", changes[0].Description)

	// Negative allocations are allowed
	updated, err = suite.store.SetAllocatedAmount(suite.ctx, category.ID, decimal.NewFromInt(-20))
	suite.Require().Nil(err)
	suite.Assert().True(decimal.NewFromInt(-20).Equal(updated.AllocatedAmount))

	_, err = suite.store.SetAllocatedAmount(suite.ctx, 999, decimal.NewFromInt(1))
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
