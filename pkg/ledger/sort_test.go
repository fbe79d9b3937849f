package ledger_test

import (
	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createNamedBudget(month, year int, income int64, name string) models.MonthlyBudget {
	in := ledger.NewBudget{
		Month:       month,
		Year:        year,
		TotalIncome: decimal.NewFromInt(income),
	}
	if name != "" {
		in.Name = &name
	}

	budget, err := suite.store.CreateBudget(suite.ctx, in)
	suite.Require().Nil(err)
	return budget
}

func (suite *TestSuiteStandard) sorted(criteria models.SortCriteria, ascending bool) []uint64 {
	budgets, err := suite.store.ListBudgetsSorted(suite.ctx, criteria, ascending)
	suite.Require().Nil(err)
	return budgetIDs(budgets)
}

func (suite *TestSuiteStandard) TestSortByName() {
	apr := suite.createNamedBudget(4, 2024, 1000, "")
	mar := suite.createNamedBudget(3, 2024, 1000, "")
	named := suite.createNamedBudget(1, 2025, 1000, "may be later")
	upper := suite.createNamedBudget(2, 2025, 1000, "Zebra")

	// "April 2024" < "March 2024" < "may be later" < "Zebra"
	suite.Assert().Equal([]uint64{apr.ID, mar.ID, named.ID, upper.ID}, suite.sorted(models.SortByName, true))
	suite.Assert().Equal([]uint64{upper.ID, named.ID, mar.ID, apr.ID}, suite.sorted(models.SortByName, false))
}

func (suite *TestSuiteStandard) TestSortByNameFallbackInterleaves() {
	after := suite.createNamedBudget(1, 2024, 1000, "Maze")
	fallback := suite.createNamedBudget(3, 2024, 1000, "")
	before := suite.createNamedBudget(2, 2024, 1000, "mango")

	// The unnamed budget sorts as "March 2024"
	suite.Assert().Equal([]uint64{before.ID, fallback.ID, after.ID}, suite.sorted(models.SortByName, true))
}

func (suite *TestSuiteStandard) TestSortByBudgetDate() {
	b2 := suite.createNamedBudget(2, 2024, 1000, "")
	b1 := suite.createNamedBudget(12, 2023, 1000, "")
	b3 := suite.createNamedBudget(11, 2024, 1000, "")

	suite.Assert().Equal([]uint64{b1.ID, b2.ID, b3.ID}, suite.sorted(models.SortByBudgetDate, true))
	suite.Assert().Equal([]uint64{b3.ID, b2.ID, b1.ID}, suite.sorted(models.SortByBudgetDate, false))
}

func (suite *TestSuiteStandard) TestSortByIncome() {
	high := suite.createNamedBudget(1, 2024, 6000, "")
	low := suite.createNamedBudget(2, 2024, 1000, "")
	mid := suite.createNamedBudget(3, 2024, 3000, "")

	suite.Assert().Equal([]uint64{low.ID, mid.ID, high.ID}, suite.sorted(models.SortByIncome, true))
	suite.Assert().Equal([]uint64{high.ID, mid.ID, low.ID}, suite.sorted(models.SortByIncome, false))
}

func (suite *TestSuiteStandard) TestSortByCreatedDate() {
	first := suite.createNamedBudget(5, 2024, 1000, "")
	second := suite.createNamedBudget(1, 2024, 1000, "")

	suite.Assert().Equal([]uint64{first.ID, second.ID}, suite.sorted(models.SortByCreatedDate, true))
	suite.Assert().Equal([]uint64{second.ID, first.ID}, suite.sorted(models.SortByCreatedDate, false))
}

func (suite *TestSuiteStandard) TestSortByFinishedDate() {
	open := suite.createNamedBudget(1, 2024, 1000, "")
	early := suite.createNamedBudget(2, 2024, 1000, "")
	late := suite.createNamedBudget(3, 2024, 1000, "")

	_, err := suite.store.FinishBudget(suite.ctx, early.ID)
	suite.Require().Nil(err)
	_, err = suite.store.FinishBudget(suite.ctx, late.ID)
	suite.Require().Nil(err)

	// Open budgets first when ascending, last when descending
	suite.Assert().Equal([]uint64{open.ID, early.ID, late.ID}, suite.sorted(models.SortByFinishedDate, true))
	suite.Assert().Equal([]uint64{late.ID, early.ID, open.ID}, suite.sorted(models.SortByFinishedDate, false))
}

func (suite *TestSuiteStandard) TestSortByLastEdited() {
	a := suite.createNamedBudget(1, 2024, 1000, "")
	b := suite.createNamedBudget(2, 2024, 1000, "")

	_, err := suite.store.RenameBudget(suite.ctx, a.ID, "Touched")
	suite.Require().Nil(err)

	suite.Assert().Equal([]uint64{b.ID, a.ID}, suite.sorted(models.SortByLastEdited, true))
	suite.Assert().Equal([]uint64{a.ID, b.ID}, suite.sorted(models.SortByLastEdited, false))
}

func (suite *TestSuiteStandard) TestSortUnknownCriteria() {
	a := suite.createNamedBudget(1, 2024, 1000, "")
	b := suite.createNamedBudget(2, 2024, 1000, "")

	// Falls back to last edited, newest first, even when asked for ascending
	suite.Assert().Equal([]uint64{b.ID, a.ID}, suite.sorted(models.SortCriteria("colour"), true))
}

func (suite *TestSuiteStandard) TestSortTiesKeepIDOrder() {
	a := suite.createNamedBudget(1, 2024, 1000, "Same")
	b := suite.createNamedBudget(2, 2024, 1000, "same")

	suite.Assert().Equal([]uint64{a.ID, b.ID}, suite.sorted(models.SortByName, true))
	suite.Assert().Equal([]uint64{a.ID, b.ID}, suite.sorted(models.SortByIncome, false))
}
