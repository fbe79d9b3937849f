package ledger_test

import (
	"time"

	"github.com/budgetbook/backend/internal/types"
	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/budgetbook/backend/test"
	"github.com/shopspring/decimal"
)

func mustDate(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (suite *TestSuiteStandard) TestAddEntry() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)
	where := "Market"

	entry, err := suite.store.AddEntry(suite.ctx, ledger.NewEntry{
		CategoryID: category.ID,
		EntryType:  models.EntryTypeExpense,
		Amount:     decimal.RequireFromString("12.5"),
		What:       "Groceries",
		Where:      &where,
		Date:       mustDate("2024-03-15"),
	})
	suite.Require().Nil(err)
	suite.Assert().NotZero(entry.ID)
	suite.Assert().Equal(category.ID, entry.CategoryID)
	suite.Assert().Equal("Groceries", entry.What)
	suite.Require().NotNil(entry.Where)
	suite.Assert().Equal("Market", *entry.Where)
	suite.Assert().Equal(types.NewDate(2024, 3, 15), entry.Date)
	suite.Assert().Nil(entry.DeletedAt)
	suite.Assert().WithinDuration(time.Now(), entry.CreatedAt, test.Tolerance)

	changes := suite.changesOfType(budget.ID, models.ChangeEntryAdd)
	suite.Require().Len(changes, 1)
	suite.Assert().Equal("Added expense $12.50 to Food (Groceries @ Market)", changes[0].Description)
	suite.Assert().Equal("12.50", *changes[0].NewValue)
}

func (suite *TestSuiteStandard) TestAddEntryWithoutPlace() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Salary", 0)

	_, err := suite.store.AddEntry(suite.ctx, ledger.NewEntry{
		CategoryID: category.ID,
		EntryType:  models.EntryTypeIncome,
		Amount:     decimal.NewFromInt(3000),
		What:       "March pay",
		Date:       mustDate("2024-03-28"),
	})
	suite.Require().Nil(err)

	changes := suite.changesOfType(budget.ID, models.ChangeEntryAdd)
	suite.Require().Len(changes, 1)
	suite.Assert().Equal("Added income $3000.00 to Salary (March pay)", changes[0].Description)
}

func (suite *TestSuiteStandard) TestAddEntryValidation() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)

	tests := []struct {
		name  string
		entry ledger.NewEntry
	}{
		{"unknown type", ledger.NewEntry{CategoryID: category.ID, EntryType: "transfer", Amount: decimal.NewFromInt(1), Date: mustDate("2024-03-01")}},
		{"zero amount", ledger.NewEntry{CategoryID: category.ID, EntryType: models.EntryTypeExpense, Amount: decimal.Zero, Date: mustDate("2024-03-01")}},
		{"negative amount", ledger.NewEntry{CategoryID: category.ID, EntryType: models.EntryTypeExpense, Amount: decimal.NewFromInt(-5), Date: mustDate("2024-03-01")}},
		{"no date", ledger.NewEntry{CategoryID: category.ID, EntryType: models.EntryTypeExpense, Amount: decimal.NewFromInt(5)}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.store.AddEntry(suite.ctx, tt.entry)
			suite.Assert().ErrorIs(err, models.ErrValidation)
		})
	}

	_, err := suite.store.AddEntry(suite.ctx, ledger.NewEntry{CategoryID: 999, EntryType: models.EntryTypeExpense, Amount: decimal.NewFromInt(5), Date: mustDate("2024-03-01")})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	suite.Assert().Len(suite.changesOfType(budget.ID, models.ChangeEntryAdd), 0)
}

func (suite *TestSuiteStandard) TestLedgerSorting() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)

	a := suite.addEntry(category.ID, models.EntryTypeExpense, "30", mustDate("2024-03-10"))
	b := suite.addEntry(category.ID, models.EntryTypeExpense, "10", mustDate("2024-03-01"))
	c := suite.addEntry(category.ID, models.EntryTypeExpense, "20", mustDate("2024-03-10"))

	tests := []struct {
		sort models.LedgerSort
		want []uint64
	}{
		{"", []uint64{c.ID, a.ID, b.ID}},
		{models.LedgerDateDesc, []uint64{c.ID, a.ID, b.ID}},
		{models.LedgerDateAsc, []uint64{b.ID, a.ID, c.ID}},
		{models.LedgerAmountAsc, []uint64{b.ID, c.ID, a.ID}},
		{models.LedgerAmountDesc, []uint64{a.ID, c.ID, b.ID}},
		{models.LedgerCreatedAsc, []uint64{a.ID, b.ID, c.ID}},
		{models.LedgerCreatedDesc, []uint64{c.ID, b.ID, a.ID}},
	}

	for _, tt := range tests {
		suite.Run(string(tt.sort), func() {
			entries, err := suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{Sort: tt.sort})
			suite.Require().Nil(err)
			suite.Assert().Equal(tt.want, entryIDs(entries))
		})
	}

	_, err := suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{Sort: "by_mood"})
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestLedgerPagination() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)

	var ids []uint64
	for day := 1; day <= 5; day++ {
		e := suite.addEntry(category.ID, models.EntryTypeExpense, "1", types.NewDate(2024, 3, day))
		ids = append(ids, e.ID)
	}

	page, err := suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{Limit: 2, Offset: 1, Sort: models.LedgerDateAsc})
	suite.Require().Nil(err)
	suite.Assert().Equal(ids[1:3], entryIDs(page))

	page, err = suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{Limit: 2, Offset: 4, Sort: models.LedgerDateAsc})
	suite.Require().Nil(err)
	suite.Assert().Equal(ids[4:], entryIDs(page))

	page, err = suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{})
	suite.Require().Nil(err)
	suite.Assert().Len(page, 5, "A missing limit uses the default page size")

	_, err = suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{Offset: -1})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = suite.store.Ledger(suite.ctx, 999, ledger.LedgerQuery{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestUpdateEntry() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)
	entry := suite.addEntry(category.ID, models.EntryTypeExpense, "12.50", mustDate("2024-03-15"))
	place := "Bakery"

	updated, err := suite.store.UpdateEntry(suite.ctx, ledger.EntryUpdate{
		EntryID:   entry.ID,
		EntryType: models.EntryTypeExpense,
		Amount:    decimal.RequireFromString("14"),
		What:      "Bread",
		Where:     &place,
		Date:      mustDate("2024-03-16"),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(entry.ID, updated.ID)
	suite.Assert().True(decimal.NewFromInt(14).Equal(updated.Amount))
	suite.Assert().Equal("Bread", updated.What)
	suite.Assert().Equal("Bakery", *updated.Where)
	suite.Assert().Equal(types.NewDate(2024, 3, 16), updated.Date)
	suite.Assert().True(entry.CreatedAt.Equal(updated.CreatedAt))

	changes := suite.changesOfType(budget.ID, models.ChangeEntryUpdate)
	suite.Require().Len(changes, 1)
	suite.Assert().Equal("12.50", *changes[0].OldValue)
	suite.Assert().Equal("14.00", *changes[0].NewValue)
	suite.Assert().Contains(changes[0].Description, "in Food")

	// Clearing the place
	updated, err = suite.store.UpdateEntry(suite.ctx, ledger.EntryUpdate{
		EntryID:   entry.ID,
		EntryType: models.EntryTypeAdjustment,
		Amount:    decimal.NewFromInt(1),
		What:      "Correction",
		Date:      mustDate("2024-03-16"),
	})
	suite.Require().Nil(err)
	suite.Assert().Nil(updated.Where)
	suite.Assert().Equal(models.EntryTypeAdjustment, updated.EntryType)
}

func (suite *TestSuiteStandard) TestUpdateEntryNotFound() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)
	entry := suite.addEntry(category.ID, models.EntryTypeExpense, "5", mustDate("2024-03-15"))
	suite.Require().Nil(suite.store.SoftDeleteEntry(suite.ctx, entry.ID))

	for _, id := range []uint64{entry.ID, 999} {
		_, err := suite.store.UpdateEntry(suite.ctx, ledger.EntryUpdate{
			EntryID:   id,
			EntryType: models.EntryTypeExpense,
			Amount:    decimal.NewFromInt(1),
			Date:      mustDate("2024-03-16"),
		})
		suite.Assert().ErrorIs(err, models.ErrResourceNotFound, "entry %d", id)
	}
}

func (suite *TestSuiteStandard) TestSoftDeleteEntry() {
	budget := suite.createBudget(3, 2024)
	category := suite.createCategory(budget.ID, "Food", 400)
	kept := suite.addEntry(category.ID, models.EntryTypeExpense, "10", mustDate("2024-03-01"))
	deleted := suite.addEntry(category.ID, models.EntryTypeExpense, "99", mustDate("2024-03-02"))

	suite.Require().Nil(suite.store.SoftDeleteEntry(suite.ctx, deleted.ID))

	// Gone from the ledger
	entries, err := suite.store.Ledger(suite.ctx, category.ID, ledger.LedgerQuery{})
	suite.Require().Nil(err)
	suite.Assert().Equal([]uint64{kept.ID}, entryIDs(entries))

	// Gone from the aggregates
	stats, err := suite.store.CategoriesWithStats(suite.ctx, budget.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("10", stats[0].ExpenseTotal.String())
	suite.Assert().Equal(int64(1), stats[0].EntriesCount)

	// Still readable for auditing
	audited, err := suite.store.Entry(suite.ctx, deleted.ID)
	suite.Require().Nil(err)
	suite.Require().NotNil(audited.DeletedAt)
	suite.Assert().True(audited.Deleted())
	suite.Assert().WithinDuration(time.Now(), *audited.DeletedAt, test.Tolerance)

	// Only once
	err = suite.store.SoftDeleteEntry(suite.ctx, deleted.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	changes := suite.changesOfType(budget.ID, models.ChangeEntryDelete)
	suite.Require().Len(changes, 1)
	suite.Assert().Contains(changes[0].Description, "from Food")

	suite.Assert().ErrorIs(suite.store.SoftDeleteEntry(suite.ctx, 999), models.ErrResourceNotFound)
}

func entryIDs(entries []models.LedgerEntry) []uint64 {
	ids := make([]uint64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
