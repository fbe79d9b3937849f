package ledger

import (
	"cmp"
	"strings"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
)

type budgetComparator func(a, b models.MonthlyBudget) int

// budgetOrderings maps every sort criteria to the ascending order it
// stands for. Descending orders are the exact reverse.
var budgetOrderings = map[models.SortCriteria]func() budgetComparator{
	models.SortByIncome: func() budgetComparator {
		return func(a, b models.MonthlyBudget) int {
			return a.TotalIncome.Cmp(b.TotalIncome)
		}
	},
	models.SortByCreatedDate: func() budgetComparator {
		return func(a, b models.MonthlyBudget) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	},
	// Open budgets sort before all finished ones
	models.SortByFinishedDate: func() budgetComparator {
		return func(a, b models.MonthlyBudget) int {
			return compareOptionalTimes(a.FinishedAt, b.FinishedAt)
		}
	},
	models.SortByBudgetDate: func() budgetComparator {
		return func(a, b models.MonthlyBudget) int {
			if c := cmp.Compare(a.Year, b.Year); c != 0 {
				return c
			}
			return cmp.Compare(a.Month, b.Month)
		}
	},
	models.SortByName: func() budgetComparator {
		// Casers keep state, every sort gets its own
		fold := cases.Fold()
		return func(a, b models.MonthlyBudget) int {
			return strings.Compare(fold.String(a.DisplayName), fold.String(b.DisplayName))
		}
	},
	models.SortByLastEdited: func() budgetComparator {
		return func(a, b models.MonthlyBudget) int {
			return a.LastEdited.Compare(b.LastEdited)
		}
	},
}

// sortBudgets sorts budgets in place. Budgets that compare equal keep
// their relative order.
func sortBudgets(budgets []models.MonthlyBudget, criteria models.SortCriteria, ascending bool) {
	ordering, ok := budgetOrderings[criteria]
	if !ok {
		log.Debug().Str("criteria", string(criteria)).Msg("unknown sort criteria, sorting by last edit")
		ordering = budgetOrderings[models.SortByLastEdited]
		ascending = false
	}

	compare := ordering()
	if !ascending {
		asc := compare
		compare = func(a, b models.MonthlyBudget) int {
			return asc(b, a)
		}
	}

	slices.SortStableFunc(budgets, compare)
}

func compareOptionalTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	return a.Compare(*b)
}
