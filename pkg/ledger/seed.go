package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// exampleBudgets are created on the first launch so that the UI has
// something to show.
var exampleBudgets = []struct {
	month  time.Month
	year   int
	income int64
}{
	{time.January, 2024, 5000},
	{time.February, 2024, 4800},
	{time.March, 2024, 5200},
	{time.April, 2024, 5100},
	{time.May, 2024, 4900},
}

// SeedExamples creates example budgets if there are no budgets at all.
// It returns the number of budgets created.
func (s *Store) SeedExamples(ctx context.Context) (int, error) {
	created := 0

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MonthlyBudget{}).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		now := s.now()
		for _, e := range exampleBudgets {
			budget := models.MonthlyBudget{
				Month:       int(e.month),
				Year:        e.year,
				TotalIncome: decimal.NewFromInt(e.income),
				Name:        ptr(fmt.Sprintf("%s %d Budget", e.month, e.year)),
				CreatedAt:   now,
				LastEdited:  now,
			}
			if err := tx.Create(&budget).Error; err != nil {
				return err
			}
			created++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if created > 0 {
		log.Info().Int("budgets", created).Msg("created example budgets")
	}

	return created, nil
}
