package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TemplateInput is the input for creating and updating templates.
type TemplateInput struct {
	Name        string
	Description *string
	Categories  []TemplateItemInput
}

// TemplateItemInput is one category allocation of a template. Items
// without a sort order are ordered by their position.
type TemplateItemInput struct {
	GlobalCategoryID uint64
	AllocatedAmount  decimal.Decimal
	CategoryType     models.CategoryType // defaults to expense
	SortOrder        *int
}

func (in TemplateInput) validate() (TemplateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, models.Invalid("template name must not be empty")
	}

	items := make([]TemplateItemInput, len(in.Categories))
	for i, item := range in.Categories {
		item.CategoryType = item.CategoryType.OrDefault()
		if !item.CategoryType.Valid() {
			return in, models.Invalid("unknown category type %q for template category %d", item.CategoryType, i)
		}
		items[i] = item
	}
	in.Categories = items

	return in, nil
}

const templateSummaryQuery = `
SELECT
	t.template_id,
	t.name,
	t.description,
	t.created_at,
	t.updated_at,
	COUNT(tc.template_category_id) AS category_count,
	COALESCE(SUM(tc.allocated_amount), 0) AS total_amount
FROM budget_templates t
LEFT JOIN template_categories tc ON tc.template_id = t.template_id
GROUP BY t.template_id
ORDER BY t.created_at DESC, t.template_id DESC`

const templateCategoriesQuery = `
SELECT
	tc.template_category_id,
	tc.template_id,
	tc.global_category_id,
	tc.allocated_amount,
	tc.category_type,
	tc.sort_order,
	tc.created_at,
	gc.name AS category_name
FROM template_categories tc
JOIN global_categories gc ON gc.global_category_id = tc.global_category_id
WHERE tc.template_id = ?
ORDER BY tc.sort_order ASC, tc.template_category_id ASC`

// ListTemplates returns all templates with their item count and the sum
// of their allocations, newest first.
func (s *Store) ListTemplates(ctx context.Context) ([]models.TemplateSummary, error) {
	templates := []models.TemplateSummary{}
	if err := s.conn(ctx).Raw(templateSummaryQuery).Scan(&templates).Error; err != nil {
		return nil, err
	}

	for i := range templates {
		t := &templates[i]
		t.CreatedAt = t.CreatedAt.In(time.UTC)
		t.UpdatedAt = t.UpdatedAt.In(time.UTC)
		t.TotalAmount = t.TotalAmount.Round(amountScale)
	}

	return templates, nil
}

// TemplateWithCategories returns a template and its items in sort order.
func (s *Store) TemplateWithCategories(ctx context.Context, id uint64) (models.TemplateWithCategories, error) {
	return templateWithCategories(s.conn(ctx), id)
}

func templateWithCategories(tx *gorm.DB, id uint64) (models.TemplateWithCategories, error) {
	template, err := find[models.BudgetTemplate](tx, "template", id)
	if err != nil {
		return models.TemplateWithCategories{}, err
	}

	categories := []models.TemplateCategoryDetail{}
	if err := tx.Raw(templateCategoriesQuery, id).Scan(&categories).Error; err != nil {
		return models.TemplateWithCategories{}, err
	}

	for i := range categories {
		categories[i].CreatedAt = categories[i].CreatedAt.In(time.UTC)
	}

	return models.TemplateWithCategories{
		Template:   template,
		Categories: categories,
	}, nil
}

// replaceTemplateItems deletes all items of a template and inserts items.
func (s *Store) replaceTemplateItems(tx *gorm.DB, templateID uint64, items []TemplateItemInput) error {
	if err := tx.Where("template_id = ?", templateID).Delete(&models.TemplateCategoryItem{}).Error; err != nil {
		return err
	}

	now := s.now()
	for i, item := range items {
		if _, err := find[models.GlobalCategory](tx, "global category", item.GlobalCategoryID); err != nil {
			return err
		}

		sortOrder := i
		if item.SortOrder != nil {
			sortOrder = *item.SortOrder
		}

		row := models.TemplateCategoryItem{
			TemplateID:       templateID,
			GlobalCategoryID: item.GlobalCategoryID,
			AllocatedAmount:  item.AllocatedAmount,
			CategoryType:     item.CategoryType,
			SortOrder:        sortOrder,
			CreatedAt:        now,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

// CreateTemplate creates a template with its items.
func (s *Store) CreateTemplate(ctx context.Context, in TemplateInput) (models.TemplateWithCategories, error) {
	in, err := in.validate()
	if err != nil {
		return models.TemplateWithCategories{}, err
	}

	var created models.TemplateWithCategories
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		now := s.now()
		template := models.BudgetTemplate{
			Name:        in.Name,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&template).Error; err != nil {
			return err
		}

		if err := s.replaceTemplateItems(tx, template.ID, in.Categories); err != nil {
			return err
		}

		created, err = templateWithCategories(tx, template.ID)
		return err
	})

	return created, err
}

// UpdateTemplate replaces name, description and all items of a template.
// Budgets the template was applied to are not changed.
func (s *Store) UpdateTemplate(ctx context.Context, id uint64, in TemplateInput) (models.TemplateWithCategories, error) {
	in, err := in.validate()
	if err != nil {
		return models.TemplateWithCategories{}, err
	}

	var updated models.TemplateWithCategories
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		template, err := find[models.BudgetTemplate](tx, "template", id)
		if err != nil {
			return err
		}

		err = tx.Model(&template).Updates(map[string]any{
			"name":        in.Name,
			"description": in.Description,
			"updated_at":  s.now(),
		}).Error
		if err != nil {
			return err
		}

		if err := s.replaceTemplateItems(tx, id, in.Categories); err != nil {
			return err
		}

		updated, err = templateWithCategories(tx, id)
		return err
	})

	return updated, err
}

// DeleteTemplate deletes a template. Budgets it was applied to keep their
// categories and lose the reference to the template.
func (s *Store) DeleteTemplate(ctx context.Context, id uint64) error {
	result := s.conn(ctx).Delete(&models.BudgetTemplate{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.NotFound("template", id)
	}

	return nil
}

// ApplyTemplate replaces all categories of a budget with the items of a
// template. Entries booked on the replaced categories are deleted with
// them. The new categories are copies: later changes to the template do
// not affect them.
func (s *Store) ApplyTemplate(ctx context.Context, budgetID, templateID uint64) ([]models.BudgetCategory, error) {
	categories := []models.BudgetCategory{}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := find[models.MonthlyBudget](tx, "budget", budgetID); err != nil {
			return err
		}

		template, err := templateWithCategories(tx, templateID)
		if err != nil {
			return err
		}

		err = tx.Where("budget_id = ?", budgetID).Delete(&models.BudgetCategory{}).Error
		if err != nil {
			return err
		}

		now := s.now()
		for _, item := range template.Categories {
			category := models.BudgetCategory{
				BudgetID:         budgetID,
				Name:             item.CategoryName,
				AllocatedAmount:  item.AllocatedAmount,
				CategoryType:     item.CategoryType,
				GlobalCategoryID: ptr(item.GlobalCategoryID),
				CreatedAt:        now,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			categories = append(categories, category)
		}

		err = tx.Model(&models.MonthlyBudget{}).
			Where("budget_id = ?", budgetID).
			Updates(map[string]any{
				"template_id": templateID,
				"last_edited": now,
			}).Error
		if err != nil {
			return err
		}

		return s.logChange(tx, change{
			budgetID:    budgetID,
			kind:        models.ChangeTemplateApply,
			field:       "template_id",
			newValue:    ptr(template.Template.Name),
			description: fmt.Sprintf("Applied template '%s' to budget (%d categories)", template.Template.Name, len(template.Categories)),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Uint64("budget_id", budgetID).Uint64("template_id", templateID).Int("categories", len(categories)).Msg("template applied")
	return categories, nil
}
