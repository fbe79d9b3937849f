package commands

import (
	"context"
	"encoding/json"

	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/shopspring/decimal"
)

// TemplateItemPayload is one category of a template.
type TemplateItemPayload struct {
	GlobalCategoryID uint64              `json:"globalCategoryId" validate:"required" example:"3"`
	AllocatedAmount  decimal.Decimal     `json:"allocatedAmount" example:"1500"`
	CategoryType     models.CategoryType `json:"categoryType" validate:"category_type" example:"expense"`
	SortOrder        *int                `json:"sortOrder" example:"0"`
}

// TemplatePayload is the input of create_budget_template.
type TemplatePayload struct {
	Name        string                `json:"name" validate:"required" example:"Default month"`
	Description *string               `json:"description" example:"What I spend every month"`
	Categories  []TemplateItemPayload `json:"categories" validate:"dive"`
}

// UpdateTemplatePayload is the input of update_budget_template.
type UpdateTemplatePayload struct {
	TemplateID  uint64                `json:"templateId" validate:"required" example:"2"`
	Name        string                `json:"name" validate:"required" example:"Default month"`
	Description *string               `json:"description" example:"What I spend every month"`
	Categories  []TemplateItemPayload `json:"categories" validate:"dive"`
}

// TemplateIDPayload selects a template by its ID.
type TemplateIDPayload struct {
	TemplateID uint64 `json:"templateId" validate:"required" example:"2"`
}

// ApplyTemplatePayload is the input of apply_template_to_budget.
type ApplyTemplatePayload struct {
	BudgetID   uint64 `json:"budgetId" validate:"required" example:"1"`
	TemplateID uint64 `json:"templateId" validate:"required" example:"2"`
}

func registerTemplateCommands(r *Registry) {
	r.register("get_budget_templates", listTemplates)
	r.register("get_budget_template_with_categories", handle(templateWithCategories))
	r.register("create_budget_template", handle(createTemplate))
	r.register("update_budget_template", handle(updateTemplate))
	r.register("delete_budget_template", handle(deleteTemplate))
	r.register("apply_template_to_budget", handle(applyTemplate))
}

func templateInput(name string, description *string, items []TemplateItemPayload) ledger.TemplateInput {
	in := ledger.TemplateInput{
		Name:        name,
		Description: description,
		Categories:  make([]ledger.TemplateItemInput, 0, len(items)),
	}

	for _, item := range items {
		in.Categories = append(in.Categories, ledger.TemplateItemInput{
			GlobalCategoryID: item.GlobalCategoryID,
			AllocatedAmount:  item.AllocatedAmount,
			CategoryType:     item.CategoryType,
			SortOrder:        item.SortOrder,
		})
	}

	return in
}

func listTemplates(ctx context.Context, s *ledger.Store, _ json.RawMessage) (any, error) {
	return s.ListTemplates(ctx)
}

func templateWithCategories(ctx context.Context, s *ledger.Store, p TemplateIDPayload) (any, error) {
	return s.TemplateWithCategories(ctx, p.TemplateID)
}

func createTemplate(ctx context.Context, s *ledger.Store, p TemplatePayload) (any, error) {
	return s.CreateTemplate(ctx, templateInput(p.Name, p.Description, p.Categories))
}

func updateTemplate(ctx context.Context, s *ledger.Store, p UpdateTemplatePayload) (any, error) {
	return s.UpdateTemplate(ctx, p.TemplateID, templateInput(p.Name, p.Description, p.Categories))
}

func deleteTemplate(ctx context.Context, s *ledger.Store, p TemplateIDPayload) (any, error) {
	return nil, s.DeleteTemplate(ctx, p.TemplateID)
}

func applyTemplate(ctx context.Context, s *ledger.Store, p ApplyTemplatePayload) (any, error) {
	return s.ApplyTemplate(ctx, p.BudgetID, p.TemplateID)
}
