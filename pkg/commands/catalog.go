package commands

import (
	"context"

	"github.com/budgetbook/backend/pkg/ledger"
)

// GlobalCategoriesPayload filters the catalog by a glob pattern.
type GlobalCategoriesPayload struct {
	Match string `json:"match" example:"*ing"`
}

// GlobalCategoryPayload is the input of create_global_category.
type GlobalCategoryPayload struct {
	Name        string  `json:"name" validate:"required" example:"Pets"`
	Description *string `json:"description" example:"Vet and food"`
}

// UpdateGlobalCategoryPayload is the input of update_global_category.
type UpdateGlobalCategoryPayload struct {
	CategoryID  uint64  `json:"categoryId" validate:"required" example:"11"`
	Name        string  `json:"name" validate:"required" example:"Pets"`
	Description *string `json:"description" example:"Vet and food"`
}

// DeleteGlobalCategoryPayload selects a catalog entry by its ID.
type DeleteGlobalCategoryPayload struct {
	CategoryID uint64 `json:"categoryId" validate:"required" example:"11"`
}

func registerCatalogCommands(r *Registry) {
	r.register("get_global_categories", handle(globalCategories))
	r.register("create_global_category", handle(createGlobalCategory))
	r.register("update_global_category", handle(updateGlobalCategory))
	r.register("delete_global_category", handle(deleteGlobalCategory))
}

func globalCategories(ctx context.Context, s *ledger.Store, p GlobalCategoriesPayload) (any, error) {
	return s.GlobalCategories(ctx, p.Match)
}

func createGlobalCategory(ctx context.Context, s *ledger.Store, p GlobalCategoryPayload) (any, error) {
	return s.CreateGlobalCategory(ctx, ledger.GlobalCategoryInput{
		Name:        p.Name,
		Description: p.Description,
	})
}

func updateGlobalCategory(ctx context.Context, s *ledger.Store, p UpdateGlobalCategoryPayload) (any, error) {
	return s.UpdateGlobalCategory(ctx, p.CategoryID, ledger.GlobalCategoryInput{
		Name:        p.Name,
		Description: p.Description,
	})
}

func deleteGlobalCategory(ctx context.Context, s *ledger.Store, p DeleteGlobalCategoryPayload) (any, error) {
	return nil, s.DeleteGlobalCategory(ctx, p.CategoryID)
}
