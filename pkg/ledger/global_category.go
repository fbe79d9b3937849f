package ledger

import (
	"context"
	"strings"

	"github.com/budgetbook/backend/pkg/models"
	"github.com/ryanuber/go-glob"
)

// GlobalCategoryInput is the input for creating and updating catalog entries.
type GlobalCategoryInput struct {
	Name        string
	Description *string
}

func (in GlobalCategoryInput) validate() (GlobalCategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, models.Invalid("global category name must not be empty")
	}
	return in, nil
}

// GlobalCategories returns the category catalog ordered by name.
//
// A non-empty match filters the names with a case-insensitive glob
// pattern, e.g. "*ing".
func (s *Store) GlobalCategories(ctx context.Context, match string) ([]models.GlobalCategory, error) {
	categories := []models.GlobalCategory{}
	if err := s.conn(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	if match == "" {
		return categories, nil
	}

	pattern := strings.ToLower(match)
	filtered := []models.GlobalCategory{}
	for _, c := range categories {
		if glob.Glob(pattern, strings.ToLower(c.Name)) {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}

// CreateGlobalCategory adds an entry to the catalog. Names are unique.
func (s *Store) CreateGlobalCategory(ctx context.Context, in GlobalCategoryInput) (models.GlobalCategory, error) {
	in, err := in.validate()
	if err != nil {
		return models.GlobalCategory{}, err
	}

	now := s.now()
	category := models.GlobalCategory{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.conn(ctx).Create(&category).Error; err != nil {
		return models.GlobalCategory{}, err
	}

	return category, nil
}

// UpdateGlobalCategory changes name and description of a catalog entry.
//
// Budget categories copied from the entry keep their names.
func (s *Store) UpdateGlobalCategory(ctx context.Context, id uint64, in GlobalCategoryInput) (models.GlobalCategory, error) {
	in, err := in.validate()
	if err != nil {
		return models.GlobalCategory{}, err
	}

	db := s.conn(ctx)
	category, err := find[models.GlobalCategory](db, "global category", id)
	if err != nil {
		return models.GlobalCategory{}, err
	}

	err = db.Model(&category).Updates(map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"updated_at":  s.now(),
	}).Error
	if err != nil {
		return models.GlobalCategory{}, err
	}

	return find[models.GlobalCategory](db, "global category", id)
}

// DeleteGlobalCategory removes an entry from the catalog together with
// the template items using it. Budget categories created from it are kept.
func (s *Store) DeleteGlobalCategory(ctx context.Context, id uint64) error {
	result := s.conn(ctx).Delete(&models.GlobalCategory{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.NotFound("global category", id)
	}

	return nil
}
