package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/budgetbook/backend/internal/types"
	"github.com/budgetbook/backend/pkg/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the JSON names of fields, the caller never sees the Go names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("entry_type", validateEntryType)
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("ledger_sort", validateLedgerSort)
	_ = v.RegisterValidation("iso_date", validateISODate)

	return v
}

func validateEntryType(fl validator.FieldLevel) bool {
	return models.EntryType(fl.Field().String()).Valid()
}

// An empty category type means the default.
func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).OrDefault().Valid()
}

func validateLedgerSort(fl validator.FieldLevel) bool {
	_, err := models.ParseLedgerSort(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := types.ParseDate(fl.Field().String())
	return err == nil
}

func fieldErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "entry_type":
		return fmt.Sprintf("%s must be one of expense, income, adjustment", e.Field())
	case "category_type":
		return fmt.Sprintf("%s must be one of expense, savings", e.Field())
	case "ledger_sort":
		return fmt.Sprintf("%s must be one of date_asc, date_desc, amount_asc, amount_desc, created_asc, created_desc", e.Field())
	case "iso_date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", e.Field())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

// check validates a payload and joins all field errors into one
// validation error.
func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return models.Invalid("%v", err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		messages = append(messages, fieldErrorToText(e))
	}

	return models.Invalid("%s", strings.Join(messages, ", "))
}
