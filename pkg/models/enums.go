package models

// EntryType is the kind of a ledger entry.
type EntryType string

const (
	EntryTypeExpense    EntryType = "expense"
	EntryTypeIncome     EntryType = "income"
	EntryTypeAdjustment EntryType = "adjustment"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeExpense, EntryTypeIncome, EntryTypeAdjustment:
		return true
	}
	return false
}

// CategoryType is the kind of a budget category.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeSavings CategoryType = "savings"
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeSavings
}

// OrDefault returns the expense type for the empty value.
func (t CategoryType) OrDefault() CategoryType {
	if t == "" {
		return CategoryTypeExpense
	}
	return t
}

// ChangeType classifies a change history entry.
type ChangeType string

const (
	ChangeStatus        ChangeType = "status_change"
	ChangeTitle         ChangeType = "title_change"
	ChangeEntryAdd      ChangeType = "entry_add"
	ChangeEntryUpdate   ChangeType = "entry_update"
	ChangeEntryDelete   ChangeType = "entry_delete"
	ChangeAllocation    ChangeType = "allocation_change"
	ChangeCategoryAdd   ChangeType = "category_add"
	ChangeTemplateApply ChangeType = "template_apply"
)

// SortCriteria is the key used to order budget listings.
type SortCriteria string

const (
	SortByIncome       SortCriteria = "income"
	SortByCreatedDate  SortCriteria = "created_date"
	SortByFinishedDate SortCriteria = "finished_date"
	SortByBudgetDate   SortCriteria = "budget_date"
	SortByName         SortCriteria = "name"
	SortByLastEdited   SortCriteria = "last_edited"
)

// LedgerSort is the order of a category ledger page.
type LedgerSort string

const (
	LedgerDateAsc     LedgerSort = "date_asc"
	LedgerDateDesc    LedgerSort = "date_desc"
	LedgerAmountAsc   LedgerSort = "amount_asc"
	LedgerAmountDesc  LedgerSort = "amount_desc"
	LedgerCreatedAsc  LedgerSort = "created_asc"
	LedgerCreatedDesc LedgerSort = "created_desc"
)

// ParseLedgerSort returns the LedgerSort for s. The empty string is date_desc.
func ParseLedgerSort(s string) (LedgerSort, error) {
	switch sort := LedgerSort(s); sort {
	case "":
		return LedgerDateDesc, nil
	case LedgerDateAsc, LedgerDateDesc, LedgerAmountAsc, LedgerAmountDesc, LedgerCreatedAsc, LedgerCreatedDesc:
		return sort, nil
	}

	return "", Invalid("unknown ledger sort %q", s)
}
