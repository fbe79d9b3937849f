package models

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// column is a column that older schema versions did not have.
//
// It is added with definition when missing, then backfill (if any) is run
// to derive values for the rows that already exist.
type column struct {
	name       string
	definition string
	backfill   string
}

type table struct {
	name    string
	create  string
	columns []column
	indexes []string
	seed    func(*gorm.DB) error
}

// schema lists all tables in creation order. Every create statement is the
// full current definition, columns lists the additions since the first
// released schema.
var schema = []table{
	{
		name: "budget_templates",
		create: `CREATE TABLE IF NOT EXISTS budget_templates (
			template_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		columns: []column{
			{name: "description", definition: "TEXT"},
			{
				name:       "updated_at",
				definition: "DATETIME",
				backfill:   "UPDATE budget_templates SET updated_at = COALESCE(created_at, CURRENT_TIMESTAMP) WHERE updated_at IS NULL",
			},
		},
	},
	{
		name: "global_categories",
		create: `CREATE TABLE IF NOT EXISTS global_categories (
			global_category_id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		columns: []column{
			{name: "description", definition: "TEXT"},
			{
				name:       "updated_at",
				definition: "DATETIME",
				backfill:   "UPDATE global_categories SET updated_at = COALESCE(created_at, CURRENT_TIMESTAMP) WHERE updated_at IS NULL",
			},
		},
		seed: seedGlobalCategories,
	},
	{
		name: "monthly_budgets",
		create: `CREATE TABLE IF NOT EXISTS monthly_budgets (
			budget_id INTEGER PRIMARY KEY AUTOINCREMENT,
			month INTEGER NOT NULL,
			year INTEGER NOT NULL,
			total_income DECIMAL(20,8) NOT NULL DEFAULT 0,
			name TEXT,
			template_id INTEGER REFERENCES budget_templates(template_id) ON DELETE SET NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_edited DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME,
			first_finished_at DATETIME,
			UNIQUE(month, year)
		)`,
		columns: []column{
			{name: "name", definition: "TEXT"},
			{name: "template_id", definition: "INTEGER REFERENCES budget_templates(template_id) ON DELETE SET NULL"},
			{
				name:       "created_at",
				definition: "DATETIME",
				backfill:   "UPDATE monthly_budgets SET created_at = CURRENT_TIMESTAMP WHERE created_at IS NULL",
			},
			{
				name:       "last_edited",
				definition: "DATETIME",
				backfill:   "UPDATE monthly_budgets SET last_edited = COALESCE(created_at, CURRENT_TIMESTAMP) WHERE last_edited IS NULL",
			},
			{name: "finished_at", definition: "DATETIME"},
			{
				name:       "first_finished_at",
				definition: "DATETIME",
				backfill:   "UPDATE monthly_budgets SET first_finished_at = finished_at WHERE first_finished_at IS NULL AND finished_at IS NOT NULL",
			},
		},
		// Tables from versions without UNIQUE(month, year) get it here
		indexes: []string{
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_monthly_budgets_period ON monthly_budgets(month, year)",
		},
	},
	{
		name: "budget_categories",
		create: `CREATE TABLE IF NOT EXISTS budget_categories (
			category_id INTEGER PRIMARY KEY AUTOINCREMENT,
			budget_id INTEGER NOT NULL REFERENCES monthly_budgets(budget_id) ON DELETE CASCADE,
			category_name TEXT NOT NULL,
			allocated_amount DECIMAL(20,8) NOT NULL DEFAULT 0,
			category_type TEXT NOT NULL DEFAULT 'expense',
			global_category_id INTEGER REFERENCES global_categories(global_category_id) ON DELETE SET NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		columns: []column{
			{name: "category_type", definition: "TEXT NOT NULL DEFAULT 'expense'"},
			{name: "global_category_id", definition: "INTEGER REFERENCES global_categories(global_category_id) ON DELETE SET NULL"},
			{
				name:       "created_at",
				definition: "DATETIME",
				backfill:   "UPDATE budget_categories SET created_at = CURRENT_TIMESTAMP WHERE created_at IS NULL",
			},
		},
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_budget_categories_budget_id ON budget_categories(budget_id)",
		},
	},
	{
		name: "ledger_entries",
		create: `CREATE TABLE IF NOT EXISTS ledger_entries (
			entry_id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER NOT NULL REFERENCES budget_categories(category_id) ON DELETE CASCADE,
			entry_type TEXT NOT NULL DEFAULT 'expense',
			amount DECIMAL(20,8) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			place TEXT,
			date TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		)`,
		columns: []column{
			{name: "entry_type", definition: "TEXT NOT NULL DEFAULT 'expense'"},
			{name: "place", definition: "TEXT"},
			{
				name:       "created_at",
				definition: "DATETIME",
				backfill:   "UPDATE ledger_entries SET created_at = CURRENT_TIMESTAMP WHERE created_at IS NULL",
			},
			{name: "deleted_at", definition: "DATETIME"},
		},
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_ledger_entries_category_id ON ledger_entries(category_id, deleted_at)",
		},
	},
	{
		name: "budget_change_history",
		create: `CREATE TABLE IF NOT EXISTS budget_change_history (
			change_id INTEGER PRIMARY KEY AUTOINCREMENT,
			budget_id INTEGER NOT NULL REFERENCES monthly_budgets(budget_id) ON DELETE CASCADE,
			change_type TEXT NOT NULL,
			field_name TEXT,
			old_value TEXT,
			new_value TEXT,
			change_description TEXT NOT NULL DEFAULT '',
			changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_budget_change_history_budget_id ON budget_change_history(budget_id, changed_at)",
		},
	},
	{
		name: "template_categories",
		create: `CREATE TABLE IF NOT EXISTS template_categories (
			template_category_id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id INTEGER NOT NULL REFERENCES budget_templates(template_id) ON DELETE CASCADE,
			global_category_id INTEGER NOT NULL REFERENCES global_categories(global_category_id) ON DELETE CASCADE,
			allocated_amount DECIMAL(20,8) NOT NULL DEFAULT 0,
			category_type TEXT NOT NULL DEFAULT 'expense',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		columns: []column{
			{name: "category_type", definition: "TEXT NOT NULL DEFAULT 'expense'"},
			{name: "sort_order", definition: "INTEGER NOT NULL DEFAULT 0"},
			{
				name:       "created_at",
				definition: "DATETIME",
				backfill:   "UPDATE template_categories SET created_at = CURRENT_TIMESTAMP WHERE created_at IS NULL",
			},
		},
		indexes: []string{
			"CREATE INDEX IF NOT EXISTS idx_template_categories_template_id ON template_categories(template_id, sort_order)",
		},
	},
}

// Migrate brings the schema of db up to date.
//
// Existing tables are upgraded in place by adding the columns they lack.
// Nothing is ever dropped or rewritten, so running Migrate any number of
// times is safe. Each table is migrated in its own transaction.
func Migrate(db *gorm.DB) error {
	for _, t := range schema {
		err := db.Transaction(func(tx *gorm.DB) error {
			return t.migrate(tx)
		})
		if err != nil {
			return fmt.Errorf("error during migration of table %s: %w", t.name, err)
		}
	}

	return nil
}

func (t table) migrate(tx *gorm.DB) error {
	if !tx.Migrator().HasTable(t.name) {
		log.Info().Str("table", t.name).Msg("creating table")
	}

	if err := tx.Exec(t.create).Error; err != nil {
		return err
	}

	existing, err := columnNames(tx, t.name)
	if err != nil {
		return err
	}

	for _, c := range t.columns {
		if existing[c.name] {
			continue
		}

		log.Info().Str("table", t.name).Str("column", c.name).Msg("adding missing column")
		err := tx.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", t.name, c.name, c.definition)).Error
		if err != nil {
			return fmt.Errorf("adding column %s: %w", c.name, err)
		}

		if c.backfill != "" {
			if err := tx.Exec(c.backfill).Error; err != nil {
				return fmt.Errorf("back-filling column %s: %w", c.name, err)
			}
		}
	}

	for _, index := range t.indexes {
		if err := tx.Exec(index).Error; err != nil {
			return err
		}
	}

	if t.seed != nil {
		return t.seed(tx)
	}

	return nil
}

// columnNames returns the set of columns the table currently has.
func columnNames(tx *gorm.DB, table string) (map[string]bool, error) {
	var columns []struct {
		Name string
	}

	err := tx.Raw(fmt.Sprintf("PRAGMA table_info(%q)", table)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}

	names := make(map[string]bool, len(columns))
	for _, c := range columns {
		names[c.Name] = true
	}

	return names, nil
}

func seedGlobalCategories(tx *gorm.DB) error {
	now := time.Now().UTC()

	for _, c := range DefaultGlobalCategories {
		// Not ON CONFLICT: tables from early versions lack the UNIQUE constraint on name
		err := tx.Exec(
			`INSERT INTO global_categories (name, description, created_at, updated_at)
			SELECT ?, ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM global_categories WHERE name = ?)`,
			c.Name, c.Description, now, now, c.Name,
		).Error
		if err != nil {
			return fmt.Errorf("seeding global category %q: %w", c.Name, err)
		}
	}

	return nil
}
