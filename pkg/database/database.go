// Package database opens the SQLite file that stores all budgets.
package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/budgetbook/backend/pkg/models"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the database at dsn, migrates it and returns the handle
// all store operations run on.
//
// The migration runs on a connection without foreign key enforcement so
// that back-filling existing rows never triggers cascades. Afterwards,
// the database is reopened with foreign keys enabled.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(withPragmas(dsn, "busy_timeout(5000)")), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = models.Migrate(db)
	if err != nil {
		Close(db)
		return nil, err
	}

	err = Close(db)
	if err != nil {
		return nil, err
	}

	db, err = gorm.Open(sqlite.Open(withPragmas(dsn, "busy_timeout(5000)", "foreign_keys(1)")), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes all access and prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = registerCallbacks(db)
	if err != nil {
		Close(db)
		return nil, err
	}

	return db, nil
}

// Close closes the connection pool of db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	return sqlDB.Close()
}

// Ping verifies that the database is still reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// withPragmas appends _pragma query parameters to a dsn.
func withPragmas(dsn string, pragmas ...string) string {
	var b strings.Builder
	b.WriteString(dsn)

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	for _, p := range pragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}

	return b.String()
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "budgetbook:after_query", queryCallback},
		{db.Callback().Query().After("*"), "budgetbook:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "budgetbook:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "budgetbook:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "budgetbook:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "budgetbook:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "budgetbook:after_delete_general", generalCallback},
		{db.Callback().Raw().After("*"), "budgetbook:after_raw", createUpdateCallback},
		{db.Callback().Raw().After("*"), "budgetbook:after_raw_general", generalCallback},
		{db.Callback().Row().After("*"), "budgetbook:after_row_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	return nil
}

var pluralSuffix = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with one naming
// the resource that was looked up.
func queryCallback(db *gorm.DB) {
	if !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		return
	}

	// "budget_categories" becomes "budget category"
	name := strings.ReplaceAll(db.Statement.Table, "_", " ")
	name = pluralSuffix.ReplaceAllString(name, "y")
	name = strings.TrimSuffix(name, "s")

	db.Error = fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, name)
}

// constraintErrors maps constraint violations to the errors returned to callers.
var constraintErrors = []struct {
	message string
	err     error
}{
	{"UNIQUE constraint failed: monthly_budgets.month, monthly_budgets.year", models.ErrBudgetPeriodNotUnique},
	{"UNIQUE constraint failed: global_categories.name", models.ErrGlobalCategoryNameNotUnique},
	{"FOREIGN KEY constraint failed", models.ErrReferenceNotFound},
}

// createUpdateCallback replaces constraint violations reported by the
// database with the matching sentinel errors.
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	for _, c := range constraintErrors {
		if strings.Contains(db.Error.Error(), c.message) {
			db.Error = c.err
			return
		}
	}
}

// generalCallback handles driver errors no other callback classified.
//
// They are logged and wrapped in ErrStorage so that callers can tell
// them apart from errors caused by their input.
func generalCallback(db *gorm.DB) {
	if db.Error == nil || errors.Is(db.Error, models.ErrStorage) {
		return
	}

	var sqliteErr *go_sqlite.Error

	// "sql: database is closed" is hard-coded in database/sql
	if db.Error.Error() == "sql: database is closed" || errors.As(db.Error, &sqliteErr) {
		log.Error().Str("table", db.Statement.Table).Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = fmt.Errorf("%w: %w", models.ErrStorage, db.Error)
	}
}
