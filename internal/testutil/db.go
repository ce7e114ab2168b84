// Package testutil provides an in-memory checkout schema for package tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"checkoutdash/internal/config"
	"checkoutdash/internal/infra"
	"checkoutdash/internal/models/db_models"
)

// TablePrefix mirrors the production table naming.
const TablePrefix = "appypie_"

// Models lists every table the service reads or writes.
func Models() []interface{} {
	return []interface{}{
		&db_models.PaymentLog{},
		&db_models.BillingAddress{},
		&db_models.Subscription{},
		&db_models.Plan{},
		&db_models.AddonPlan{},
		&db_models.Product{},
		&db_models.Pricing{},
		&db_models.Country{},
		&db_models.PaymentComment{},
		&db_models.Admin{},
	}
}

// NewDB opens an isolated SQLite database with the full schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := infra.OpenDatabase(config.DatabaseConfig{
		Type:         config.DialectSQLite,
		Name:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		TablePrefix:  TablePrefix,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
