package models_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/printforge/stall_backend/models"
)

// openTestDB gives each test its own in-memory database. cache=shared with a
// per-test name keeps the schema alive across pooled connections.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.MigrateTable(db))
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func seedItem(t *testing.T, db *gorm.DB, name string, price string, quantity int) *models.Item {
	t.Helper()
	item, err := models.NewStockLedger(db).CreateItem(context.Background(), &models.NewItem{
		Name:      name,
		UnitPrice: dec(t, price),
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return item
}

func seedOpenSession(t *testing.T, db *gorm.DB, title string) *models.SalesSession {
	t.Helper()
	session, err := models.NewSessionStore(db).CreateSession(context.Background(), &models.NewSalesSession{
		Title: title,
	})
	require.NoError(t, err)
	return session
}

func seedSpool(t *testing.T, db *gorm.DB, material string, weight string) *models.FilamentSpool {
	t.Helper()
	spool, err := models.NewFilamentLedger(db).CreateSpool(context.Background(), &models.NewFilamentSpool{
		Material:    material,
		WeightGrams: dec(t, weight),
	})
	require.NoError(t, err)
	return spool
}
