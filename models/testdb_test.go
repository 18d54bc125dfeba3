package models

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a throwaway sqlite database with the full schema migrated.
// Foreign keys are switched on so constraints bite the way they do on
// postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}, &Inventory{}, &Sale{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku, category string, price float64) *Product {
	t.Helper()

	p := &Product{
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Category: category,
		SKU:      sku,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
