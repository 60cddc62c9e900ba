// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/Burhanmalu/LUMARIYA/database"
	"github.com/Burhanmalu/LUMARIYA/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory SQLite database with foreign keys on.
// A single connection keeps the in-memory database alive for the test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string, admin bool) *models.User {
	t.Helper()
	hash := "not-a-real-hash"
	u := &models.User{Email: email, FullName: "Test " + email, PasswordHash: &hash, IsAdmin: admin}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateProduct(t *testing.T, db *gorm.DB, id string, price string) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:        id,
		Name:      fmt.Sprintf("Product %s", id),
		Price:     decimal.RequireFromString(price),
		Category:  "Sarees",
		Materials: []string{"silk"},
		Colors:    []models.Color{{Name: "Ivory", Available: true}},
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
