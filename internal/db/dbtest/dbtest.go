// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bookshop/internal/db"
	"github.com/Skotchmaster/bookshop/internal/models"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, db.Migrate(ctx, gdb), "failed to migrate tables")

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func Customer(t testing.TB, gdb *gorm.DB, id uint, username, role string) models.Customer {
	t.Helper()

	c := models.Customer{Username: username, Email: username + "@example.com", Role: role}
	c.ID = id
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func Category(t testing.TB, gdb *gorm.DB, name string) models.Category {
	t.Helper()

	c := models.Category{Name: name}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func Product(t testing.TB, gdb *gorm.DB, title string, price string, categoryID uint) models.Product {
	t.Helper()

	p := models.Product{
		Title:       title,
		Author:      "Test Author",
		Description: "Test Description",
		Price:       decimal.RequireFromString(price),
		Stock:       5,
		CategoryID:  categoryID,
	}
	require.NoError(t, gdb.Omit("Category").Create(&p).Error)
	return p
}

func Cart(t testing.TB, gdb *gorm.DB, customerID uint) models.Cart {
	t.Helper()

	c := models.Cart{CustomerID: customerID}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}
