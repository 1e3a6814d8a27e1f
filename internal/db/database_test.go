package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookshop/internal/models"
)

func TestOpen_Validation(t *testing.T) {
	_, err := Open(context.Background(), "sqlite", "")
	require.Error(t, err)

	_, err = Open(context.Background(), "oracle", "dsn")
	require.ErrorContains(t, err, "unknown DB_DRIVER")
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	gdb, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(ctx, gdb))
	for _, table := range []string{"customers", "categories", "products", "carts", "cart_items"} {
		require.True(t, gdb.Migrator().HasTable(table), table)
	}

	c := models.Customer{Username: "admin", Role: models.RoleAdmin}
	require.NoError(t, gdb.Create(&c).Error)
	require.NotZero(t, c.ID)
}
