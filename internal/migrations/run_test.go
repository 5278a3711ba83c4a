package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/lib/pgtest"
)

func getTestDB(t *testing.T) *sql.DB {
	dsn := pgtest.StartPostgres(t)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping())
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, table).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestRunMigrations(t *testing.T) {
	db := getTestDB(t)
	migrationsPath := pgtest.MigrationsPath(t)

	require.NoError(t, Run(db, migrationsPath))

	for _, table := range []string{"users", "categories", "products", "orders"} {
		assert.True(t, tableExists(t, db, table), "table %s should exist", table)
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM pg_indexes
			WHERE schemaname = 'public'
			AND tablename = 'orders'
			AND indexname = 'idx_orders_product_id'
		)`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "index should exist")

	version, dirty, err := Version(db, migrationsPath)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestMigrationIdempotency(t *testing.T) {
	db := getTestDB(t)
	migrationsPath := pgtest.MigrationsPath(t)

	require.NoError(t, Run(db, migrationsPath))
	require.NoError(t, Run(db, migrationsPath), "running migrations twice should not fail")
}

func TestRollback(t *testing.T) {
	db := getTestDB(t)
	migrationsPath := pgtest.MigrationsPath(t)

	require.NoError(t, Run(db, migrationsPath))
	require.NoError(t, Rollback(db, migrationsPath))

	assert.False(t, tableExists(t, db, "orders"))
	assert.False(t, tableExists(t, db, "users"))

	version, _, err := Version(db, migrationsPath)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}

func TestRun_InvalidPath(t *testing.T) {
	db := getTestDB(t)

	err := Run(db, "/definitely/not/here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations.Run")
}
