package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/db"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "flashcards.db")

	database, err := db.Open(path)
	require.NoError(t, err)
	require.NoError(t, database.Check(ctx))

	var count int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, database.Close())

	// Reopening must not reapply anything.
	database, err = db.Open(path)
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)

	_, err = database.ExecContext(ctx, `INSERT INTO kv_store (name, value) VALUES ('k', 'v')`)
	assert.NoError(t, err)
}
