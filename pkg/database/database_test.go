package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/pkg/config"
)

func TestMigrateAndSeedAreIdempotent(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, nil))
	require.NoError(t, Migrate(ctx, db, nil))

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"))
	require.ElementsMatch(t, []string{
		"audit_logs", "bookmarks", "categories", "courses",
		"enrollments", "lessons", "modules", "notes", "user_progress", "users",
	}, tables)

	seedCfg := config.SeedConfig{AdminEmail: "admin@example.com", AdminPassword: "changeme123"}
	require.NoError(t, Seed(ctx, db, seedCfg, nil))
	require.NoError(t, Seed(ctx, db, seedCfg, nil))

	counts := map[string]int{}
	for _, table := range []string{"users", "categories", "courses"} {
		var n int
		require.NoError(t, db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table))
		counts[table] = n
	}
	require.Equal(t, 2, counts["users"])
	require.Equal(t, 4, counts["categories"])
	require.Equal(t, 4, counts["courses"])
}

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil))
	require.False(t, IsUniqueViolation(errors.New("no such table: users")))
	require.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", errors.New("UNIQUE constraint failed: enrollments.user_id, enrollments.course_id"))))
}

func TestIsDuplicateColumn(t *testing.T) {
	require.False(t, isDuplicateColumn(nil))
	require.False(t, isDuplicateColumn(errors.New("syntax error")))
	require.True(t, isDuplicateColumn(errors.New(`SQL logic error: duplicate column name: bio (1)`)))
}
