package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/seeker-tracker/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, skipping the test when it is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.EnsureSchema(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE TABLE identity_company_cache")
	require.NoError(t, err)

	return db
}
