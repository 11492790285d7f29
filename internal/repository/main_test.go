package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"organizer-bot/internal/model"
	"organizer-bot/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory SQLite gives every connection its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func createUser(t *testing.T, db *gorm.DB, id int64) *model.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).GetOrCreate(context.Background(), id, "user", "User")
	require.NoError(t, err)
	return user
}
