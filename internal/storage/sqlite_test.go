package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investbot-app/investbot/internal/model"
)

func setupTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func seedTestUser(t *testing.T, store *SQLiteStorage, id, phone string) *model.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), &model.User{
		ID:       id,
		Phone:    phone,
		Name:     "User " + id,
		Email:    id + "@example.com",
		IsActive: true,
	})
	require.NoError(t, err)
	return user
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestDB(t)

	assert.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestDataSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "investbot.db")
	ctx := context.Background()

	store1, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Migrate(ctx))
	_, err = store1.CreateUser(ctx, &model.User{
		ID: "u1", Phone: "5511999990000", Name: "Maria", Email: "maria@example.com", IsActive: true,
	})
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	store2, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()
	require.NoError(t, store2.Migrate(ctx))

	user, err := store2.GetUserByPhone(ctx, "5511999990000")
	require.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)
}
