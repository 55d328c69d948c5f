package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, &model.User{
		ID: "u1", Phone: "5511999990000", Name: "Maria Silva",
		Email: "maria@example.com", IsActive: true,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	byPhone, err := store.GetUserByPhone(ctx, "5511999990000")
	require.NoError(t, err)
	assert.Equal(t, "u1", byPhone.ID)
	assert.Equal(t, "Maria Silva", byPhone.Name)
	assert.True(t, byPhone.IsActive)

	byID, err := store.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, byPhone.Phone, byID.Phone)
}

func TestGetUserNotFound(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	_, err := store.GetUserByPhone(ctx, "5511000000000")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateUserDuplicatePhone(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	seedTestUser(t, store, "u1", "5511999990000")

	_, err := store.CreateUser(ctx, &model.User{
		ID: "u2", Phone: "5511999990000", Name: "Outro", Email: "outro@example.com", IsActive: true,
	})
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestCreateUserValidation(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		user *model.User
		name string
	}{
		{nil, "nil user"},
		{&model.User{Phone: "551", Name: "x"}, "missing id"},
		{&model.User{ID: "u1", Name: "x"}, "missing phone"},
		{&model.User{ID: "u1", Phone: "551"}, "missing name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateUser(ctx, tt.user)
			assert.Error(t, err)
		})
	}
}

func TestGetAllActiveUsersFiltersInactive(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	seedTestUser(t, store, "u1", "5511999990001")
	seedTestUser(t, store, "u2", "5511999990002")
	_, err := store.CreateUser(ctx, &model.User{
		ID: "u3", Phone: "5511999990003", Name: "Inativo", Email: "i@example.com", IsActive: false,
	})
	require.NoError(t, err)

	users, err := store.GetAllActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		assert.True(t, user.IsActive)
	}
}
