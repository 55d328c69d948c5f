package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
)

const userColumns = "id, phone, name, email, is_active, created_at"

// GetUserByPhone loads a user by phone number.
func (s *SQLiteStorage) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(phone, "phone"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone = ?", phone)
	return scanUser(row)
}

// GetUserByID loads a user by ID.
func (s *SQLiteStorage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// CreateUser inserts a new user. A phone collision returns
// common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, phone, name, email, is_active)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Phone, user.Name, user.Email, user.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapConstraintErr(err))
	}

	return s.GetUserByID(ctx, user.ID)
}

// GetAllActiveUsers lists users eligible for notifications, oldest first.
func (s *SQLiteStorage) GetAllActiveUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE is_active = 1 ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Phone, &user.Name, &user.Email,
			&user.IsActive, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Phone, &user.Name, &user.Email,
		&user.IsActive, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
