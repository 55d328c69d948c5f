package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
)

const goalColumns = "id, user_id, title, category, status, target_amount, current_amount, deadline, created_at"

// GetUserGoals returns all of a user's goals, newest first.
func (s *SQLiteStorage) GetUserGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return goals, nil
}

// CreateGoal inserts a new goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	status := goal.Status
	if status == "" {
		status = model.GoalStatusActive
	}

	var deadline any
	if !goal.Deadline.IsZero() {
		deadline = goal.Deadline
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, title, category, status, target_amount, current_amount, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, goal.ID, goal.UserID, goal.Title, goal.Category, string(status),
		goal.TargetAmount.String(), goal.CurrentAmount.String(), deadline)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", mapConstraintErr(err))
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE id = ?", goal.ID)
	return scanGoal(row)
}

// UpdateGoal rewrites a goal's mutable fields. A missing goal returns
// common.ErrNotFound.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	var deadline any
	if !goal.Deadline.IsZero() {
		deadline = goal.Deadline
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET title = ?, category = ?, status = ?, target_amount = ?, current_amount = ?, deadline = ?
		WHERE id = ? AND user_id = ?
	`, goal.Title, goal.Category, string(goal.Status), goal.TargetAmount.String(),
		goal.CurrentAmount.String(), deadline, goal.ID, goal.UserID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check goal update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanGoal(scanner rowScanner) (*model.Goal, error) {
	var goal model.Goal
	var status, target, current string
	var deadline sql.NullTime
	if err := scanner.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Category,
		&status, &target, &current, &deadline, &goal.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return nil, fmt.Errorf("corrupt target amount %q for goal %s: %w", target, goal.ID, err)
	}
	currentAmount, err := decimal.NewFromString(current)
	if err != nil {
		return nil, fmt.Errorf("corrupt current amount %q for goal %s: %w", current, goal.ID, err)
	}

	goal.Status = model.GoalStatus(status)
	goal.TargetAmount = targetAmount
	goal.CurrentAmount = currentAmount
	if deadline.Valid {
		goal.Deadline = deadline.Time
	}
	return &goal, nil
}
