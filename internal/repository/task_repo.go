package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository/db"
)

type TaskRepository struct {
	db     DBTX
	driver string
}

func NewTaskRepository(q DBTX, driver string) *TaskRepository {
	return &TaskRepository{db: q, driver: driver}
}

// Ensure implementation of Tasks interface at compile time.
var _ Tasks = (*TaskRepository)(nil)

const (
	taskColumns = `id, title, description, completed, user_id, created_at, updated_at`

	insertTaskSQL = `INSERT INTO tasks (title, description, completed, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`

	selectTasksByOwnerSQL = `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY id ASC`
	selectTaskSQL         = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	deleteTaskSQL         = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	deleteTasksByOwnerSQL = `DELETE FROM tasks WHERE user_id = ?`
)

// Create inserts a task and returns its ID.
func (r *TaskRepository) Create(ctx context.Context, t models.Task) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, db.Rebind(r.driver, insertTaskSQL),
		t.Title,
		nullString(t.Description),
		t.Completed,
		t.UserID,
		t.CreatedAt.UTC(),
		t.UpdatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert task for user %d: %w", t.UserID, err)
	}
	return id, nil
}

// ListByOwner returns the owner's tasks in insertion order.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, db.Rebind(r.driver, selectTasksByOwnerSQL), ownerID)
	if err != nil {
		return nil, fmt.Errorf("select tasks for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task for user %d: %w", ownerID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks for user %d: %w", ownerID, err)
	}
	return out, nil
}

// Get fetches a task owned by ownerID. Returns (nil, nil) if it does not exist
// or belongs to someone else.
func (r *TaskRepository) Get(ctx context.Context, ownerID, taskID int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, db.Rebind(r.driver, selectTaskSQL), taskID, ownerID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task %d: %w", taskID, err)
	}
	return &t, nil
}

// Update writes only the fields present in p and bumps updated_at.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID int, p models.TaskPatch, at time.Time) error {
	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *p.Completed)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, at.UTC(), taskID, ownerID)

	q := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, db.Rebind(r.driver, q), args...)
	if err != nil {
		return fmt.Errorf("update task %d: %w", taskID, err)
	}
	return requireAffected(res, taskID)
}

// Delete removes a task owned by ownerID.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID int) error {
	res, err := r.db.ExecContext(ctx, db.Rebind(r.driver, deleteTaskSQL), taskID, ownerID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	return requireAffected(res, taskID)
}

// DeleteByOwner removes every task of ownerID and reports how many went.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID int) (int64, error) {
	res, err := r.db.ExecContext(ctx, db.Rebind(r.driver, deleteTasksByOwnerSQL), ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete tasks for user %d: %w", ownerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for user %d tasks: %w", ownerID, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t    models.Task
		desc sql.NullString
	)
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&desc,
		&t.Completed,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return models.Task{}, err
	}
	if desc.Valid {
		s := desc.String
		t.Description = &s
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func requireAffected(res sql.Result, taskID int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for task %d: %w", taskID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
