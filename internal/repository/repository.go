package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"task_manager/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Users interface {
	Create(ctx context.Context, u models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

type Tasks interface {
	Create(ctx context.Context, t models.Task) (int, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Task, error)
	Get(ctx context.Context, ownerID, taskID int) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID int, p models.TaskPatch, at time.Time) error
	Delete(ctx context.Context, ownerID, taskID int) error
	DeleteByOwner(ctx context.Context, ownerID int) (int64, error)
}

// Stores are the repositories bound to one transaction.
type Stores struct {
	Users Users
	Tasks Tasks
}

// UnitOfWork runs fn inside a single transaction: commit when fn returns nil,
// rollback otherwise (including panics).
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Stores) error) error
}

type Repository struct {
	db     *sql.DB
	driver string
}

// Ensure implementation of UnitOfWork interface at compile time.
var _ UnitOfWork = (*Repository)(nil)

func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{db: db, driver: driver}
}

func (r *Repository) Do(ctx context.Context, fn func(Stores) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback()
	}()

	if err := fn(r.stores(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) stores(q DBTX) Stores {
	return Stores{
		Users: NewUserRepository(q, r.driver),
		Tasks: NewTaskRepository(q, r.driver),
	}
}
