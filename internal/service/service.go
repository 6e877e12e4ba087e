package service

import (
	"context"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	GenerateToken(ctx context.Context, identifier, password string) (string, error)
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
	DeleteAccount(ctx context.Context, userID int) error
}

// Tasks exposes task CRUD scoped to an already authorized owner.
type Tasks interface {
	CreateTask(ctx context.Context, ownerID int, in TaskInput) (models.Task, error)
	ListTasks(ctx context.Context, ownerID int) ([]models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID int) (models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID int, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID int) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Tasks
}

// NewService wires the unit of work and the credential primitives into concrete services.
func NewService(uow repository.UnitOfWork, hasher *PasswordHasher, tokens *TokenManager) *Service {
	return &Service{
		Authorization: NewAuthService(uow, hasher, tokens),
		Tasks:         NewTaskService(uow),
	}
}
