package service

import (
	"context"
	"errors"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

// TaskInput is the create payload.
type TaskInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// TaskService implements owner-scoped task operations. Callers must have
// authorized ownerID against the authenticated user beforehand.
type TaskService struct {
	uow repository.UnitOfWork
	now func() time.Time
}

func NewTaskService(uow repository.UnitOfWork) *TaskService {
	return &TaskService{uow: uow, now: time.Now}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID int, in TaskInput) (models.Task, error) {
	if err := validateStruct(in); err != nil {
		return models.Task{}, err
	}

	now := s.now().UTC()
	task := models.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.uow.Do(ctx, func(st repository.Stores) error {
		id, err := st.Tasks.Create(ctx, task)
		if err != nil {
			return err
		}
		task.ID = id
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID int) ([]models.Task, error) {
	var tasks []models.Task
	err := s.uow.Do(ctx, func(st repository.Stores) error {
		var err error
		tasks, err = st.Tasks.ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns ErrTaskNotFound both for missing tasks and for tasks of other owners.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID int) (models.Task, error) {
	var task models.Task
	err := s.uow.Do(ctx, func(st repository.Stores) error {
		var err error
		task, err = getOwned(ctx, st, ownerID, taskID)
		return err
	})
	return task, err
}

// UpdateTask applies only the fields set in patch.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID int, patch models.TaskPatch) (models.Task, error) {
	if patch.Title != nil {
		if err := validateField("title", *patch.Title, "required,max=200"); err != nil {
			return models.Task{}, err
		}
	}
	if patch.Description != nil {
		if err := validateField("description", *patch.Description, "max=2000"); err != nil {
			return models.Task{}, err
		}
	}

	var task models.Task
	err := s.uow.Do(ctx, func(st repository.Stores) error {
		if !patch.IsEmpty() {
			err := st.Tasks.Update(ctx, ownerID, taskID, patch, s.now())
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTaskNotFound
			}
			if err != nil {
				return err
			}
		}
		var err error
		task, err = getOwned(ctx, st, ownerID, taskID)
		return err
	})
	return task, err
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID int) error {
	return s.uow.Do(ctx, func(st repository.Stores) error {
		err := st.Tasks.Delete(ctx, ownerID, taskID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	})
}

func getOwned(ctx context.Context, st repository.Stores, ownerID, taskID int) (models.Task, error) {
	t, err := st.Tasks.Get(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if t == nil {
		return models.Task{}, ErrTaskNotFound
	}
	return *t, nil
}
