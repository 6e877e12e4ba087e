package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

// memStore is an in-memory UnitOfWork for service tests. Do holds a lock for
// the whole callback, and a failing callback restores the previous snapshot.
type memStore struct {
	mu     sync.Mutex
	users  map[int]models.User
	tasks  map[int]models.Task
	nextID int

	doErr   error // returned by Do without running fn
	doCalls int
}

func newMemStore() *memStore {
	return &memStore{users: map[int]models.User{}, tasks: map[int]models.Task{}}
}

func (m *memStore) Do(ctx context.Context, fn func(repository.Stores) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doCalls++
	if m.doErr != nil {
		return m.doErr
	}

	users := make(map[int]models.User, len(m.users))
	for k, v := range m.users {
		users[k] = v
	}
	tasks := make(map[int]models.Task, len(m.tasks))
	for k, v := range m.tasks {
		tasks[k] = v
	}
	nextID := m.nextID

	if err := fn(repository.Stores{Users: memUsers{m}, Tasks: memTasks{m}}); err != nil {
		m.users, m.tasks, m.nextID = users, tasks, nextID
		return err
	}
	return nil
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

type memUsers struct{ m *memStore }

func (u memUsers) Create(_ context.Context, user models.User) (int, error) {
	for _, existing := range u.m.users {
		if existing.Username == user.Username {
			return 0, repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}
	user.ID = u.m.id()
	u.m.users[user.ID] = user
	return user.ID, nil
}

func (u memUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	if user, ok := u.m.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (u memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range u.m.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, nil
}

func (u memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range u.m.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (u memUsers) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	if user, _ := u.GetByUsername(ctx, identifier); user != nil {
		return user, nil
	}
	return u.GetByEmail(ctx, identifier)
}

func (u memUsers) Delete(_ context.Context, id int) error {
	if _, ok := u.m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(u.m.users, id)
	return nil
}

type memTasks struct{ m *memStore }

func (t memTasks) Create(_ context.Context, task models.Task) (int, error) {
	task.ID = t.m.id()
	t.m.tasks[task.ID] = task
	return task.ID, nil
}

func (t memTasks) ListByOwner(_ context.Context, ownerID int) ([]models.Task, error) {
	out := []models.Task{}
	for _, task := range t.m.tasks {
		if task.UserID == ownerID {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t memTasks) Get(_ context.Context, ownerID, taskID int) (*models.Task, error) {
	task, ok := t.m.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, nil
	}
	return &task, nil
}

func (t memTasks) Update(_ context.Context, ownerID, taskID int, p models.TaskPatch, at time.Time) error {
	task, ok := t.m.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return repository.ErrNotFound
	}
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		task.Description = &d
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	task.UpdatedAt = at.UTC()
	t.m.tasks[taskID] = task
	return nil
}

func (t memTasks) Delete(_ context.Context, ownerID, taskID int) error {
	task, ok := t.m.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(t.m.tasks, taskID)
	return nil
}

func (t memTasks) DeleteByOwner(_ context.Context, ownerID int) (int64, error) {
	var n int64
	for id, task := range t.m.tasks {
		if task.UserID == ownerID {
			delete(t.m.tasks, id)
			n++
		}
	}
	return n, nil
}
