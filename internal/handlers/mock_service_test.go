package handlers

import (
	"context"
	"net/http"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	token        string
	tokenErr     error
	deleteErr    error

	// tokens maps bearer tokens to users for Authenticate
	tokens map[string]models.User

	lastRegister   service.RegisterInput
	lastIdentifier string
	lastPassword   string
	deletedIDs     []int
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (models.User, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAuth) GenerateToken(_ context.Context, identifier, password string) (string, error) {
	m.lastIdentifier = identifier
	m.lastPassword = password
	return m.token, m.tokenErr
}

func (m *mockAuth) Authenticate(_ context.Context, token string) (models.User, error) {
	if u, ok := m.tokens[token]; ok {
		return u, nil
	}
	return models.User{}, service.ErrInvalidToken
}

func (m *mockAuth) DeleteAccount(_ context.Context, userID int) error {
	m.deletedIDs = append(m.deletedIDs, userID)
	return m.deleteErr
}

type taskCall struct {
	ownerID int
	taskID  int
}

type mockTasks struct {
	task  models.Task
	tasks []models.Task
	err   error

	lastCreate service.TaskInput
	lastPatch  models.TaskPatch
	calls      []taskCall
}

func (m *mockTasks) CreateTask(_ context.Context, ownerID int, in service.TaskInput) (models.Task, error) {
	m.calls = append(m.calls, taskCall{ownerID: ownerID})
	m.lastCreate = in
	return m.task, m.err
}

func (m *mockTasks) ListTasks(_ context.Context, ownerID int) ([]models.Task, error) {
	m.calls = append(m.calls, taskCall{ownerID: ownerID})
	return m.tasks, m.err
}

func (m *mockTasks) GetTask(_ context.Context, ownerID, taskID int) (models.Task, error) {
	m.calls = append(m.calls, taskCall{ownerID: ownerID, taskID: taskID})
	return m.task, m.err
}

func (m *mockTasks) UpdateTask(_ context.Context, ownerID, taskID int, patch models.TaskPatch) (models.Task, error) {
	m.calls = append(m.calls, taskCall{ownerID: ownerID, taskID: taskID})
	m.lastPatch = patch
	return m.task, m.err
}

func (m *mockTasks) DeleteTask(_ context.Context, ownerID, taskID int) error {
	m.calls = append(m.calls, taskCall{ownerID: ownerID, taskID: taskID})
	return m.err
}

// ---- Shared Test Helpers ----

const (
	aliceToken = "tok-alice"
	bobToken   = "tok-bob"
)

func newMockAuth() *mockAuth {
	return &mockAuth{tokens: map[string]models.User{
		aliceToken: {ID: 1, Username: "alice", Email: "alice@example.com"},
		bobToken:   {ID: 2, Username: "bob", Email: "bob@example.com"},
	}}
}

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
