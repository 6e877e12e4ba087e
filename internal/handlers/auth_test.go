package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/service"
)

func TestAuthHandlers_Register(t *testing.T) {
	auth := newMockAuth()
	auth.registerUser = models.User{ID: 42, Username: "u", Email: "u@example.com", PasswordHash: "secret-hash"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"u","email":"u@example.com","password":"password123"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret-hash") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response leaks credentials: %s", w.Body.String())
	}
	var m map[string]any
	decodeBody(t, w, &m)
	if int(m["id"].(float64)) != 42 || m["email"] != "u@example.com" {
		t.Fatalf("unexpected body: %v", m)
	}
	if auth.lastRegister.Password != "password123" {
		t.Fatalf("password not forwarded: %+v", auth.lastRegister)
	}
}

func TestAuthHandlers_RegisterErrors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"bad json", `{"username":1}`, nil, http.StatusBadRequest, "invalid request body"},
		{"missing field", `{"username":"u","password":"password123"}`, nil, http.StatusBadRequest, "invalid request body"},
		{"username taken", `{"username":"u","email":"e@x.io","password":"password123"}`, service.ErrUsernameTaken, http.StatusBadRequest, "Username already registered"},
		{"email taken", `{"username":"u","email":"e@x.io","password":"password123"}`, service.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"validation", `{"username":"u","email":"e@x.io","password":"short"}`,
			fmt.Errorf("%w: password must be at least 8 characters", service.ErrValidation),
			http.StatusBadRequest, "password must be at least 8 characters"},
		{"store down", `{"username":"u","email":"e@x.io","password":"password123"}`, errors.New("db down"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := newMockAuth()
			auth.registerErr = tc.err
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doRequest(t, r, http.MethodPost, "/api/auth/register", tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if got := errorMessage(t, w); got != tc.wantMsg {
				t.Fatalf("error=%q want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	auth := newMockAuth()
	auth.token = "tok123"
	r := newTestRouterWith(&service.Service{Authorization: auth}, Options{TokenTTL: 30 * time.Minute})

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"u@example.com","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp tokenResponse
	decodeBody(t, w, &resp)
	if resp.AccessToken != "tok123" || resp.TokenType != "bearer" || resp.ExpiresIn != 1800 {
		t.Fatalf("unexpected token response: %+v", resp)
	}
	if auth.lastIdentifier != "u@example.com" || auth.lastPassword != "p" {
		t.Fatalf("credentials not forwarded: %q %q", auth.lastIdentifier, auth.lastPassword)
	}

	// invalid body → 400
	w = doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":1}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_LoginInvalidCredentials(t *testing.T) {
	auth := newMockAuth()
	auth.tokenErr = service.ErrInvalidCredentials
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", `{"username":"u","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != "Incorrect username or password" {
		t.Fatalf("unexpected error %q", got)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("missing WWW-Authenticate header")
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: newMockAuth()})

	w := doRequest(t, r, http.MethodGet, "/api/auth/me", "", authHeader(aliceToken))
	if w.Code != http.StatusOK {
		t.Fatalf("me status=%d, body=%s", w.Code, w.Body.String())
	}
	var u models.User
	decodeBody(t, w, &u)
	if u.ID != 1 || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", "", authHeader("forged"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestAuthHandlers_DeleteMe(t *testing.T) {
	auth := newMockAuth()
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doRequest(t, r, http.MethodDelete, "/api/auth/me", "", authHeader(bobToken))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d, body=%s", w.Code, w.Body.String())
	}
	if len(auth.deletedIDs) != 1 || auth.deletedIDs[0] != 2 {
		t.Fatalf("expected deletion of user 2, got %v", auth.deletedIDs)
	}

	w = doRequest(t, r, http.MethodDelete, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if len(auth.deletedIDs) != 1 {
		t.Fatalf("unauthenticated request must not delete")
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doRequest(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}
