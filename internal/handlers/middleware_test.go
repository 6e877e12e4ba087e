package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil, Options{})
	r.GET("/secure", h.authenticate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": c.GetInt(ctxUserID)})
	})
	r.GET("/owners/:user_id", h.authenticate, h.authorizeOwner, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthenticate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "missing Authorization header"},
		{"invalid scheme", "Token abc", "invalid Authorization header format"},
		{"bearer without token", "Bearer", "invalid Authorization header format"},
		{"bearer blank token", "Bearer   ", "invalid Authorization header format"},
		{"unknown token", "Bearer nope", "Could not validate credentials"},
	}

	r := newMiddlewareOnlyRouter(&service.Service{Authorization: newMockAuth()})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set("Authorization", tc.header)
			}
			w := doRequest(t, r, http.MethodGet, "/secure", "", h)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d want 401", w.Code)
			}
			if got := errorMessage(t, w); got != tc.wantMsg {
				t.Fatalf("error=%q want %q", got, tc.wantMsg)
			}
			if w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatalf("missing WWW-Authenticate header")
			}
		})
	}
}

func TestAuthenticate_SetsUser(t *testing.T) {
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: newMockAuth()})

	h := http.Header{}
	h.Set("Authorization", "bearer "+bobToken)
	w := doRequest(t, r, http.MethodGet, "/secure", "", h)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	decodeBody(t, w, &m)
	if int(m["userId"].(float64)) != 2 {
		t.Fatalf("expected userId 2, got %v", m["userId"])
	}
}

func TestAuthorizeOwner(t *testing.T) {
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: newMockAuth()})

	cases := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"own id", "/owners/1", http.StatusOK},
		{"other id", "/owners/2", http.StatusForbidden},
		{"non-numeric", "/owners/abc", http.StatusBadRequest},
		{"zero", "/owners/0", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodGet, tc.path, "", authHeader(aliceToken))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := doRequest(t, r, http.MethodGet, "/health", "", nil)
	if id := w.Header().Get(requestIDHeader); len(id) != 36 {
		t.Fatalf("expected generated uuid request id, got %q", id)
	}

	h := http.Header{}
	h.Set(requestIDHeader, "abc-123")
	w = doRequest(t, r, http.MethodGet, "/health", "", h)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouterWith(&service.Service{}, Options{AllowedOrigins: []string{"https://app.example.com"}})

	preflight := func(origin string) *httptest.ResponseRecorder {
		h := http.Header{}
		h.Set("Origin", origin)
		h.Set("Access-Control-Request-Method", http.MethodPost)
		return doRequest(t, r, http.MethodOptions, "/api/auth/login", "", h)
	}

	w := preflight("https://app.example.com")
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("missing allow-origin header: %v", w.Header())
	}

	if w := preflight("https://evil.example.com"); w.Code != http.StatusForbidden {
		t.Fatalf("foreign preflight status=%d want 403", w.Code)
	}

	h := http.Header{}
	h.Set("Origin", "https://evil.example.com")
	w = doRequest(t, r, http.MethodGet, "/health", "", h)
	if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("foreign simple request: %d %v", w.Code, w.Header())
	}
}
