package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Context keys set by middleware.
const (
	ctxUser      = "user"
	ctxUserID    = "userId"
	ctxRequestID = "requestId"
)

const requestIDHeader = "X-Request-ID"

// authenticate resolves the bearer token to a user and stores it in the context.
func (h *Handler) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.unauthorized(c, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		h.unauthorized(c, "invalid Authorization header format")
		return
	}

	user, err := h.services.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		h.writeServiceError(c, err)
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(ctxUser, user)
	c.Set(ctxUserID, user.ID)
	c.Next()
}

func (h *Handler) unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// authorizeOwner rejects requests whose :user_id is not the authenticated user.
func (h *Handler) authorizeOwner(c *gin.Context) {
	ownerID, ok := h.pathID(c, "user_id")
	if !ok {
		c.Abort()
		return
	}
	if err := service.AuthorizeOwner(ownerID, currentUser(c)); err != nil {
		h.log.Infow("owner_check_failed", "owner_id", ownerID, "user_id", c.GetInt(ctxUserID))
		h.writeServiceError(c, err)
		c.Abort()
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) models.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return models.User{}
	}
	u, _ := v.(models.User)
	return u
}

// pathID parses a positive integer path parameter, writing 400 on failure.
func (h *Handler) pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// requestID propagates or assigns X-Request-ID.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (h *Handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	fields := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", time.Since(start),
		"request_id", c.GetString(ctxRequestID),
		"client_ip", c.ClientIP(),
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.log.Errorw("http_request", fields...)
	case status >= http.StatusBadRequest:
		h.log.Warnw("http_request", fields...)
	default:
		h.log.Infow("http_request", fields...)
	}
}

// tracing starts a server span per request. With no tracer provider
// installed the global no-op tracer makes this free.
func (h *Handler) tracing() gin.HandlerFunc {
	name := h.opts.ServiceName
	if name == "" {
		name = "task-manager"
	}
	tracer := otel.Tracer(name)

	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("request.id", c.GetString(ctxRequestID)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// cors allows configured browser origins. An empty list disables CORS headers.
func (h *Handler) cors(c *gin.Context) {
	origin := c.GetHeader("Origin")
	if origin == "" || !h.originAllowed(origin) {
		if c.Request.Method == http.MethodOptions && origin != "" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
		return
	}

	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Access-Control-Allow-Credentials", "true")
	c.Header("Vary", "Origin")
	if c.Request.Method == http.MethodOptions {
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, "+requestIDHeader)
		c.Header("Access-Control-Max-Age", "600")
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func (h *Handler) originAllowed(origin string) bool {
	for _, o := range h.opts.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
