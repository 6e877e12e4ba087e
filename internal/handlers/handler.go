package handlers

import (
	"net/http"
	"time"

	"task_manager/internal/config"
	"task_manager/internal/logger"
	"task_manager/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the HTTP-edge settings that come from config.
type Options struct {
	AllowedOrigins []string
	RateLimit      config.RateLimit
	ServiceName    string
	TokenTTL       time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
	limiter  *ipRateLimiter
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log is
// replaced by a no-op logger.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{services: services, log: log, opts: opts}
	if opts.RateLimit.Enabled {
		h.limiter = newIPRateLimiter(opts.RateLimit.RPS, opts.RateLimit.Burst)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		h.requestID,
		h.tracing(),
		h.accessLog,
		h.cors,
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	api := router.Group("/api")
	h.registerAuthRoutes(api)
	h.registerTaskRoutes(api)

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.rateLimit, h.register)
		auth.POST("/login", h.rateLimit, h.login)
		auth.GET("/me", h.authenticate, h.me)
		auth.DELETE("/me", h.authenticate, h.deleteMe)
	}
}

func (h *Handler) registerTaskRoutes(api *gin.RouterGroup) {
	tasks := api.Group("/:user_id/tasks", h.authenticate, h.authorizeOwner)
	{
		tasks.GET("", h.listTasks)
		tasks.POST("", h.createTask)
		tasks.GET("/ws", h.wsConnect)
		tasks.GET("/:id", h.getTask)
		tasks.PUT("/:id", h.updateTask)
		tasks.DELETE("/:id", h.deleteTask)
	}
}

// health godoc
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
