package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "seedrowz-backend/internal/auth"
	"seedrowz-backend/internal/evaluations"
	"seedrowz-backend/internal/services/health"
	"seedrowz-backend/internal/shared/config"
	"seedrowz-backend/internal/shared/metrics"
	"seedrowz-backend/internal/shared/server/middleware"
	"seedrowz-backend/internal/shared/server/respond"
	"seedrowz-backend/internal/users"
)

// RouterDeps contains handler dependencies for routing.
type RouterDeps struct {
	Config            config.Config
	Tokens            middleware.TokenVerifier
	Health            *health.Service
	EvaluationHandler *evaluations.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Seedrowz backend running")
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		body, ok := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, body)
	})
	api.Use(middleware.Authenticate(deps.Tokens))

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api.Group("/users"))
	}
	if deps.EvaluationHandler != nil {
		evalGroup := api.Group("")
		if deps.Config.RequireAuth {
			evalGroup.Use(middleware.RequireAuth())
		}
		deps.EvaluationHandler.RegisterRoutes(evalGroup)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
