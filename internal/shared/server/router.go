package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder-backend/internal/auth"
	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/sessions"
	sharedauth "resume-builder-backend/internal/shared/auth"
	"resume-builder-backend/internal/shared/config"
	"resume-builder-backend/internal/shared/metrics"
	"resume-builder-backend/internal/shared/server/middleware"
	"resume-builder-backend/internal/shared/server/respond"
	localstore "resume-builder-backend/internal/shared/storage/object/local"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	Tokens          *sharedauth.Manager
	SessionsHandler *sessions.Handler
	ResumesHandler  *resumes.Handler
	GoogleAuth      *googleauth.GoogleService
	LocalStore      *localstore.Store
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.SessionsHandler != nil {
		deps.SessionsHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}

	// The local store doubles as the public file host; S3 serves its own URLs.
	if deps.LocalStore != nil {
		r.GET("/files/*key", func(c *gin.Context) {
			key := strings.TrimPrefix(c.Param("key"), "/")
			deps.LocalStore.ServeHTTP(c.Writer, c.Request, key)
		})
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
