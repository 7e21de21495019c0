package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder-backend/internal/auth"
	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/sessions"
	sharedauth "resume-builder-backend/internal/shared/auth"
	"resume-builder-backend/internal/shared/config"
	"resume-builder-backend/internal/shared/server"
	"resume-builder-backend/internal/shared/storage/db"
	"resume-builder-backend/internal/shared/storage/object"
	localstore "resume-builder-backend/internal/shared/storage/object/local"
	s3store "resume-builder-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	LocalStore      *localstore.Store
	Tokens          *sharedauth.Manager
	SessionsRepo    sessions.Repo
	ResumesRepo     resumes.Repo
	SessionsService *sessions.Service
	ResumesService  *resumes.Service
	SessionsHandler *sessions.Handler
	ResumesHandler  *resumes.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tokens: sharedauth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	if err := buildStore(ctx, app); err != nil {
		return nil, err
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		Tokens:          app.Tokens,
		SessionsHandler: app.SessionsHandler,
		ResumesHandler:  app.ResumesHandler,
		GoogleAuth:      app.GoogleAuth,
		LocalStore:      app.LocalStore,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			_ = sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, app *App) error {
	switch app.Config.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(app.Config.AWSRegion) == "" || strings.TrimSpace(app.Config.S3Bucket) == "" {
			return fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		store, err := s3store.New(ctx, app.Config.AWSRegion, app.Config.S3Bucket, app.Config.S3Prefix)
		if err != nil {
			return err
		}
		app.Store = store
	default:
		local := localstore.New(app.Config.LocalStoreDir, app.Config.PublicBaseURL)
		app.Store = local
		app.LocalStore = local
	}
	return nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.SessionsRepo = &sessions.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.SessionsRepo = sessions.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.SessionsService = sessions.NewService(app.SessionsRepo, app.Tokens)
	app.ResumesService = &resumes.Service{Repo: app.ResumesRepo, Store: app.Store}

	app.SessionsHandler = sessions.NewHandler(app.SessionsService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.SessionsService,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
