package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"veab-goa.backend/internal/config"
	"veab-goa.backend/internal/domain/entities"
	domainRepos "veab-goa.backend/internal/domain/repositories"
	"veab-goa.backend/internal/infrastructure/datasources/postgres"
	"veab-goa.backend/internal/infrastructure/docstore"
	"veab-goa.backend/internal/infrastructure/jobs"
	"veab-goa.backend/internal/infrastructure/objectstore"
	"veab-goa.backend/internal/infrastructure/repositories"
	"veab-goa.backend/internal/interfaces/http/handlers"
	"veab-goa.backend/internal/interfaces/http/middleware"
	"veab-goa.backend/internal/usecases"
	"veab-goa.backend/pkg/jwt"
	"veab-goa.backend/pkg/logger"
	"veab-goa.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	migrateDB       = postgres.Migrate
	connectMongo    = docstore.Connect
	newSessionStore = redis.NewSessionStore
	newObjectStore  = func(ctx context.Context, cfg objectstore.Config) (domainRepos.ObjectStore, error) {
		return objectstore.New(ctx, cfg)
	}
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

// contentStores holds one repository per collection. A nil repository
// means the backend is unreachable and the matching usecase answers with
// a database connection error.
type contentStores struct {
	members  domainRepos.TeamMemberRepository
	articles domainRepos.ArticleRepository
	projects domainRepos.ProjectRepository
	contacts domainRepos.ContactMessageRepository
	close    func()
}

func runMainProcess() error {
	// Load .env file
	envErr := loadDotenv()

	cfg := loadCfg()

	initLog(cfg.Server.Env, cfg.Server.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if envErr != nil {
		logger.Info(ctx, "No .env file found, using environment variables")
	}
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	stores := openStores(ctx, cfg)
	defer stores.close()

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	var store domainRepos.ObjectStore
	if cfg.Storage.Enabled() {
		store, err = newObjectStore(ctx, objectstore.Config{
			Bucket:       cfg.Storage.Bucket,
			Region:       cfg.Storage.Region,
			AccessKey:    cfg.Storage.AccessKeyID,
			SecretKey:    cfg.Storage.SecretAccessKey,
			Endpoint:     cfg.Storage.Endpoint,
			UsePathStyle: cfg.Storage.UsePathStyle,
			PartSize:     cfg.Storage.UploadPartSize,
		})
		if err != nil {
			logger.Warn(ctx, "Object store not available, uploads disabled", zap.Error(err))
			store = nil
		}
	} else {
		logger.Warn(ctx, "S3_BUCKET not set, uploads disabled")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Initialize usecases
	urlCache := redis.NewURLCache()
	uploads := usecases.NewUploadPipeline(store, urlCache, usecases.UploadPipelineConfig{
		MaxBytes:      cfg.Storage.MaxUploadBytes,
		StallTimeout:  cfg.Storage.StallTimeout,
		DeleteTimeout: cfg.Storage.DeleteTimeout,
	})
	resolver := usecases.NewImageResolver(store, urlCache, cfg.Server.BasePath, cfg.Storage.SignedURLExpiry, cfg.Storage.ResolveWorkers)
	teamUsecase := usecases.NewTeamMemberUsecase(stores.members, uploads, resolver)
	articleUsecase := usecases.NewArticleUsecase(stores.articles)
	projectUsecase := usecases.NewProjectUsecase(stores.projects)
	contactUsecase := usecases.NewContactUsecase(stores.contacts)

	if cfg.Admin.Email == "" || cfg.Admin.PasswordHash == "" {
		logger.Warn(ctx, "ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, admin login disabled")
	}
	authUsecase := usecases.NewAuthUsecase(entities.AdminUser{
		Email:        cfg.Admin.Email,
		Name:         cfg.Admin.Name,
		PasswordHash: cfg.Admin.PasswordHash,
	}, jwtService, sessionStore, cfg.JWT.RefreshExpiry)

	secureCookies := cfg.Server.Env == "production"

	// Start background jobs
	var sweeper *jobs.OrphanImageSweeper
	if store != nil && stores.members != nil {
		sweeper = jobs.NewOrphanImageSweeper(stores.members, store, cfg.Jobs.OrphanSweepInterval, cfg.Jobs.OrphanGracePeriod)
		go sweeper.Start(ctx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       handlers.NewAuthHandler(authUsecase, cfg.JWT.RefreshExpiry, secureCookies),
		teamMemberHandler: handlers.NewTeamMemberHandler(teamUsecase, cfg.Storage.MaxUploadBytes),
		articleHandler:    handlers.NewArticleHandler(articleUsecase),
		projectHandler:    handlers.NewProjectHandler(projectUsecase),
		contactHandler:    handlers.NewContactHandler(contactUsecase),
		authMiddleware:    middleware.AuthMiddleware(jwtService, authUsecase),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)
		select {
		case <-quit:
		case <-done:
			return
		}
		logger.Info(ctx, "Shutting down server")
		if sweeper != nil {
			sweeper.Stop()
		}
		cancel()
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "Server shutdown failed", zap.Error(err))
		}
	}()
	defer close(done)

	logger.Info(ctx, "VEAB Goa backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("documentStore", cfg.DocumentStore.Backend),
		zap.Bool("uploads", store != nil),
	)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// openStores connects the configured document backend. Connection failures
// are logged and leave the repositories nil so the server still boots.
func openStores(ctx context.Context, cfg *config.Config) contentStores {
	stores := contentStores{close: func() {}}

	switch cfg.DocumentStore.Backend {
	case config.BackendMongo:
		client, err := connectMongo(ctx, cfg.DocumentStore.MongoURI, cfg.DocumentStore.ConnectTimeout)
		if err != nil {
			logger.Warn(ctx, "MongoDB not available, endpoints will return errors", zap.Error(err))
			return stores
		}
		db := client.Database(cfg.DocumentStore.MongoDatabase)
		if err := docstore.EnsureIndexes(ctx, db); err != nil {
			logger.Warn(ctx, "Failed to ensure MongoDB indexes", zap.Error(err))
		}
		stores.members = docstore.NewTeamMemberStore(db.Collection(docstore.TeamMembersCollection))
		stores.articles = docstore.NewArticleStore(db.Collection(docstore.ArticlesCollection))
		stores.projects = docstore.NewProjectStore(db.Collection(docstore.ProjectsCollection))
		stores.contacts = docstore.NewContactMessageStore(db.Collection(docstore.ContactMessagesCollection))
		stores.close = func() {
			disconnectCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = client.Disconnect(disconnectCtx)
		}
		logger.Info(ctx, "Connected to MongoDB", zap.String("database", cfg.DocumentStore.MongoDatabase))

	default:
		db, err := openDB(cfg.Database, cfg.Server.Env)
		if err != nil {
			logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
			return stores
		}
		if err := migrateDB(db); err != nil {
			logger.Warn(ctx, "Database migration failed", zap.Error(err))
		}
		stores.members = repositories.NewTeamMemberRepository(db)
		stores.articles = repositories.NewArticleRepository(db)
		stores.projects = repositories.NewProjectRepository(db)
		stores.contacts = repositories.NewContactMessageRepository(db)
		stores.close = func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}
	return stores
}
