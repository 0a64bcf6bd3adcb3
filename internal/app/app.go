// Package app wires configuration, storage, HTTP routes and background jobs
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wellspring-app/core/internal/config"
	"github.com/wellspring-app/core/internal/database"
	"github.com/wellspring-app/core/internal/middleware"
	"github.com/wellspring-app/core/internal/modules/backup"
	"github.com/wellspring-app/core/internal/modules/snapshot"
	pkgcron "github.com/wellspring-app/core/internal/pkg/cron"
	"github.com/wellspring-app/core/internal/pkg/events"
	jwtpkg "github.com/wellspring-app/core/internal/pkg/jwt"
	pkgredis "github.com/wellspring-app/core/internal/pkg/redis"
	"github.com/wellspring-app/core/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	db       *gorm.DB
	store    *store.Store
	bus      *events.Bus
	exporter *snapshot.Exporter
	importer *snapshot.Importer
	backupH  *backup.Handler
	logger   *zap.Logger
	cancel   context.CancelFunc
	sched    *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → routes → cron.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if cfg.JWTSecret != "" {
		jwtpkg.SetSecret(cfg.JWTSecret)
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		rc, err = pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && cfg.IsProd() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	bus := events.NewBus(rc, logger)
	st := store.New(db, bus, logger)
	exporter := snapshot.NewExporter(st,
		snapshot.WithAppVersion(cfg.AppVersion),
		snapshot.WithBuildInfo(buildInfo(cfg)),
		snapshot.WithExportLogger(logger),
	)
	importer := snapshot.NewImporter(st, logger)
	backupH := backup.NewHandler(exporter, importer, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	app := &App{
		cfg: cfg, router: router, db: db,
		store: st, bus: bus,
		exporter: exporter, importer: importer,
		backupH: backupH,
		logger: logger, cancel: cancel, sched: sched,
	}
	app.registerCronJobs()
	go sched.Start(ctx)
	go bus.Listen(ctx)
	go app.watchDataChanges(ctx)

	app.registerRoutes()
	return app, nil
}

func buildInfo(cfg *config.AppConfig) map[string]interface{} {
	info := map[string]interface{}{"env": cfg.Env}
	if cfg.BuildInfo != "" {
		info["build"] = cfg.BuildInfo
	}
	return info
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
