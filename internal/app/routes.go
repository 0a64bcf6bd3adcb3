package app

import (
	"github.com/gin-gonic/gin"
	"github.com/wellspring-app/core/internal/middleware"
	"github.com/wellspring-app/core/internal/modules/collections"
	"github.com/wellspring-app/core/internal/modules/health"
	"github.com/wellspring-app/core/internal/modules/journal"
	"github.com/wellspring-app/core/internal/modules/user"
	"github.com/wellspring-app/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api/v1")

	userSvc := user.NewService(a.db)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW)

	a.backupH.RegisterRoutes(api, authMW)
	collections.NewHandler(a.store).RegisterRoutes(api, authMW)
	journal.NewHandler(a.store).RegisterRoutes(api, authMW)
	health.NewHandler(a.cfg.AppVersion, a.sched).RegisterRoutes(api, authMW)
}
