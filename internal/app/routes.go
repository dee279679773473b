package app

import (
	"github.com/cite-space/core/internal/middleware"
	"github.com/cite-space/core/internal/modules/auth"
	"github.com/cite-space/core/internal/modules/moderation"
	"github.com/cite-space/core/internal/modules/quote"
	"github.com/cite-space/core/internal/modules/source"
	"github.com/cite-space/core/internal/modules/tag"
	pkgredis "github.com/cite-space/core/internal/pkg/redis"
	"github.com/cite-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()
	moderatorMW := middleware.RequireModerator(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api/v2")
	api.Use(middleware.OptionalAuth())
	// Rate limiting checks IsAuthenticated, so it must run after OptionalAuth.
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Idempotence(rc.Raw()))

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"pong": true})
	})

	sourceSvc := source.NewService(db)
	tagSvc := tag.NewService(db)
	quoteSvc := quote.NewService(db, sourceSvc)
	moderationSvc := moderation.NewService(db, sourceSvc, tagSvc)

	auth.NewHandler(auth.NewService(db), db).RegisterRoutes(api, authMW)
	quote.NewHandler(quoteSvc).RegisterRoutes(api, authMW)
	tag.NewHandler(tagSvc).RegisterRoutes(api)
	moderation.NewHandler(moderationSvc).RegisterRoutes(api, authMW, moderatorMW)
}
