// Package router assembles the Gin engine and its route table.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "teamflow_backend/internal/feature/auth/transport/handler"
	projecthandler "teamflow_backend/internal/feature/project/transport/handler"
	sectorhandler "teamflow_backend/internal/feature/sector/transport/handler"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
	userhandler "teamflow_backend/internal/feature/user/transport/handler"
	platformhandler "teamflow_backend/internal/platform/http/handler"
	"teamflow_backend/internal/platform/http/middleware"
	jwtmw "teamflow_backend/internal/platform/jwt"
	"teamflow_backend/internal/shared/ratelimiter"
)

// Handlers groups everything the route table points at.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Users   *userhandler.UserHandler
	Sectors *sectorhandler.SectorHandler
	Project *projecthandler.ProjectHandler
	Health  *platformhandler.HealthHandler
}

// Options carries the cross-cutting settings of the engine.
type Options struct {
	Verifier     jwtmw.Verifier
	LoginLimiter *ratelimiter.RateLimiter
	AllowOrigins []string
}

// NewRouter builds the engine.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(), cors.New(corsConfig(opts.AllowOrigins)))

	diretor := string(userentity.RoleDiretor)
	coordenador := string(userentity.RoleCoordenador)

	// public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	if opts.LoginLimiter != nil {
		r.POST("/sessions", opts.LoginLimiter.PerIP(), h.Auth.Login)
	} else {
		r.POST("/sessions", h.Auth.Login)
	}

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.Verifier))
	{
		auth.GET("/profile", h.Users.Profile)
		auth.PUT("/profile", h.Users.UpdateProfile)
		// Self-only; enforced in the usecase.
		auth.GET("/users/:id/projects", h.Project.ListUserProjects)
	}

	users := auth.Group("/users", jwtmw.RequireRoles(diretor))
	{
		users.POST("", h.Users.Create)
		users.GET("", h.Users.List)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.PATCH("/:id/deactivate", h.Users.Deactivate)
		users.DELETE("/:id", h.Users.Delete)
	}

	sectors := auth.Group("/sectors", jwtmw.RequireRoles(diretor))
	{
		sectors.POST("", h.Sectors.Create)
		sectors.GET("", h.Sectors.List)
		sectors.GET("/:id", h.Sectors.Get)
		sectors.PUT("/:id", h.Sectors.Update)
		sectors.DELETE("/:id", h.Sectors.Delete)
	}

	projects := auth.Group("/projects", jwtmw.RequireRoles(diretor, coordenador))
	{
		projects.POST("", h.Project.Create)
		projects.GET("", h.Project.List)
		projects.GET("/filter/status/:value", h.Project.FilterByStatus)
		projects.GET("/filter/sector/:value", h.Project.FilterBySector)
		projects.GET("/filter/user/:value", h.Project.FilterByUser)
		projects.GET("/filter/name/:value", h.Project.FilterByName)
		projects.GET("/filter/active/:value", h.Project.FilterByIsActive)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id", h.Project.Update)
		projects.PATCH("/:id/deactivate", h.Project.Deactivate)
		projects.DELETE("/:id", h.Project.Delete)
		projects.GET("/:id/members/exists", h.Project.HasMembers)
		projects.DELETE("/:id/members/:userId", h.Project.RemoveMember)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
