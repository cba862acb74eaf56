// Package di wires repositories, usecases and handlers into a ready engine.
package di

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"teamflow_backend/internal/app/router"
	authhandler "teamflow_backend/internal/feature/auth/transport/handler"
	authusecase "teamflow_backend/internal/feature/auth/usecase"
	projectentity "teamflow_backend/internal/feature/project/domain/entity"
	projectadapters "teamflow_backend/internal/feature/project/adapters"
	projecthandler "teamflow_backend/internal/feature/project/transport/handler"
	projectusecase "teamflow_backend/internal/feature/project/usecase"
	sectorentity "teamflow_backend/internal/feature/sector/domain/entity"
	sectoradapters "teamflow_backend/internal/feature/sector/adapters"
	sectorhandler "teamflow_backend/internal/feature/sector/transport/handler"
	sectorusecase "teamflow_backend/internal/feature/sector/usecase"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
	useradapters "teamflow_backend/internal/feature/user/adapters"
	userhandler "teamflow_backend/internal/feature/user/transport/handler"
	userusecase "teamflow_backend/internal/feature/user/usecase"
	"teamflow_backend/internal/platform/cache"
	"teamflow_backend/internal/platform/config"
	platformhandler "teamflow_backend/internal/platform/http/handler"
	jwtmw "teamflow_backend/internal/platform/jwt"
	"teamflow_backend/internal/platform/password"
	"teamflow_backend/internal/shared/ratelimiter"
)

// Models lists every table, in migration order.
func Models() []any {
	return []any{&userentity.User{}, &sectorentity.Sector{}, &projectentity.Project{}}
}

// Indexes lists the expression indexes created after AutoMigrate.
func Indexes() []string {
	out := append([]string{}, sectoradapters.Indexes...)
	return append(out, projectadapters.Indexes...)
}

// NewApp builds the HTTP engine on top of db. rdb may be nil, in which case sectors are read uncached.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	// Repository
	userRepo := useradapters.NewUserGorm(db)
	sectorRepo := cache.NewCachingSectorRepository(rdb, cfg.Cache.TTL, sectoradapters.NewSectorGorm(db), "sectors")
	projectRepo := projectadapters.NewProjectGorm(db)

	// Platform
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokens := jwtmw.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, tokens)
	userUC := userusecase.NewUserUsecase(userRepo, hasher)
	sectorUC := sectorusecase.NewSectorUsecase(sectorRepo)
	projectUC := projectusecase.NewProjectUsecase(projectRepo, userRepo)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Handler
	handlers := router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Users:   userhandler.NewUserHandler(userUC),
		Sectors: sectorhandler.NewSectorHandler(sectorUC),
		Project: projecthandler.NewProjectHandler(projectUC),
		Health:  platformhandler.NewHealthHandler(sqlDB),
	}

	return router.NewRouter(handlers, router.Options{
		Verifier:     tokens,
		LoginLimiter: ratelimiter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		AllowOrigins: cfg.CORS.AllowOrigins,
	}), nil
}
