package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/govlead/academy-api/api/swagger"
	"github.com/govlead/academy-api/internal/handler"
	"github.com/govlead/academy-api/internal/repository"
	"github.com/govlead/academy-api/internal/router"
	"github.com/govlead/academy-api/internal/service"
	"github.com/govlead/academy-api/pkg/cache"
	"github.com/govlead/academy-api/pkg/config"
	"github.com/govlead/academy-api/pkg/database"
	"github.com/govlead/academy-api/pkg/logger"
)

// @title GovLead Academy API
// @version 1.0.0
// @description Learning platform data API
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db, logr); err != nil {
		logr.Sugar().Fatalw("failed to migrate schema", "error", err)
	}
	if cfg.Seed.Enabled {
		if err := database.Seed(ctx, db, cfg.Seed, logr); err != nil {
			logr.Sugar().Fatalw("failed to seed database", "error", err)
		}
	}

	validate := validator.New()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var cacheRepo service.CacheRepository
	cacheEnabled := false
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
			cacheEnabled = true
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cacheEnabled)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	profileSvc := service.NewProfileService(userRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	categorySvc := service.NewCategoryService(categoryRepo, validate, logr)
	lessonSvc := service.NewLessonService(moduleRepo, lessonRepo, courseRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, cacheSvc, logr)
	progressSvc := service.NewProgressService(progressRepo, cacheSvc, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, validate, logr)
	bookmarkSvc := service.NewBookmarkService(bookmarkRepo, logr)
	dashboardSvc := service.NewDashboardService(enrollmentRepo, progressRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	exportSvc := service.NewExportService(userRepo, courseRepo, logr)

	engine := router.New(router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Course:     handler.NewCourseHandler(courseSvc),
		Category:   handler.NewCategoryHandler(categorySvc),
		Lesson:     handler.NewLessonHandler(lessonSvc),
		Enrollment: handler.NewEnrollmentHandler(enrollmentSvc),
		Progress:   handler.NewProgressHandler(progressSvc),
		Note:       handler.NewNoteHandler(noteSvc),
		Bookmark:   handler.NewBookmarkHandler(bookmarkSvc),
		Profile:    handler.NewProfileHandler(profileSvc),
		User:       handler.NewUserHandler(userSvc, exportSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Metrics:    handler.NewMetricsHandler(metrics),
	}, router.Deps{
		Config:  cfg,
		Logger:  logr,
		Auth:    authSvc,
		Metrics: metrics,
		Audit:   userRepo,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "db", cfg.Database.Path)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
