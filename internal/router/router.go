package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/handler"
	"github.com/govlead/academy-api/internal/middleware"
	"github.com/govlead/academy-api/internal/models"
	"github.com/govlead/academy-api/internal/service"
	"github.com/govlead/academy-api/pkg/config"
	"github.com/govlead/academy-api/pkg/logger"
	corsmiddleware "github.com/govlead/academy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/govlead/academy-api/pkg/middleware/requestid"
)

// Handlers aggregates every HTTP handler mounted by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Course     *handler.CourseHandler
	Category   *handler.CategoryHandler
	Lesson     *handler.LessonHandler
	Enrollment *handler.EnrollmentHandler
	Progress   *handler.ProgressHandler
	Note       *handler.NoteHandler
	Bookmark   *handler.BookmarkHandler
	Profile    *handler.ProfileHandler
	User       *handler.UserHandler
	Dashboard  *handler.DashboardHandler
	Metrics    *handler.MetricsHandler
}

// Deps carries cross-cutting dependencies the routes need.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Auth    *service.AuthService
	Metrics *service.MetricsService
	Audit   middleware.AuditRecorder
}

// New builds the gin engine with the full route table mounted.
func New(h Handlers, deps Deps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	if deps.Config.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/health", h.Metrics.Health)
	if deps.Config.Metrics.Enabled {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.Config.APIPrefix)

	// Public routes.
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/courses", h.Course.List)
	api.GET("/courses/:id", h.Course.Get)
	api.GET("/categories", h.Category.List)

	// Routes requiring a valid access token.
	authed := api.Group("", middleware.JWT(deps.Auth))
	authed.GET("/courses/:id/lessons", h.Lesson.ListByCourse)
	authed.POST("/courses/:id/enroll", h.Enrollment.Enroll)
	authed.GET("/my-courses", h.Enrollment.MyCourses)
	authed.POST("/lessons/:id/progress", h.Progress.Report)
	authed.GET("/notes/:lessonId", h.Note.List)
	authed.POST("/notes", h.Note.Create)
	authed.GET("/bookmarks", h.Bookmark.List)
	authed.POST("/bookmarks", h.Bookmark.Add)
	authed.DELETE("/bookmarks/:courseId", h.Bookmark.Remove)
	authed.GET("/profile", h.Profile.Get)
	authed.PATCH("/profile", h.Profile.Update)
	authed.GET("/user/dashboard-stats", h.Dashboard.Stats)

	// Admin routes. Mutations are audit logged.
	admin := api.Group("/admin", middleware.JWT(deps.Auth), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", h.User.List)
	admin.PATCH("/users/:id/role", middleware.Audit(deps.Audit, models.AuditActionUpdate, "user_role"), h.User.UpdateRole)
	admin.PATCH("/users/:id/subscription", middleware.Audit(deps.Audit, models.AuditActionUpdate, "user_subscription"), h.User.UpdateSubscription)
	admin.DELETE("/users/:id", middleware.Audit(deps.Audit, models.AuditActionDelete, "user"), h.User.Delete)
	admin.GET("/stats", h.User.Stats)
	admin.GET("/export/users", h.User.ExportUsers)
	admin.GET("/export/courses", h.User.ExportCourses)
	admin.GET("/courses", h.Course.ListAll)
	admin.POST("/courses", middleware.Audit(deps.Audit, models.AuditActionCreate, "course"), h.Course.Create)
	admin.PUT("/courses/:id", middleware.Audit(deps.Audit, models.AuditActionUpdate, "course"), h.Course.Update)
	admin.DELETE("/courses/:id", middleware.Audit(deps.Audit, models.AuditActionDelete, "course"), h.Course.Delete)
	admin.GET("/courses/:id/lessons", h.Lesson.ListByCourse)
	admin.POST("/courses/:id/lessons", middleware.Audit(deps.Audit, models.AuditActionCreate, "lesson"), h.Lesson.Create)
	admin.GET("/categories", h.Category.List)
	admin.POST("/categories", middleware.Audit(deps.Audit, models.AuditActionCreate, "category"), h.Category.Create)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	return r
}
