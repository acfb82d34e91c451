package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govlead/academy-api/internal/handler"
	"github.com/govlead/academy-api/internal/service"
	"github.com/govlead/academy-api/pkg/config"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := Handlers{
		Auth:       handler.NewAuthHandler(nil),
		Course:     handler.NewCourseHandler(nil),
		Category:   handler.NewCategoryHandler(nil),
		Lesson:     handler.NewLessonHandler(nil),
		Enrollment: handler.NewEnrollmentHandler(nil),
		Progress:   handler.NewProgressHandler(nil),
		Note:       handler.NewNoteHandler(nil),
		Bookmark:   handler.NewBookmarkHandler(nil),
		Profile:    handler.NewProfileHandler(nil),
		User:       handler.NewUserHandler(nil, nil),
		Dashboard:  handler.NewDashboardHandler(nil),
		Metrics:    handler.NewMetricsHandler(nil),
	}
	deps := Deps{
		Config: &config.Config{
			Env:       "test",
			APIPrefix: "/api",
			CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		},
		Logger: zap.NewNop(),
		Auth: service.NewAuthService(nil, nil, nil, service.AuthConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: time.Hour,
		}),
	}
	return New(h, deps)
}

func routeSet(r *gin.Engine) map[string]bool {
	set := make(map[string]bool)
	for _, info := range r.Routes() {
		set[info.Method+" "+info.Path] = true
	}
	return set
}

func TestRouterMountsExpectedPaths(t *testing.T) {
	routes := routeSet(newTestEngine(t))

	expected := []string{
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"GET /api/courses",
		"GET /api/courses/:id",
		"GET /api/categories",
		"GET /api/courses/:id/lessons",
		"POST /api/courses/:id/enroll",
		"GET /api/my-courses",
		"POST /api/lessons/:id/progress",
		"GET /api/notes/:lessonId",
		"POST /api/notes",
		"GET /api/bookmarks",
		"POST /api/bookmarks",
		"DELETE /api/bookmarks/:courseId",
		"GET /api/profile",
		"PATCH /api/profile",
		"GET /api/user/dashboard-stats",
		"GET /api/admin/users",
		"PATCH /api/admin/users/:id/role",
		"PATCH /api/admin/users/:id/subscription",
		"DELETE /api/admin/users/:id",
		"GET /api/admin/stats",
		"GET /api/admin/courses",
		"POST /api/admin/courses",
		"PUT /api/admin/courses/:id",
		"DELETE /api/admin/courses/:id",
		"GET /api/admin/courses/:id/lessons",
		"POST /api/admin/courses/:id/lessons",
		"GET /api/admin/categories",
		"POST /api/admin/categories",
	}
	for _, route := range expected {
		require.True(t, routes[route], "missing route %s", route)
	}
}

func TestRouterRejectsUnknownPaths(t *testing.T) {
	r := newTestEngine(t)

	for _, probe := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/enrollments"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodGet, "/api/lessons/1/notes"},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(probe.method, probe.path, nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code, "%s %s should not be mounted", probe.method, probe.path)
	}
}

func TestEnrollRouteRequiresToken(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/courses/1/enroll", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
