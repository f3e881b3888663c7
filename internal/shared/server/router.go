package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-site/internal/exports"
	"resume-site/internal/services/health"
	"resume-site/internal/shared/config"
	"resume-site/internal/shared/metrics"
	"resume-site/internal/shared/server/middleware"
	"resume-site/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, exportsHandler *exports.Handler, healthSvc *health.Service) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				middleware.ExportRateLimitGroup: {Rate: cfg.ExportRatePerSec, Burst: cfg.ExportBurst},
			},
		}),
	)

	exportsHandler.RegisterPage(r)
	exportsHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if healthSvc == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		ok, checks := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	})
	r.GET("/metrics", metrics.Handler())

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	return r
}

func rateLimitGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/resume/pdf", "/resume/docx", "/api/resume/pdf", "/api/resume/docx":
		return middleware.ExportRateLimitGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
