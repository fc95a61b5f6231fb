package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hostel-drishti/backend/config"
	"hostel-drishti/backend/internal/api/handler"
	"hostel-drishti/backend/internal/api/middleware"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/pkg/jwt"
)

// Deps collaborators the router wires into middleware.
// Blacklist and Limiter are nil when Redis is unavailable.
type Deps struct {
	JWT        *jwt.Manager
	Blacklist  middleware.Blacklist
	Limiter    middleware.Limiter
	UploadsDir string
	DB         *gorm.DB
}

// Setup builds the gin engine
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS))
	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	}

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			sqlDB, err := deps.DB.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── uploaded images ──
	if deps.UploadsDir != "" {
		r.Static("/uploads", deps.UploadsDir)
	}

	authRequired := middleware.JWTAuth(deps.JWT, deps.Blacklist)
	authLimit := middleware.RateLimit(deps.Limiter, cfg.Auth.RateLimit.Requests, cfg.Auth.RateLimit.Window)

	api := r.Group("/api")
	{
		if h.Image != nil {
			api.GET("/images/:id", h.Image.Get)
		}

		// auth
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimit, h.Auth.Register)
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.GET("/me", authRequired, h.Auth.Me)
			auth.PUT("/me/contact", authRequired, h.Auth.UpdateContact)
			auth.POST("/logout", authRequired, h.Auth.Logout)
		}

		// hostels; the static wardens route is registered before :id
		hostels := api.Group("/hostels")
		{
			hostels.GET("", h.Hostel.List)
			hostels.GET("/wardens/unassigned", authRequired, middleware.RoleAuth(model.RoleDWO), h.Hostel.UnassignedWardens)
			hostels.GET("/:id", h.Hostel.Get)
			hostels.POST("", authRequired, middleware.RoleAuth(model.RoleDWO), h.Hostel.Create)
			hostels.PUT("/:id", authRequired, middleware.RoleAuth(model.RoleDWO), h.Hostel.Update)
			hostels.DELETE("/:id", authRequired, middleware.RoleAuth(model.RoleDWO), h.Hostel.Delete)
		}

		// reviews
		reviews := api.Group("/reviews")
		{
			reviews.GET("/:hostelId", h.Review.List)
			reviews.POST("/:hostelId", authRequired, h.Review.Create)
			reviews.DELETE("/:id", authRequired, h.Review.Delete)
		}

		// complaints
		complaints := api.Group("/complaints", authRequired)
		{
			complaints.POST("", h.Complaint.Create)
			complaints.GET("/:hostelId", h.Complaint.List)
			complaints.PUT("/:id", h.Complaint.UpdateStatus)
		}

		// menus
		menus := api.Group("/menus")
		{
			menus.GET("/:hostelId", h.Menu.Get)
			menus.GET("/:hostelId/calendar.ics", h.Menu.Calendar)
			menus.POST("", authRequired, h.Menu.Upsert)
			menus.DELETE("/:hostelId", authRequired, h.Menu.Delete)
		}

		// daily performance
		daily := api.Group("/daily-performance")
		{
			daily.POST("", authRequired, h.DailyPerformance.Create)
			daily.GET("/:hostelId", h.DailyPerformance.List)
		}

		// exports
		exports := api.Group("/exports/hostels", authRequired, middleware.RoleAuth(model.RoleWarden, model.RoleDWO))
		{
			exports.GET("/:id/complaints.xlsx", h.Export.Complaints)
			exports.GET("/:id/daily-performance.xlsx", h.Export.DailyPerformance)
		}
	}

	return r
}
