// Package api wires the HTTP routes of the freelancer directory.
package api

import (
	"net/http" // HTTP status codes
	"time"     // CORS cache age

	"freelancer_directory/internal/auth"       // Token issuer
	"freelancer_directory/internal/db"         // Health checks
	"freelancer_directory/internal/domain"     // Importing domain models
	"freelancer_directory/internal/metrics"    // Prometheus metrics
	"freelancer_directory/internal/middleware" // JWT and logging middleware
	"freelancer_directory/internal/utils"      // Token options

	"github.com/gin-contrib/cors" // CORS for the SPA
	"github.com/gin-gonic/gin"    // Gin web framework
	"gorm.io/gorm"                // GORM ORM library
)

// Deps are the components the router hands to its handlers
type Deps struct {
	DB          *gorm.DB                    // Used for health checks
	Repo        domain.FreelancerRepository // Freelancer storage
	Auth        *auth.Service               // Login and token issuing
	Tokens      utils.TokenOptions          // Bearer token verification
	Metrics     *metrics.Metrics            // Created when nil
	CORSOrigins []string                    // Allowed browser origins, CORS is off when empty
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) *gin.Engine {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(d.Metrics.Middleware())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Location", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1"}) // Trust only local reverse proxy

	r.GET("/healthz", HealthHandler(d.DB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	account := r.Group("/api/account")
	{
		account.POST("/login", LoginHandler(d.Auth, d.Metrics)) // Anonymous login
		account.POST("/signup", SignupHandler(d.Repo, d.Auth))  // Anonymous self registration
	}

	freelancers := r.Group("/api/freelancers", middleware.JWTAuthMiddleware(d.Tokens))
	{
		freelancers.GET("/filter", FilterFreelancersHandler(d.Repo))
		freelancers.GET("/:id", GetFreelancerHandler(d.Repo))
		freelancers.PUT("/:id", UpdateFreelancerHandler(d.Repo)) // Owner or admin, checked in the handler

		admin := freelancers.Group("", middleware.AdminOnlyMiddleware())
		admin.POST("", CreateFreelancerHandler(d.Repo))
		admin.PATCH("/:id/archive", ArchiveFreelancerHandler(d.Repo))
		admin.PATCH("/:id/unarchive", UnarchiveFreelancerHandler(d.Repo))
		admin.DELETE("/:id", DeleteFreelancerHandler(d.Repo))
	}

	return r
}

// HealthHandler reports whether the database answers a ping
func HealthHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gdb == nil || db.Ping(c.Request.Context(), gdb) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
