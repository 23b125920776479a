package main

import (
	"context" // Context for startup checks
	"time"    // Startup timeouts

	"freelancer_directory/internal/api"        // Custom package for API handlers
	"freelancer_directory/internal/auth"       // Custom package for authentication
	"freelancer_directory/internal/config"     // Custom package for configuration
	"freelancer_directory/internal/db"         // Custom package for database access
	"freelancer_directory/internal/metrics"    // Custom package for metrics
	"freelancer_directory/internal/repository" // Custom package for storage
	"freelancer_directory/internal/utils"      // Custom package for tokens and throttling

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	setupLogger(cfg)

	// Connect to the database, retrying while it starts
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	gdb, err := db.Connect(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	repo := repository.NewFreelancerRepository(gdb)
	tokens := utils.TokenOptions{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTExpires,
	}

	// Login throttling is enabled only when Redis is configured
	var limiter auth.Limiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		limiter = utils.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)
		logrus.WithField("addr", cfg.RedisAddr).Info("Login throttling enabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		DB:          gdb,
		Repo:        repo,
		Auth:        auth.NewService(repo, tokens, limiter),
		Tokens:      tokens,
		Metrics:     metrics.New(),
		CORSOrigins: cfg.CORSOrigins,
	})

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger picks the log format and level for the environment
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
