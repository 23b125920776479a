package main

import (
	"context" // Context for connect and seed
	"time"    // Timeouts

	"freelancer_directory/internal/config"     // Custom import path (Config)
	"freelancer_directory/internal/db"         // Custom import path (Database)
	"freelancer_directory/internal/repository" // Custom import path (Storage)

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gdb, err := db.Connect(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}
	logrus.WithField("driver", cfg.DBDriver).Info("Database migrated successfully")

	// Seed the first admin from ADMIN_* variables
	created, err := db.SeedAdmin(ctx, repository.NewFreelancerRepository(gdb), db.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		PhoneNum: cfg.AdminPhone,
	})
	if err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
	if !created && cfg.AdminUsername == "" {
		logrus.Info("No ADMIN_USERNAME configured, skipping admin seed")
	}
}
