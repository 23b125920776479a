package db

import (
	"context" // Context for seeding
	"errors"  // Error inspection
	"strings" // Input trimming

	"freelancer_directory/internal/domain" // Importing domain models
	"freelancer_directory/internal/utils"  // Password hashing

	"github.com/samber/oops"     // Structured errors
	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate creates or updates the freelancer, skillset and hobby tables
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return gdb.AutoMigrate(&domain.Freelancer{}, &domain.Skillset{}, &domain.Hobby{})
}

// AdminSeed describes the bootstrap admin account
type AdminSeed struct {
	Username string
	Email    string
	Password string
	PhoneNum string
}

// ErrInvalidSeed is returned when the admin seed has a blank or malformed email or phone number
var ErrInvalidSeed = errors.New("invalid admin seed")

// SeedAdmin creates the admin account unless a freelancer with that username exists.
// It reports whether a new account was created.
func SeedAdmin(ctx context.Context, repo domain.FreelancerRepository, seed AdminSeed) (bool, error) {
	if seed.Username == "" || seed.Password == "" {
		return false, nil // Nothing to seed
	}
	seed.Email = strings.TrimSpace(seed.Email)
	seed.PhoneNum = strings.TrimSpace(seed.PhoneNum)
	if !utils.IsValidEmail(seed.Email) {
		return false, oops.Code("ADMIN_SEED_INVALID").With("field", "email").Wrap(ErrInvalidSeed)
	}
	if !utils.IsValidPhone(seed.PhoneNum) {
		return false, oops.Code("ADMIN_SEED_INVALID").With("field", "phone").Wrap(ErrInvalidSeed)
	}
	if _, err := repo.GetByUsername(ctx, seed.Username); err == nil {
		logrus.WithField("username", seed.Username).Info("Admin account already exists")
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}
	hash, err := utils.HashPassword(seed.Password)
	if err != nil {
		return false, err
	}
	admin := &domain.Freelancer{
		Username: seed.Username,
		Email:    seed.Email,
		PhoneNum: seed.PhoneNum,
		Password: &hash,
		IsAdmin:  true,
	}
	id, err := repo.Create(ctx, admin)
	if err != nil {
		return false, err
	}
	logrus.WithFields(logrus.Fields{
		"freelancer_id": id,
		"username":      seed.Username,
	}).Info("Admin account seeded")
	return true, nil
}
