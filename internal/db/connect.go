package db

import (
	"context" // Context for retries
	"errors"  // Error values
	"fmt"     // DSN formatting
	"net"     // Host/port joining
	"time"    // Backoff durations

	"freelancer_directory/internal/config" // Application configuration

	mysqldriver "github.com/go-sql-driver/mysql" // MySQL DSN builder
	"github.com/sethvargo/go-retry"              // Connection retry with backoff
	"github.com/sirupsen/logrus"                 // Logging
	"gorm.io/driver/mysql"                       // MySQL driver for GORM
	"gorm.io/driver/postgres"                    // PostgreSQL driver for GORM
	"gorm.io/gorm"                               // GORM ORM library
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ErrUnsupportedDriver is returned for a DB_DRIVER that is neither mysql nor postgres
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// DSN builds the data source name for the configured driver
func DSN(cfg *config.Config) (string, error) {
	if cfg.DBDSN != "" {
		return cfg.DBDSN, nil // Explicit DSN wins
	}
	switch cfg.DBDriver {
	case DriverMySQL:
		port := cfg.DBPort
		if port == "" {
			port = "3306"
		}
		mc := mysqldriver.NewConfig()
		mc.User = cfg.DBUser
		mc.Passwd = cfg.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, port)
		mc.DBName = cfg.DBName
		mc.ParseTime = true
		// Report matched rather than changed rows so no-op updates are not mistaken for missing ids
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil
	case DriverPostgres:
		port := cfg.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, port), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DBDriver)
	}
}

// Dialector returns the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == DriverPostgres {
		return postgres.Open(dsn), nil
	}
	if cfg.DBDriver == DriverMySQL {
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DBDriver)
}

// Connect opens the database, retrying with exponential backoff until it answers a ping
func Connect(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	var gdb *gorm.DB
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		opened, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			err = Ping(ctx, opened)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"driver": cfg.DBDriver,
				"error":  err.Error(),
			}).Warn("Database not reachable, retrying")
			return retry.RetryableError(err)
		}
		gdb = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

// Ping checks that the underlying connection pool can reach the database
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
