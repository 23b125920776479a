package config

import (
	"errors"  // Error values
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Application port
	DBDriver         string        // mysql or postgres
	DBDSN            string        // Full DSN, overrides the parts below
	DBUser           string        // Database user
	DBPassword       string        // Database password
	DBHost           string        // Database host
	DBPort           string        // Database port
	DBName           string        // Database name
	JWTSecret        string        // JWT secret key
	JWTIssuer        string        // JWT issuer claim
	JWTAudience      string        // JWT audience claim
	JWTExpires       time.Duration // JWT lifetime
	RedisAddr        string        // Redis server address, empty disables login throttling
	RedisPass        string        // Redis password
	RedisDB          int           // Redis database number
	LoginMaxAttempts int           // Failed logins allowed per window
	LoginWindow      time.Duration // Failed login window
	CORSOrigins      []string      // Allowed browser origins
	IsProd           bool          // Is production environment
	LogLevel         string        // logrus level name
	AdminUsername    string        // Seeded admin username
	AdminEmail       string        // Seeded admin email
	AdminPassword    string        // Seeded admin password
	AdminPhone       string        // Seeded admin phone number
}

// ErrMissingJWTSecret is returned by Validate when no signing key is configured
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:          get("APP_PORT", "8080"),
		DBDriver:         strings.ToLower(get("DB_DRIVER", "mysql")),
		DBDSN:            os.Getenv("DB_DSN"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBHost:           get("DB_HOST", "localhost"),
		DBPort:           os.Getenv("DB_PORT"),
		DBName:           os.Getenv("DB_NAME"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTIssuer:        get("JWT_ISSUER", "freelancer-directory"),
		JWTAudience:      get("JWT_AUDIENCE", "freelancer-directory"),
		JWTExpires:       time.Duration(getInt("JWT_EXPIRES_MIN", 60)) * time.Minute,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          getInt("REDIS_DB", 0),
		LoginMaxAttempts: getInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      time.Duration(getInt("LOGIN_WINDOW_SEC", 900)) * time.Second,
		CORSOrigins:      splitList(get("CORS_ORIGINS", "http://localhost:3000")),
		IsProd:           os.Getenv("IS_PROD") == "true",
		LogLevel:         get("LOG_LEVEL", "info"),
		AdminUsername:    os.Getenv("ADMIN_USERNAME"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AdminPhone:       os.Getenv("ADMIN_PHONE"),
	}
}

// Validate checks settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
