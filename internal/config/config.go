// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Policy   PolicyConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds connection settings for the selected driver.
type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// DSNOverride, when set, replaces the key=value DSN built from the fields above.
	DSNOverride  string
	SQLitePath   string
	QueryTimeout time.Duration
}

// AuthConfig holds session token and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Doctor deletion modes.
const (
	DoctorDeletionDisabled = "disabled"
	DoctorDeletionOpen     = "open"
)

// PolicyConfig makes the doctor-account and conflict-status choices explicit.
type PolicyConfig struct {
	// DoctorPhoneUnique rejects a doctor signup whose phone is already used by a doctor.
	DoctorPhoneUnique bool
	// DoctorDeletion is DoctorDeletionDisabled or DoctorDeletionOpen (unauthenticated delete).
	DoctorDeletion string
	// ConflictStatus is 409, or 400 for clients that expect the legacy status.
	ConflictStatus int
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev         bool
	Migrations  bool
	SeedCatalog bool
	LogLevel    string
}

const minSecretLen = 16

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables. Defaults suit local
// development, except JWT_SECRET which has none: startup fails without it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "sintocheck"),
			Password:     getEnv("DB_PASSWORD", "sintocheck"),
			DBName:       getEnv("DB_NAME", "sintocheck"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			DSNOverride:  os.Getenv("DATABASE_DSN"),
			SQLitePath:   getEnv("SQLITE_PATH", "sintocheck.db"),
			QueryTimeout: time.Duration(getEnvInt("DB_QUERY_TIMEOUT", 5000)) * time.Millisecond,
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   time.Duration(getEnvInt("TOKEN_TTL_HOURS", 168)) * time.Hour,
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		Policy: PolicyConfig{
			DoctorPhoneUnique: getEnvBool("DOCTOR_PHONE_UNIQUE", true),
			DoctorDeletion:    strings.ToLower(getEnv("DOCTOR_DELETION", DoctorDeletionDisabled)),
			ConflictStatus:    getEnvInt("CONFLICT_STATUS", http.StatusConflict),
		},
		App: AppConfig{
			Dev:         getEnvBool("DEV", false),
			Migrations:  getEnvBool("MIGRATIONS", true),
			SeedCatalog: getEnvBool("SEED_CATALOG", true),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be set to at least %d bytes", minSecretLen))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q: want postgres or sqlite", c.Database.Driver))
	}
	switch c.Policy.DoctorDeletion {
	case DoctorDeletionDisabled, DoctorDeletionOpen:
	default:
		errs = append(errs, fmt.Errorf("DOCTOR_DELETION %q: want %s or %s", c.Policy.DoctorDeletion, DoctorDeletionDisabled, DoctorDeletionOpen))
	}
	if c.Policy.ConflictStatus != http.StatusConflict && c.Policy.ConflictStatus != http.StatusBadRequest {
		errs = append(errs, fmt.Errorf("CONFLICT_STATUS %d: want 409 or 400", c.Policy.ConflictStatus))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range", c.Auth.BcryptCost))
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
