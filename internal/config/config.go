// Package config reads the settings of the backend from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Storage
	DataDir string
	DBFile  string

	// HTTP
	ListenAddr       string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Logging
	LogFormat string // "human" or "json", empty selects by gin mode
	LogLevel  string
	GinMode   string

	// Create example budgets in an empty database
	SeedExamples bool
}

// Load reads the configuration. Values from envFile, if it exists, are
// added to the environment without overriding variables that are already
// set.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	return Config{
		DataDir:          getEnv("DATA_DIR", "./data"),
		DBFile:           getEnv("DB_FILE", "budget.sqlite"),
		ListenAddr:       getEnv("LISTEN_ADDR", "127.0.0.1:8080"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		GinMode:          getEnv("GIN_MODE", "release"),
		SeedExamples:     getEnvBool("SEED_EXAMPLES", true),
	}, nil
}

// DSN returns the path of the database file.
func (c Config) DSN() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
