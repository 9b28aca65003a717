package config

import (
	"os"
	"strconv"

	"taskflow/internal/util"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Addr      string
	StaticDir string
}

type StorageConfig struct {
	// Backend selects the persistence adapter: sqlite, postgres or memory.
	Backend string
	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string
	// Seed loads the demo fixture into an empty store on startup.
	Seed bool
	// LogFile receives the rotated application log; empty means stdout only.
	LogFile string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      util.EnvOrDefault("TASKFLOW_ADDR", ":8080"),
			StaticDir: util.EnvOrDefault("TASKFLOW_STATIC_DIR", "web/dist"),
		},
		Storage: StorageConfig{
			Backend:    util.EnvOrDefault("TASKFLOW_STORAGE", "sqlite"),
			SQLitePath: util.EnvOrDefault("TASKFLOW_DB_PATH", "data/taskflow.db"),
			Seed:       envAsBool("TASKFLOW_SEED", false),
			LogFile:    util.EnvOrDefault("TASKFLOW_LOG_FILE", ""),
		},
		Database: DatabaseConfig{
			Host:     util.EnvOrDefault("TASKFLOW_DB_HOST", "localhost"),
			Port:     envAsInt("TASKFLOW_DB_PORT", 5432),
			User:     util.EnvOrDefault("TASKFLOW_DB_USER", "postgres"),
			Password: util.EnvOrDefault("TASKFLOW_DB_PASSWORD", "postgres"),
			DBName:   util.EnvOrDefault("TASKFLOW_DB_NAME", "taskflow"),
			SSLMode:  util.EnvOrDefault("TASKFLOW_DB_SSL_MODE", "disable"),
		},
	}
}

func envAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func envAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
