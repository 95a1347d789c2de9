package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// Storage backend selectors. The backend is chosen once at startup and fixed
// for the process lifetime.
const (
	StorageMemory  = "memory"
	StorageMongoDB = "mongodb"
)

const defaultSessionSecret = "change-me-in-production"

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	CORS    CORSConfig    `yaml:"cors"`
	Admin   AdminConfig   `yaml:"admin"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig selects and tunes the storage backend. The pool bounds and
// idle timeout only apply to the mongodb backend.
type StorageConfig struct {
	Type                    string `yaml:"type"`
	MongoURI                string `yaml:"mongo_uri"`
	MongoDatabase           string `yaml:"mongo_database"`
	MongoMinPoolSize        uint64 `yaml:"mongo_min_pool_size"`
	MongoMaxPoolSize        uint64 `yaml:"mongo_max_pool_size"`
	MongoIdleTimeoutSeconds int    `yaml:"mongo_idle_timeout_seconds"`
}

type SessionConfig struct {
	Secret        string `yaml:"secret"`
	TTLHours      int    `yaml:"ttl_hours"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AdminConfig holds the bootstrap credential pair used to auto-create the
// admin account on first run. Meant to be changed after deployment.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (c SessionConfig) TTL() time.Duration {
	hours := c.TTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

func (c StorageConfig) MongoIdleTimeout() time.Duration {
	if c.MongoIdleTimeoutSeconds <= 0 {
		return 45 * time.Second
	}
	return time.Duration(c.MongoIdleTimeoutSeconds) * time.Second
}

var config *AppConfig

// InitApp loads .env and config.yaml, applies environment overrides and
// caches the result. Secrets only ever come from the environment.
func InitApp() {
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c := AppConfig{
		Server:  ServerConfig{Port: 5000},
		Logging: LoggingConfig{Level: "info"},
		Storage: StorageConfig{Type: StorageMemory, MongoDatabase: "portfolio"},
		Session: SessionConfig{Secret: defaultSessionSecret, TTLHours: 24},
		Admin:   AdminConfig{Username: "admin", Password: "Atharv@1136"},
	}

	if data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE)); err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			panic(err)
		}
	}

	applyEnvOverrides(&c)
	config = &c
}

func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.Storage.MongoURI = v
	}
	if v := os.Getenv("MONGODB_DB"); v != "" {
		c.Storage.MongoDatabase = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("FORCE_HTTPS"); v != "" {
		c.Session.SecureCookies = v == "true" || v == "1"
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		c.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
}

// Validate checks startup invariants that cannot be defaulted away.
func (c AppConfig) Validate() error {
	switch c.Storage.Type {
	case StorageMemory, StorageMongoDB:
	default:
		return fmt.Errorf("config: unknown storage type %q", c.Storage.Type)
	}
	if c.Storage.Type == StorageMongoDB && c.Storage.MongoURI == "" {
		return errors.New("config: MONGODB_URI is required when storage type is mongodb")
	}
	if c.Session.Secret == "" {
		return errors.New("config: session secret must not be empty")
	}
	return nil
}

// UsingDefaultSessionSecret reports whether the placeholder secret is still
// active so startup can log a warning.
func (c AppConfig) UsingDefaultSessionSecret() bool {
	return c.Session.Secret == defaultSessionSecret
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
