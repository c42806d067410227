// Package config loads the server configuration.
//
// Sources, lowest to highest priority:
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file named by CONFIG_PATH
//  3. Environment variables, including any loaded from a .env file
//
// Environment names follow the deployment conventions of the API
// (DB_CONNECTION_STRING, JWT_SECRET_KEY, PORT); envKeys maps them onto the
// nested koanf paths used by the struct tags below.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the optional YAML config file.
const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	HTTP     HTTPConfig     `koanf:"http"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Path is the SQLite DSN: a file path or ":memory:".
	Path string `koanf:"path"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	Issuer     string        `koanf:"issuer"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            3000,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/starwars.db",
		},
		Auth: AuthConfig{
			Issuer:     "starwars-api",
			TokenTTL:   15 * time.Minute,
			BcryptCost: 12,
		},
		HTTP: HTTPConfig{
			CORSOrigins:     []string{"*"},
			LoginRateLimit:  10,
			LoginRateWindow: time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// envKeys maps environment variable names (lowercased) to koanf paths.
// Variables not listed here are ignored.
var envKeys = map[string]string{
	"port":                 "server.port",
	"shutdown_timeout":     "server.shutdown_timeout",
	"db_connection_string": "database.path",
	"jwt_secret_key":       "auth.jwt_secret",
	"jwt_issuer":           "auth.issuer",
	"jwt_ttl":              "auth.token_ttl",
	"bcrypt_cost":          "auth.bcrypt_cost",
	"cors_origins":         "http.cors_origins",
	"login_rate_limit":     "http.login_rate_limit",
	"login_rate_window":    "http.login_rate_window",
	"log_level":            "log.level",
	"log_format":           "log.format",
}

// Load reads .env (if present), the optional config file and the
// environment, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}
	return load(os.Getenv(ConfigPathEnvVar))
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(&defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	// CORS_ORIGINS arrives as a comma-separated string.
	if raw, ok := k.Get("http.cors_origins").(string); ok {
		if err := k.Set("http.cors_origins", splitList(raw)); err != nil {
			return nil, fmt.Errorf("config: parsing cors origins: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envTransform(key string) string {
	return envKeys[strings.ToLower(key)]
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 16 {
		return errors.New("config: JWT_SECRET_KEY must be set and at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("config: bcrypt cost %d out of range 4..31", c.Auth.BcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: token ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.HTTP.LoginRateLimit <= 0 || c.HTTP.LoginRateWindow <= 0 {
		return fmt.Errorf("config: login rate limit needs a positive count and window, got %d per %s",
			c.HTTP.LoginRateLimit, c.HTTP.LoginRateWindow)
	}
	if c.Database.Path == "" {
		return errors.New("config: DB_CONNECTION_STRING must not be empty")
	}
	return nil
}

// SlogLevel converts Log.Level to a slog.Level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
