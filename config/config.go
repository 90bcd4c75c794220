package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read into AppConfig.
// A double underscore separates levels: BLOGLY_DATABASE__HOST -> database.host.
const EnvPrefix = "BLOGLY_"

type AppConfig struct {
	Server    ServerConfig   `koanf:"server"`
	Database  DatabaseConfig `koanf:"database"`
	Log       LogConfig      `koanf:"log"`
	CORS      CORSConfig     `koanf:"cors"`
	SecretKey string         `koanf:"secret_key"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release, test
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	Driver       string        `koanf:"driver"` // postgres, sqlite
	DSN          string        `koanf:"dsn"`
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Username     string        `koanf:"username"`
	Password     string        `koanf:"password"`
	Database     string        `koanf:"database"`
	SSLMode      bool          `koanf:"sslmode"`
	LogLevel     string        `koanf:"log_level"`
	MaxOpenConns int           `koanf:"max_open_conns"`
	MaxIdleConns int           `koanf:"max_idle_conns"`
	MaxLifetime  time.Duration `koanf:"max_lifetime"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
}

type CORSConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when nothing overrides a key.
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         8080,
			Mode:         "debug",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "postgres",
			Host:         "localhost",
			Port:         5432,
			Database:     "blogly",
			LogLevel:     "warn",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order. A .env file in the working directory is
// loaded into the environment first.
func Load(configPath string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not load .env file: %v", err)
	}

	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	conf := Default()
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// PORT is honored for platforms that only inject that variable
	if port := os.Getenv("PORT"); port != "" && !k.Exists("server.port") {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		conf.Server.Port = p
	}

	if len(conf.CORS.AllowOrigins) == 0 {
		conf.CORS.AllowOrigins = []string{fmt.Sprintf("http://localhost:%d", conf.Server.Port)}
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *AppConfig) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret_key is required (set BLOGLY_SECRET_KEY)")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
