package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gateway  GatewayConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StorageConfig selects where the match snapshot lives: a JSON file (the
// default) or Postgres.
type StorageConfig struct {
	Type string
	Path string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// GatewayConfig covers both directions of the chat gateway: JWTSecret
// authenticates inbound webhooks, URL/Token point at the outbound send API.
type GatewayConfig struct {
	JWTSecret      string
	URL            string
	Token          string
	PromptInterval time.Duration
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("STORAGE_TYPE", StorageJSON)
	viper.SetDefault("STORAGE_PATH", "data/matches.json")
	viper.SetDefault("PROMPT_INTERVAL_SEC", 60)

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Type: viper.GetString("STORAGE_TYPE"),
			Path: viper.GetString("STORAGE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Gateway: GatewayConfig{
			JWTSecret:      viper.GetString("GATEWAY_JWT_SECRET"),
			URL:            viper.GetString("GATEWAY_URL"),
			Token:          viper.GetString("GATEWAY_TOKEN"),
			PromptInterval: time.Duration(viper.GetInt("PROMPT_INTERVAL_SEC")) * time.Second,
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageJSON:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for json storage")
		}
	case StoragePostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required for postgres storage")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required for postgres storage")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	if c.Gateway.JWTSecret == "" {
		return fmt.Errorf("gateway JWT secret is required")
	}
	if len(c.Gateway.JWTSecret) < 16 {
		return fmt.Errorf("gateway JWT secret must be at least 16 characters")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis host is required when redis is enabled")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
