package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// AuthStrategy selects how requests prove who they are.
type AuthStrategy string

const (
	// StrategyToken authenticates every request with a bearer JWT.
	StrategyToken AuthStrategy = "token"
	// StrategySession authenticates with a server-side session, falling back to HTTP Basic.
	StrategySession AuthStrategy = "session"
)

// Config holds application level configuration loaded from a YAML file and/or environment variables.
type Config struct {
	Env           string       `yaml:"env" env:"APP_ENV" env-default:"development"`
	ServerPort    string       `yaml:"server_port" env:"SERVER_PORT" env-default:"3000"`
	DBDriver      string       `yaml:"db_driver" env:"DB_DRIVER" env-default:"mysql"`
	MySQLDSN      string       `yaml:"mysql_dsn" env:"MYSQL_DSN" env-default:"user:password@tcp(localhost:3306)/confusion?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB       bool         `yaml:"reset_db" env:"RESET_DB"`
	RedisAddr     string       `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisDB       int          `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	RedisPass     string       `yaml:"redis_password" env:"REDIS_PASSWORD"`
	JWTSecret     string       `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"12345-67890-09876-54321"`
	AuthStrategy  AuthStrategy `yaml:"auth_strategy" env:"AUTH_STRATEGY" env-default:"token"`
	SessionSecret string       `yaml:"session_secret" env:"SESSION_SECRET" env-default:"12345-67890-09876-54321"`
	SessionDir    string       `yaml:"session_dir" env:"SESSION_DIR" env-default:"./sessions"`
	CORSOrigins   []string     `yaml:"cors_origins" env:"CORS_ORIGINS" env-separator:"," env-default:"https://localhost:3000,https://localhost:3443"`
	AuthRateLimit float64      `yaml:"auth_rate_limit" env:"AUTH_RATE_LIMIT" env-default:"5"`
	UploadDir     string       `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"public/images"`
	BodyLimit     string       `yaml:"body_limit" env:"BODY_LIMIT" env-default:"10M"`
	S3            S3           `yaml:"s3"`
	SwaggerHost   string       `yaml:"swagger_host" env:"SWAGGER_HOST"`
}

// S3 configures the optional object storage backend for uploaded images.
type S3 struct {
	Bucket    string `yaml:"bucket" env:"S3_BUCKET"`
	Region    string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
}

// Enabled reports whether uploads should go to S3 instead of the local disk.
func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Load builds Config from CONFIG_PATH (if set) and the environment, with sensible defaults.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether internal error detail may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	switch c.AuthStrategy {
	case StrategyToken, StrategySession:
	default:
		return fmt.Errorf("unknown AUTH_STRATEGY %q", c.AuthStrategy)
	}
	switch c.DBDriver {
	case "mysql", "memory":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}
