// Package config предоставляет структуры и функции для загрузки конфигурации магазина.
//
// Конфигурация читается один раз при старте: из YAML-файла, если задан CONFIG_PATH,
// иначе из переменных окружения. Файл .env в рабочем каталоге подхватывается, если он есть.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	StaticDir               string `yaml:"static_dir" env:"STATIC_DIR" env-default:"web"`
	HTTPServer              `yaml:"http_server"`
	GRPCServer              `yaml:"grpc_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	JWTToken                `yaml:"jwttoken"`
	Auth                    `yaml:"auth"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки HTTP-сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	CORSOrigins []string      `yaml:"cors_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// GRPCServer структура для настройки gRPC-сервера проверки здоровья.
// Пустой адрес отключает сервер.
type GRPCServer struct {
	AddressGRPC         string        `yaml:"addressgrpc" env:"GRPC_ADDRESS" env-default:":50051"`
	HealthCheckInterval time.Duration `yaml:"health_check_interval" env:"GRPC_HEALTH_INTERVAL" env-default:"15s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеширование.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"5m"`
}

// RabbitMQ структура для публикации событий заказов.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URLRabbitMQ string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange    string        `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"orders"`
	Retries     int           `yaml:"retries" env:"RABBITMQ_RETRIES" env-default:"5"`
	RetryDelay  time.Duration `yaml:"retry_delay" env:"RABBITMQ_RETRY_DELAY" env-default:"2s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// Auth структура с политиками регистрации.
// По умолчанию любой пользователь может зарегистрироваться администратором.
type Auth struct {
	DisableAdminSignup bool `yaml:"disable_admin_signup" env:"DISABLE_ADMIN_SIGNUP"`
}

// RateLimit структура для ограничения частоты публичных запросов на запись.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

// Load читает конфигурацию и проверяет её.
func Load() (*Config, error) {
	const op = "config.Load"

	// .env необязателен
	_ = godotenv.Load()

	var cfg Config
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс, если это не удалось.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.StorageConnectionString) == "" {
		return errors.New("storage connection string is empty")
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return errors.New("jwt secret key is empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	if c.RPS <= 0 || c.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive, got rps=%v burst=%d", c.RPS, c.Burst)
	}
	return nil
}

// String выводит конфиг для логов, секреты скрыты.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  CORSOrigins: %s\n"+
			"GRPCServer:\n"+
			"  Address: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Auth:\n"+
			"  DisableAdminSignup: %t\n",
		c.Env,
		redact(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		strings.Join(c.CORSOrigins, ","),
		c.AddressGRPC,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.URLRabbitMQ != "",
		c.Exchange,
		redact(c.JWTSecretKey),
		c.TokenTTL,
		c.DisableAdminSignup,
	)
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
