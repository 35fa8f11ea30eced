// Package config предоставляет структуры и функции для загрузки конфигурации сервиса.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Источники датасета.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string          `yaml:"env" env:"ENV" env-default:"local"`
	Dataset         Dataset         `yaml:"dataset"`
	Model           Model           `yaml:"model"`
	HTTPServer      HTTPServer      `yaml:"http_server"`
	GRPCServer      GRPCServer      `yaml:"grpc_server"`
	RedisConnection RedisConnection `yaml:"redis_connection"`
	RabbitMQ        RabbitMQ        `yaml:"rabbitmq"`
	JWTToken        JWTToken        `yaml:"jwttoken"`
	RateLimit       RateLimit       `yaml:"rate_limit"`
	CORS            CORS            `yaml:"cors"`
}

// Dataset описывает источник данных о клиентах.
// ReloadInterval равный нулю отключает периодическую перезагрузку.
type Dataset struct {
	Source         string        `yaml:"source" env:"DATASET_SOURCE" env-default:"csv"`
	CSVPath        string        `yaml:"csv_path" env:"DATASET_CSV_PATH" env-default:"data/churn.csv"`
	PostgresDSN    string        `yaml:"postgres_dsn" env:"DATASET_POSTGRES_DSN"`
	MigrationsPath string        `yaml:"migrations_path" env:"DATASET_MIGRATIONS_PATH" env-default:"./migrations"`
	ReloadInterval time.Duration `yaml:"reload_interval" env:"DATASET_RELOAD_INTERVAL" env-default:"0s"`
}

// Model структура для настройки артефакта модели
type Model struct {
	ArtifactPath string `yaml:"artifact_path" env:"MODEL_ARTIFACT_PATH" env-default:"model/churn_model.json"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// GRPCServer структура для настройки gRPC-сервера проверки здоровья
type GRPCServer struct {
	Address string `yaml:"address" env:"GRPC_ADDRESS" env-default:":50051"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэширование предсказаний.
type RedisConnection struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db" env-default:"0"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
	TTL         time.Duration `yaml:"ttl" env-default:"1h"`
}

// RabbitMQ структура для публикации событий скоринга.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string `yaml:"exchange" env-default:"churn.events"`
	RoutingKey string `yaml:"routing_key" env-default:"prediction.created"`
}

// JWTToken структура для работы с jwt-токеном администратора
type JWTToken struct {
	SecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RateLimit структура для ограничения частоты запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"50"`
	Burst int     `yaml:"burst" env-default:"100"`
}

// CORS структура со списком разрешённых источников фронтенда
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"*"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.CSVPath == "" {
			return fmt.Errorf("dataset.csv_path is required for source %q", SourceCSV)
		}
	case SourcePostgres:
		if c.Dataset.PostgresDSN == "" {
			return fmt.Errorf("dataset.postgres_dsn is required for source %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}
	return nil
}

func (c *Config) String() string {
	secret := ""
	if c.JWTToken.SecretKey != "" {
		secret = "***"
	}
	return fmt.Sprintf(
		"Env: %s\n"+
			"Dataset:\n"+
			"  Source: %s\n"+
			"  CSVPath: %s\n"+
			"  ReloadInterval: %s\n"+
			"Model:\n"+
			"  ArtifactPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"GRPCServer:\n"+
			"  Address: %s\n"+
			"RedisConnection:\n"+
			"  Address: %s\n"+
			"JWTToken:\n"+
			"  SecretKey: %s\n"+
			"  TokenTTL: %s\n",
		c.Env,
		c.Dataset.Source,
		c.Dataset.CSVPath,
		c.Dataset.ReloadInterval,
		c.Model.ArtifactPath,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.GRPCServer.Address,
		c.RedisConnection.Address,
		secret,
		c.JWTToken.TokenTTL,
	)
}
