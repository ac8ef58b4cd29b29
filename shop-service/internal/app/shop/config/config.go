package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Stats    StatsConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8000)
}

type DatabaseConfig struct {
	URL      string // DATABASE_URL, если задан - используется вместо отдельных полей
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string // disable/require/verify-full

	MaxOpenConns int
	MaxIdleConns int
	LogLevel     string // уровень SQL-логов gorm: silent/error/warn/info
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RedisConfig struct {
	Addr            string // пустой адрес отключает кеш товаров
	Password        string
	DB              int
	ProductCacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string // пустой список отключает события
	Topic   string
}

type StatsConfig struct {
	RefreshSchedule string // cron-выражение, пустое значение отключает задачу
}

var defaultCORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

// Load читает конфигурацию из окружения. Файл .env (если есть) подгружается первым,
// уже заданные переменные окружения он не перезаписывает
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	ttl, err := getEnvDuration("PRODUCT_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8000"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "oltp_db"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: os.Getenv("LOGSTASH_ADDR"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		},
		Redis: RedisConfig{
			Addr:            os.Getenv("REDIS_ADDR"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              getEnvInt("REDIS_DB", 0),
			ProductCacheTTL: ttl,
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "product_events"),
		},
		Stats: StatsConfig{
			RefreshSchedule: getEnvAllowEmpty("STATS_REFRESH_SCHEDULE", "@every 1m"),
		},
	}, nil
}

// DSN возвращает строку подключения для gorm postgres.
// Префикс драйвера вида postgresql+psycopg2:// отбрасывается
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		if scheme, rest, ok := strings.Cut(c.URL, "://"); ok {
			if base, _, hasDriver := strings.Cut(scheme, "+"); hasDriver {
				return base + "://" + rest
			}
		}
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty отличает явно пустое значение от отсутствующей переменной
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvList разбирает список через запятую, пустые элементы пропускаются
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
