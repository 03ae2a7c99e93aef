package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Notifier NotifierConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxPoolConns int
}

type NotifierConfig struct {
	BaseURL string
	APIKey  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TripsTTL time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	RetryTopic string
	GroupID    string
}

type WorkerConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	dbCfg, err := newDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config error: %w", err)
	}

	redisCfg, err := newRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("redis config error: %w", err)
	}

	workerCfg, err := newWorkerConfig()
	if err != nil {
		return nil, fmt.Errorf("worker config error: %w", err)
	}

	return &Config{
		Server:   serverCfg,
		Database: dbCfg,
		Notifier: newNotifierConfig(),
		Redis:    redisCfg,
		Kafka:    newKafkaConfig(),
		Worker:   workerCfg,
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newDatabaseConfig() (DatabaseConfig, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("MAX_CONNS", "99"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("max connections parse error: %w", err)
	}

	return DatabaseConfig{
		Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
		Name:         getEnvOrDefault("POSTGRES_DB", "voyages"),
		User:         getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password:     getEnvOrDefault("POSTGRES_PASSWORD", ""),
		MaxPoolConns: maxConns,
	}, nil
}

func newNotifierConfig() NotifierConfig {
	return NotifierConfig{
		BaseURL: getEnvOrDefault("NOTIFIER_URL", "http://localhost:9000"),
		APIKey:  getEnvOrDefault("NOTIFIER_API_KEY", ""),
	}
}

func newRedisConfig() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("redis db parse error: %w", err)
	}

	tripsTTL, err := getDurationFromEnv("REDIS_TRIPS_TTL", "60s")
	if err != nil {
		return RedisConfig{}, fmt.Errorf("trips ttl parse error: %w", err)
	}

	return RedisConfig{
		Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       db,
		TripsTTL: tripsTTL,
	}, nil
}

func newKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers:    strings.Split(getEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
		RetryTopic: getEnvOrDefault("KAFKA_RETRY_TOPIC", "confirmations-retry"),
		GroupID:    getEnvOrDefault("KAFKA_GROUP_ID", "voyages-notifier"),
	}
}

func newWorkerConfig() (WorkerConfig, error) {
	maxAttempts, err := strconv.Atoi(getEnvOrDefault("WORKER_MAX_ATTEMPTS", "5"))
	if err != nil {
		return WorkerConfig{}, fmt.Errorf("max attempts parse error: %w", err)
	}

	backoff, err := getDurationFromEnv("WORKER_BACKOFF", "30s")
	if err != nil {
		return WorkerConfig{}, fmt.Errorf("backoff parse error: %w", err)
	}

	return WorkerConfig{
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
