// Package config loads geo-rota's process configuration from the
// environment (optionally seeded by a .env file via joho/godotenv),
// following the nested-struct convention of the order/shipping services.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Server    ServerConfig
	Logger    LoggerConfig
	Geocoding GeocodingConfig
	Routing   RoutingConfig
	Planner   PlannerConfig
	Auth      AuthConfig
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL    string
	Prefix string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

type GeocodingConfig struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MinInterval time.Duration
	HotCacheTTL time.Duration
}

type RoutingConfig struct {
	OSRMBaseURL string
	OSRMProfile string
	OSRMTimeout time.Duration
}

type PlannerConfig struct {
	CacheTTL             time.Duration
	SingleVehicleTimeout time.Duration
	VRPTimeout           time.Duration
}

type AuthConfig struct {
	SecretKey            string
	Algorithm            string
	AccessTokenExpireMin int
}

// Load reads a .env file if present (ignored when absent) and then builds a
// Config from the environment, mirroring order's LoadConfig pattern.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", "postgres://localhost/georota?sslmode=disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:    getEnv("REDIS_URL", "redis://localhost:6379"),
			Prefix: getEnv("REDIS_PREFIX", "georota:"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "georota.route-events"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Geocoding: GeocodingConfig{
			BaseURL:     getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent:   getEnv("GEOCODER_USER_AGENT", "geo-rota/1.0"),
			Timeout:     getEnvAsDuration("GEOCODER_TIMEOUT", 8*time.Second),
			MinInterval: getEnvAsDuration("GEOCODER_MIN_INTERVAL", 1*time.Second),
			HotCacheTTL: getEnvAsDuration("GEOCODER_HOT_CACHE_TTL", 24*time.Hour),
		},
		Routing: RoutingConfig{
			OSRMBaseURL: getEnv("OSRM_BASE_URL", "http://localhost:5000"),
			OSRMProfile: getEnv("OSRM_PROFILE", "driving"),
			OSRMTimeout: getEnvAsDuration("OSRM_TIMEOUT", 8*time.Second),
		},
		Planner: PlannerConfig{
			CacheTTL:             getEnvAsMinutes("ROTEIRIZACAO_CACHE_TTL_MINUTES", 60),
			SingleVehicleTimeout: getEnvAsDuration("PLANNER_SINGLE_VEHICLE_TIMEOUT", 5*time.Second),
			VRPTimeout:           getEnvAsDuration("PLANNER_VRP_TIMEOUT", 20*time.Second),
		},
		Auth: AuthConfig{
			SecretKey:            getEnv("SECRET_KEY", "development-secret-key"),
			Algorithm:            getEnv("ALGORITHM", "HS256"),
			AccessTokenExpireMin: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvAsMinutes reads key as a count of minutes and returns it as a
// Duration, matching spec.md §6.3's ROTEIRIZACAO_CACHE_TTL_MINUTES.
func getEnvAsMinutes(key string, fallbackMinutes int) time.Duration {
	minutes := getEnvAsInt(key, fallbackMinutes)
	return time.Duration(minutes) * time.Minute
}
