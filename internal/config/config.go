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

// Counter backends.
const (
	CounterBackendFile  = "file"
	CounterBackendRedis = "redis"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// Geocoding (Nominatim).
	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderTimeout   time.Duration
	GeocoderCacheSize int

	// Remote ephemeris API. When URL is empty the built-in provider is
	// used, which covers the Sun and Moon only.
	EphemerisURL     string
	EphemerisToken   string
	EphemerisTimeout time.Duration

	// Access counter persistence.
	CounterBackend string
	CounterFile    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Audit event publishing.
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaAuditTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := getEnvAsDuration("GEOCODER_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	ephemerisTimeout, err := getEnvAsDuration("EPHEMERIS_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := getEnv("KAFKA_ENABLED", "") == "true"

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RequestTimeout:  requestTimeout,

		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "mapa-astral-service/1.0"),
		GeocoderTimeout:   geocoderTimeout,
		GeocoderCacheSize: getEnvAsInt("GEOCODER_CACHE_SIZE", 1000),

		EphemerisURL:     os.Getenv("EPHEMERIS_URL"),
		EphemerisToken:   os.Getenv("EPHEMERIS_TOKEN"),
		EphemerisTimeout: ephemerisTimeout,

		CounterBackend: getEnv("COUNTER_BACKEND", CounterBackendFile),
		CounterFile:    getEnv("COUNTER_FILE", "data/contador.txt"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),

		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    splitAndTrim(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaAuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "natal-chart-audit"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.GeocoderURL == "" {
		return errors.New("GEOCODER_URL is required")
	}
	if c.GeocoderCacheSize <= 0 {
		return errors.New("GEOCODER_CACHE_SIZE must be positive")
	}

	switch c.CounterBackend {
	case CounterBackendFile:
		if c.CounterFile == "" {
			return errors.New("COUNTER_FILE is required for the file counter backend")
		}
	case CounterBackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis counter backend")
		}
	default:
		return fmt.Errorf("invalid COUNTER_BACKEND %q (want %q or %q)",
			c.CounterBackend, CounterBackendFile, CounterBackendRedis)
	}

	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if c.KafkaAuditTopic == "" {
			return errors.New("KAFKA_ENABLED is true but KAFKA_AUDIT_TOPIC is empty")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
