package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	API       APIConfig
	Server    ServerConfig
	Kafka     KafkaConfig
	Logging   LoggingConfig
	Dashboard DashboardConfig
}

// APIConfig holds the remote stock API settings
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServerConfig holds HTTP server configuration for the view API
type ServerConfig struct {
	Port string
	Host string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string
	Format      string
	FileEnabled bool
	FilePath    string
}

// DashboardConfig holds list view settings
type DashboardConfig struct {
	PageSize int
}

// Load reads configuration from a .env file, if present, and environment variables
func Load() *Config {
	// Missing .env is fine, the environment still applies
	_ = godotenv.Load()

	return &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000"), "/"),
			Timeout: getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "stock-record-events"),
			GroupID: getEnv("KAFKA_GROUP_ID", "stock-dashboard"),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "pretty"),
			FileEnabled: getEnvBool("LOG_FILE_ENABLED", false),
			FilePath:    getEnv("LOG_FILE_PATH", "logs"),
		},
		Dashboard: DashboardConfig{
			PageSize: getEnvInt("DASHBOARD_PAGE_SIZE", 10),
		},
	}
}

// Address returns the listen address of the view API
func (s *ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
