package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JWTSecret          string
	JWTExpiry          time.Duration
	RefreshTokenTTL    time.Duration
	DBHost             string
	DBPort             string
	DBUser             string
	DBPass             string
	DBName             string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	RabbitMQURL        string
	RabbitMQHost       string
	RabbitMQPort       string
	RabbitMQUser       string
	RabbitMQPass       string
	RabbitMQVhost      string
	RabbitMQPrefetch   int
	MQEnabled          bool
	MaxUploadSize      int64
	UploadRate         float64
	UploadBurst        int
	PrewarmWorkers     int
	PrewarmRate        float64
	PrewarmBurst       int
	PrewarmRetryMax    int
	PrewarmRetryDelays []time.Duration
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDurationList(key string, defaultValue []time.Duration) []time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := time.ParseDuration(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads configuration and initializes sub-configs.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	prewarmDelays := getEnvDurationList(
		"PREWARM_RETRY_DELAYS",
		[]time.Duration{10 * time.Second, 30 * time.Second, 2 * time.Minute},
	)
	AppConfig = Config{
		JWTSecret:          getEnv("JWT_SECRET", "l=ax+b"),
		JWTExpiry:          getEnvDuration("JWT_EXPIRY", time.Hour),
		RefreshTokenTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "root"),
		DBPass:             getEnv("DB_PASS", "root"),
		DBName:             getEnv("DB_NAME", "MediaVault"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            0,
		RabbitMQURL:        rabbitURL,
		RabbitMQHost:       rabbitHost,
		RabbitMQPort:       rabbitPort,
		RabbitMQUser:       rabbitUser,
		RabbitMQPass:       rabbitPass,
		RabbitMQVhost:      rabbitVhost,
		RabbitMQPrefetch:   getEnvInt("RABBITMQ_PREFETCH", 8),
		MQEnabled:          getEnvBool("MQ_ENABLED", true),
		MaxUploadSize:      getEnvInt64("MAX_UPLOAD_SIZE", 100*1024*1024),
		UploadRate:         getEnvFloat("UPLOAD_RATE", 10),
		UploadBurst:        getEnvInt("UPLOAD_BURST", 20),
		PrewarmWorkers:     getEnvInt("PREWARM_WORKER_CONCURRENCY", 4),
		PrewarmRate:        getEnvFloat("PREWARM_RATE", 2),
		PrewarmBurst:       getEnvInt("PREWARM_BURST", 4),
		PrewarmRetryMax:    getEnvInt("PREWARM_RETRY_MAX", 5),
		PrewarmRetryDelays: prewarmDelays,
	}

	InitStorageConfig()
}
