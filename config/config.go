package config

import (
	"log"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port             string
	Environment      string
	AllowedOrigins   []string
	StaticDir        string
	RoomIdleTTL      time.Duration
	RoomReapInterval time.Duration
	Redis            RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func Load() *Config {
	// Parse allowed origins (comma-separated)
	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	origins := strings.Split(originsStr, ",")

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		AllowedOrigins:   origins,
		StaticDir:        getEnv("STATIC_DIR", ""),
		RoomIdleTTL:      getDurationEnv("ROOM_IDLE_TTL", time.Hour),
		RoomReapInterval: getDurationEnv("ROOM_REAP_INTERVAL", time.Minute),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
