package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort     string
	JWTSecret      []byte
	BackendURL     string
	DBConnStr      string
	RedisAddr      string
	CartStore      string // "postgres" or "remote"
	RequestTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:     getEnvOrDefault("PORT", "3000"),
		JWTSecret:      []byte(getEnvOrDefault("JWT_SECRET", "")),
		BackendURL:     getEnvOrDefault("BACKEND_URL", "http://localhost:8080"),
		DBConnStr:      getEnvOrDefault("DB_CONN", "host=localhost port=5432 user=postgres dbname=localconnect sslmode=disable"),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", ""),
		CartStore:      getEnvOrDefault("CART_STORE", "postgres"),
		RequestTimeout: getEnvSeconds("REQUEST_TIMEOUT_SECONDS", 30),
	}
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getEnvSeconds(key string, def int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
