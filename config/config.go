package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr  string
	MysqlDSN    string
	JWTSecret   string
	RedisAddr   string
	RedisPass   string
	CORSOrigins string
}

var Cfg *Config

func Load() {
	// A missing .env file is fine; deployments can set the environment directly.
	_ = godotenv.Load()

	Cfg = &Config{
		ServerAddr:  ":" + getEnv("PORT", "8080"),
		MysqlDSN:    getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/hobbyhub?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "hobbyhub-secret-key-change-in-production"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		RedisPass:   getEnv("REDIS_PASSWORD", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
