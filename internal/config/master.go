package config

import "os"

type AppConfig struct {
	DebugMode      bool
	LogLevel       string
	HTTPConfig     *HTTPConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPConfig:     NewHTTPConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
	}
}
