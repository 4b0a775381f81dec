package config

import "time"

type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func NewHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Port:            getIntEnv("HTTP_PORT", 5000),
		ReadTimeout:     getSecondsEnv("HTTP_READ_TIMEOUT_SEC", 15),
		WriteTimeout:    getSecondsEnv("HTTP_WRITE_TIMEOUT_SEC", 15),
		IdleTimeout:     getSecondsEnv("HTTP_IDLE_TIMEOUT_SEC", 60),
		ShutdownTimeout: getSecondsEnv("SHUTDOWN_TIMEOUT_SEC", 5),
	}
}
