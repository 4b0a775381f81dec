package config

import "time"

// RedisConfig configures the optional results cache. An empty Url disables it.
type RedisConfig struct {
	DB       int
	Url      string
	Password string
	TTL      time.Duration
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:       getIntEnv("REDIS_DB", 0),
		Url:      getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		TTL:      getSecondsEnv("RESULTS_CACHE_TTL_SEC", 30),
	}
}

func (c *RedisConfig) Enabled() bool {
	return c.Url != ""
}
