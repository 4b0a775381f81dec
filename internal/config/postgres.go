package config

import "time"

// defaultDatabaseURL is a local development default only.
const defaultDatabaseURL = "postgres://user:password@db:5432/mydatabase?sslmode=disable"

type PostgresConfig struct {
	Url             string
	Schema          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func NewPostgresConfig() *PostgresConfig {
	return &PostgresConfig{
		Url:             getEnv("DATABASE_URL", defaultDatabaseURL),
		Schema:          getEnv("DB_SCHEMA", "public"),
		MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: time.Duration(getIntEnv("DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
	}
}
