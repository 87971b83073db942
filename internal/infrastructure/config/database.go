package config

import "time"

// DatabaseConfig locates the catalog store used when catalog.source is
// "database". `annocalc catalog import` writes to it and every calculation
// reads its goods, buildings and modifiers back from it.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// postgres DSN, e.g. postgres://anno:secret@db:5432/annocalc; overrides
	// the individual fields below. DATABASE_URL sets it from the environment.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// sqlite catalog file; sqlite needs either this or URL
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig sizes the postgres connection pool. sqlite always runs on a
// single connection.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
