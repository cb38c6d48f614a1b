// Package config handles loading and validating application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// AccessTokenTTLMinutes is the lifetime of access tokens in minutes.
	AccessTokenTTLMinutes int `mapstructure:"access_token_ttl_minutes" validate:"required,gt=0"`

	// RefreshTokenTTLMinutes is the lifetime of refresh tokens in minutes.
	RefreshTokenTTLMinutes int `mapstructure:"refresh_token_ttl_minutes" validate:"required,gt=0"`
}
