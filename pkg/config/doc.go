// Package config loads application configuration from environment variables
// into annotated Go structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is loaded once per process, then env.Parse fills the
// struct from `env` tags with support for defaults and required fields.
//
//	type RedisConfig struct {
//	    URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	var cfg RedisConfig
//	config.MustLoad(&cfg)
//
// MustLoad panics on failure and is meant for configuration the process
// cannot start without.
package config
