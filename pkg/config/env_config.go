// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig holds host-level settings read from GRAVWARS_*
// environment variables: simulation rate and the remote asset boundary.
type EnvironmentConfig struct {
	TickRate int // simulation ticks per second

	// Asset fetching
	AssetBaseURL      string
	AssetFetchTimeout time.Duration

	// Circuit Breaker Configuration
	CircuitBreakerMaxRequests         int
	CircuitBreakerInterval            time.Duration
	CircuitBreakerTimeout             time.Duration
	CircuitBreakerMaxConsecutiveFails int
}

// LoadConfigFromEnv reads environment variables with safe defaults and
// validates the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		TickRate:                          getEnvAsIntOrDefault("GRAVWARS_TICK_RATE", 30),
		AssetBaseURL:                      getEnvOrDefault("GRAVWARS_ASSET_BASE_URL", ""),
		AssetFetchTimeout:                 getEnvAsDurationOrDefault("GRAVWARS_ASSET_FETCH_TIMEOUT", 10*time.Second),
		CircuitBreakerMaxRequests:         getEnvAsIntOrDefault("GRAVWARS_CB_MAX_REQUESTS", 3),
		CircuitBreakerInterval:            getEnvAsDurationOrDefault("GRAVWARS_CB_INTERVAL", 60*time.Second),
		CircuitBreakerTimeout:             getEnvAsDurationOrDefault("GRAVWARS_CB_TIMEOUT", 30*time.Second),
		CircuitBreakerMaxConsecutiveFails: getEnvAsIntOrDefault("GRAVWARS_CB_MAX_CONSECUTIVE_FAILS", 5),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the environment configuration is usable.
func (c *EnvironmentConfig) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 240 {
		return fmt.Errorf("invalid tick rate: %d (must be 1-240)", c.TickRate)
	}
	if c.AssetFetchTimeout <= 0 {
		return fmt.Errorf("invalid asset fetch timeout: %v", c.AssetFetchTimeout)
	}
	if c.CircuitBreakerMaxRequests <= 0 {
		return fmt.Errorf("invalid circuit breaker max requests: %d", c.CircuitBreakerMaxRequests)
	}
	if c.CircuitBreakerInterval <= 0 {
		return fmt.Errorf("invalid circuit breaker interval: %v", c.CircuitBreakerInterval)
	}
	if c.CircuitBreakerTimeout <= 0 {
		return fmt.Errorf("invalid circuit breaker timeout: %v", c.CircuitBreakerTimeout)
	}
	if c.CircuitBreakerMaxConsecutiveFails <= 0 {
		return fmt.Errorf("invalid circuit breaker max consecutive fails: %d", c.CircuitBreakerMaxConsecutiveFails)
	}
	return nil
}

// TimeStep returns the tick rate as a step duration in seconds.
func (c *EnvironmentConfig) TimeStep() float64 {
	return 1.0 / float64(c.TickRate)
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as an int or a default.
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault returns the environment variable as a
// duration or a default.
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
