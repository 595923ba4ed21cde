package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Layout tuning. Zero values fall back to the engine defaults.
	LayoutLinkDistance    float64
	LayoutLinkStrength    float64
	LayoutChargeStrength  float64
	LayoutCollisionRadius float64
	LayoutIterations      int
	LayoutCacheTTL        int // seconds

	// Scene tuning
	SceneLinkCap        int
	SceneLabelThreshold float64

	// Analytics service (graph import)
	AnalyticsBaseURL string
	AnalyticsTimeout int // milliseconds

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		LayoutLinkDistance:    getEnvFloat("LAYOUT_LINK_DISTANCE", 0),
		LayoutLinkStrength:    getEnvFloat("LAYOUT_LINK_STRENGTH", 0),
		LayoutChargeStrength:  getEnvFloat("LAYOUT_CHARGE_STRENGTH", 0),
		LayoutCollisionRadius: getEnvFloat("LAYOUT_COLLISION_RADIUS", 0),
		LayoutIterations:      getEnvInt("LAYOUT_ITERATIONS", 0),
		LayoutCacheTTL:        getEnvInt("LAYOUT_CACHE_TTL", 3600),

		SceneLinkCap:        getEnvInt("SCENE_LINK_CAP", 0),
		SceneLabelThreshold: getEnvFloat("SCENE_LABEL_THRESHOLD", 0),

		AnalyticsBaseURL: getEnv("ANALYTICS_BASE_URL", ""),
		AnalyticsTimeout: getEnvInt("ANALYTICS_TIMEOUT_MS", 10000),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "insightgraph"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}
	if c.LayoutCacheTTL < 0 {
		return fmt.Errorf("LAYOUT_CACHE_TTL cannot be negative")
	}
	if c.AnalyticsTimeout <= 0 {
		return fmt.Errorf("ANALYTICS_TIMEOUT_MS must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
