package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Only honor X-Forwarded-For / X-Real-IP when the service actually sits
	// behind a proxy that sets them; otherwise clients could spoof their IP
	// out of the rate limiter.
	TrustProxyHeaders bool `mapstructure:"TRUST_PROXY_HEADERS"`

	// Consent token signing.
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	ConsentTTLMinutes int    `mapstructure:"CONSENT_TTL_MINUTES"`

	// Similarity matching.
	NameWeight            float64 `mapstructure:"NAME_WEIGHT"`
	AddressWeight         float64 `mapstructure:"ADDRESS_WEIGHT"`
	OverallMatchThreshold float64 `mapstructure:"OVERALL_MATCH_THRESHOLD"`
	NoMatchThreshold      float64 `mapstructure:"NO_MATCH_THRESHOLD"`

	// Document extraction (Gemini Vision).
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Embeddings.
	EmbedModel   string `mapstructure:"EMBED_MODEL"`
	EmbedBaseURL string `mapstructure:"EMBED_BASE_URL"`
	EmbedDim     int    `mapstructure:"EMBED_DIM"`

	// Redis embedding cache.
	EmbedCacheEnabled bool   `mapstructure:"EMBED_CACHE_ENABLED"`
	EmbedCacheTTLMin  int    `mapstructure:"EMBED_CACHE_TTL_MIN"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`

	// Profile storage backend: "memory" or "mongo".
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	// PDF form templates.
	TemplatesDir string `mapstructure:"TEMPLATES_DIR"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TRUST_PROXY_HEADERS", false)
	viper.SetDefault("JWT_SECRET", "dev-secret-key-change-in-production")
	viper.SetDefault("CONSENT_TTL_MINUTES", 15)
	viper.SetDefault("NAME_WEIGHT", 0.6)
	viper.SetDefault("ADDRESS_WEIGHT", 0.4)
	viper.SetDefault("OVERALL_MATCH_THRESHOLD", 0.82)
	viper.SetDefault("NO_MATCH_THRESHOLD", 0.5)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("EMBED_MODEL", "nomic-embed-text:latest")
	viper.SetDefault("EMBED_BASE_URL", "")
	viper.SetDefault("EMBED_DIM", 384)
	viper.SetDefault("EMBED_CACHE_ENABLED", false)
	viper.SetDefault("EMBED_CACHE_TTL_MIN", 60)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("TEMPLATES_DIR", "templates")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
