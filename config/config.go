package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Clerk    ClerkConfig
	OpenAI   OpenAIConfig
	FalAI    FalAIConfig
	YouTube  YouTubeConfig
	Redis    RedisConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	StorageBucket   string
}

// ClerkConfig holds the identity-provider credentials. JWTPublicKey is the
// PEM verification key from the Clerk dashboard; WebhookSecret is the svix
// signing secret (whsec_...).
type ClerkConfig struct {
	SecretKey     string
	WebhookSecret string
	JWTPublicKey  string
}

type OpenAIConfig struct {
	APIKey string
}

type FalAIConfig struct {
	APIKey string
}

type YouTubeConfig struct {
	APIKey         string
	TrendingRegion string
	CacheTTLMins   int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		Clerk: ClerkConfig{
			SecretKey:     getEnv("CLERK_SECRET_KEY", ""),
			WebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
			JWTPublicKey:  getEnv("CLERK_JWT_PUBLIC_KEY", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
		},
		FalAI: FalAIConfig{
			APIKey: getEnv("FAL_AI_API_KEY", ""),
		},
		YouTube: YouTubeConfig{
			APIKey:         getEnv("YOUTUBE_API_KEY", ""),
			TrendingRegion: getEnv("YOUTUBE_TRENDING_REGION", "US"),
			CacheTTLMins:   getEnvAsInt("YOUTUBE_CACHE_TTL_MINS", 10),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the keys the process cannot start without. Per-gateway API
// keys are allowed to be absent; their endpoints fail with 500 "not
// configured" instead of taking the whole server down.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	if c.Clerk.JWTPublicKey == "" {
		return fmt.Errorf("CLERK_JWT_PUBLIC_KEY is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}
