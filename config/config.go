package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Mail     MailConfig
	GenAI    GenAIConfig
	Chat     ChatConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

type StoreConfig struct {
	Driver     string
	Collection string
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

// RedisConfig configures the page cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PageTTL  time.Duration
}

type AdminConfig struct {
	Password     string
	PasswordHash string
	JWTSecret    string
	SessionTTL   time.Duration
}

// MailConfig configures outbound contact email. An empty Host means messages are only logged.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type GenAIConfig struct {
	APIKey      string
	TextModel   string
	ImageModel  string
	SpeechModel string
	Voice       string
}

type ChatConfig struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	RatePerMinute int
}

func Load() (*Config, error) {
	cfg := read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForTools loads the configuration for offline commands such as the seed
// importer. Only the store settings are validated; admin credentials are not
// needed because no sessions are served.
func LoadForTools() (*Config, error) {
	cfg := read()
	if err := cfg.validateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() *Config {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "portfolio-backend"),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", StoreFirestore),
			Collection: getEnv("FIRESTORE_COLLECTION", "projects"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			PageTTL:  getEnvAsDuration("PAGE_CACHE_TTL", 10*time.Minute),
		},
		Admin: AdminConfig{
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", "dev-only-admin-secret"),
			SessionTTL:   getEnvAsDuration("ADMIN_SESSION_TTL", 12*time.Hour),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("MAIL_FROM", ""),
			To:       getEnv("MAIL_TO", ""),
		},
		GenAI: GenAIConfig{
			APIKey:      getEnv("GENAI_API_KEY", ""),
			TextModel:   getEnv("GENAI_TEXT_MODEL", "gemini-2.0-flash"),
			ImageModel:  getEnv("GENAI_IMAGE_MODEL", "imagen-3.0-generate-002"),
			SpeechModel: getEnv("GENAI_SPEECH_MODEL", "gemini-2.5-flash-preview-tts"),
			Voice:       getEnv("GENAI_VOICE", "Algenib"),
		},
		Chat: ChatConfig{
			MinDelay:      getEnvAsDuration("CHAT_MIN_DELAY", 200*time.Millisecond),
			MaxDelay:      getEnvAsDuration("CHAT_MAX_DELAY", 700*time.Millisecond),
			RatePerMinute: getEnvAsInt("CHAT_RATE_PER_MINUTE", 30),
		},
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	if c.IsProduction() && (c.Admin.JWTSecret == "" || c.Admin.JWTSecret == "dev-only-admin-secret") {
		return fmt.Errorf("ADMIN_JWT_SECRET must be set in production")
	}

	if c.Chat.MaxDelay < c.Chat.MinDelay {
		return fmt.Errorf("CHAT_MAX_DELAY must not be lower than CHAT_MIN_DELAY")
	}

	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case StoreFirestore:
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required when STORE_DRIVER=firestore")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
