package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string
	DatabaseURL string
	RedisURL    string
	NATSURL     string

	JWTSecret string
	TokenTTL  time.Duration

	TeacherUsername string
	TeacherPassword string
	TeacherName     string
	TeacherEmail    string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	FlowSessionTTL    time.Duration
	DashboardCacheTTL time.Duration

	OpenAIAPIKey     string
	OpenAIModel      string
	AIRequestTimeout time.Duration
	AIMaxTokens      int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AIEnabled reports whether an OpenAI key is configured. Without one the
// service still runs, but analysis steps report unavailability.
func (c Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BUDDYBUD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "BuddyBud API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("token.ttl", "24h")
	v.SetDefault("teacher.username", "teacher")
	v.SetDefault("teacher.name", "Default Teacher")
	v.SetDefault("teacher.email", "teacher@buddybud.local")
	v.SetDefault("cloudinary.folder", "buddybud/uploads")
	v.SetDefault("flow.session_ttl", "2h")
	v.SetDefault("dashboard.cache_ttl", "2m")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("ai.request_timeout", "60s")
	v.SetDefault("ai.max_tokens", 2000)

	tokenTTL, err := parseDuration(v.GetString("token.ttl"), "token ttl")
	if err != nil {
		return Config{}, err
	}

	flowTTL, err := parseDuration(v.GetString("flow.session_ttl"), "flow session ttl")
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := parseDuration(v.GetString("dashboard.cache_ttl"), "dashboard cache ttl")
	if err != nil {
		return Config{}, err
	}

	aiTimeout, err := parseDuration(v.GetString("ai.request_timeout"), "ai request timeout")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:     v.GetString("app.name"),
		AppEnv:      v.GetString("app.env"),
		AppPort:     v.GetString("app.port"),
		DatabaseURL: v.GetString("database.url"),
		RedisURL:    v.GetString("redis.url"),
		NATSURL:     v.GetString("nats.url"),

		JWTSecret: v.GetString("jwt.secret"),
		TokenTTL:  tokenTTL,

		TeacherUsername: v.GetString("teacher.username"),
		TeacherPassword: v.GetString("teacher.password"),
		TeacherName:     v.GetString("teacher.name"),
		TeacherEmail:    v.GetString("teacher.email"),

		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),

		FlowSessionTTL:    flowTTL,
		DashboardCacheTTL: cacheTTL,

		OpenAIAPIKey:     v.GetString("openai_api_key"),
		OpenAIModel:      v.GetString("openai.model"),
		AIRequestTimeout: aiTimeout,
		AIMaxTokens:      v.GetInt("ai.max_tokens"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.TeacherPassword == "" {
		return Config{}, fmt.Errorf("teacher password must be provided")
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = 2000
	}

	return cfg, nil
}

func parseDuration(value, name string) (time.Duration, error) {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return parsed, nil
}
