package services

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	Analysis  AnalysisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Events    EventsConfig
	WebSocket WebSocketConfig
}

type ServerConfig struct {
	Port           string
	UploadMaxBytes int64
}

type DatabaseConfig struct {
	URL          string
	Seed         bool
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type LLMConfig struct {
	Provider          string // openrouter or gemini
	Model             string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	Referer           string
	GeminiAPIKey      string
	GeminiModel       string
	ScoringTimeout    time.Duration
	AlternateTimeout  time.Duration
	CacheDir          string
}

type AnalysisConfig struct {
	// RecordFailures persists a failed-status record when scoring fails.
	RecordFailures bool
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type StorageConfig struct {
	Backend     string // local, s3 or none
	LocalDir    string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type WebSocketConfig struct {
	AllowedOrigins string
}

// LoadConfig loads configuration from environment variables and config files
func LoadConfig() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.upload_max_bytes", 10<<20)
	viper.SetDefault("websocket.allowed_origins", "")
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("jwt.access_ttl", "5m")
	viper.SetDefault("jwt.refresh_ttl", "168h")
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.seed", "true")
	viper.SetDefault("database.log_level", "silent")
	viper.SetDefault("database.max_idle_conns", "10")
	viper.SetDefault("database.max_open_conns", "100")
	viper.SetDefault("llm.provider", ProviderOpenRouter)
	viper.SetDefault("llm.model", DefaultOpenRouterModel)
	viper.SetDefault("llm.openrouter_api_key", "")
	viper.SetDefault("llm.openrouter_base_url", DefaultOpenRouterBaseURL)
	viper.SetDefault("llm.referer", "https://resumeiq.app")
	viper.SetDefault("llm.gemini_api_key", "")
	viper.SetDefault("llm.gemini_model", DefaultGeminiModel)
	viper.SetDefault("llm.scoring_timeout", "30s")
	viper.SetDefault("llm.alternate_timeout", "60s")
	viper.SetDefault("llm.cache_dir", "")
	viper.SetDefault("analysis.record_failures", "false")
	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.local_dir", "uploads")
	viper.SetDefault("storage.s3_bucket", "")
	viper.SetDefault("storage.s3_region", "auto")
	viper.SetDefault("storage.s3_endpoint", "")
	viper.SetDefault("storage.s3_access_key", "")
	viper.SetDefault("storage.s3_secret_key", "")
	viper.SetDefault("events.amqp_url", "")
	viper.SetDefault("events.exchange", "resume.analysis")

	// Map environment variables to config keys
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.upload_max_bytes", "UPLOAD_MAX_BYTES")
	viper.BindEnv("websocket.allowed_origins", "WEBSOCKET_ALLOWED_ORIGINS")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.access_ttl", "JWT_ACCESS_TTL")
	viper.BindEnv("jwt.refresh_ttl", "JWT_REFRESH_TTL")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("database.seed", "DATABASE_SEED")
	viper.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")
	viper.BindEnv("database.max_idle_conns", "DATABASE_MAX_IDLE_CONNS")
	viper.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	viper.BindEnv("llm.provider", "LLM_PROVIDER")
	viper.BindEnv("llm.model", "LLM_MODEL")
	viper.BindEnv("llm.openrouter_api_key", "OR_API_KEY")
	viper.BindEnv("llm.openrouter_base_url", "OPENROUTER_BASE_URL")
	viper.BindEnv("llm.referer", "OPENROUTER_REFERER")
	viper.BindEnv("llm.gemini_api_key", "GEMINI_API_KEY")
	viper.BindEnv("llm.gemini_model", "GEMINI_MODEL")
	viper.BindEnv("llm.scoring_timeout", "LLM_SCORING_TIMEOUT")
	viper.BindEnv("llm.alternate_timeout", "LLM_ALT_TIMEOUT")
	viper.BindEnv("llm.cache_dir", "LLM_CACHE_DIR")
	viper.BindEnv("analysis.record_failures", "ANALYSIS_RECORD_FAILURES")
	viper.BindEnv("storage.backend", "STORAGE_BACKEND")
	viper.BindEnv("storage.local_dir", "STORAGE_LOCAL_DIR")
	viper.BindEnv("storage.s3_bucket", "S3_BUCKET")
	viper.BindEnv("storage.s3_region", "S3_REGION")
	viper.BindEnv("storage.s3_endpoint", "S3_ENDPOINT")
	viper.BindEnv("storage.s3_access_key", "S3_ACCESS_KEY")
	viper.BindEnv("storage.s3_secret_key", "S3_SECRET_KEY")
	viper.BindEnv("events.amqp_url", "AMQP_URL")
	viper.BindEnv("events.exchange", "AMQP_EXCHANGE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found, using defaults and environment variables")
		} else {
			slog.Error("Error reading config file", "error", err)
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("server.port"),
			UploadMaxBytes: viper.GetInt64("server.upload_max_bytes"),
		},
		Database: DatabaseConfig{
			URL:          viper.GetString("database.url"),
			Seed:         viper.GetBool("database.seed"),
			LogLevel:     viper.GetString("database.log_level"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
		},
		LLM: LLMConfig{
			Provider:          viper.GetString("llm.provider"),
			Model:             viper.GetString("llm.model"),
			OpenRouterAPIKey:  viper.GetString("llm.openrouter_api_key"),
			OpenRouterBaseURL: viper.GetString("llm.openrouter_base_url"),
			Referer:           viper.GetString("llm.referer"),
			GeminiAPIKey:      viper.GetString("llm.gemini_api_key"),
			GeminiModel:       viper.GetString("llm.gemini_model"),
			ScoringTimeout:    viper.GetDuration("llm.scoring_timeout"),
			AlternateTimeout:  viper.GetDuration("llm.alternate_timeout"),
			CacheDir:          viper.GetString("llm.cache_dir"),
		},
		Analysis: AnalysisConfig{
			RecordFailures: viper.GetBool("analysis.record_failures"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			AccessTTL:  viper.GetDuration("jwt.access_ttl"),
			RefreshTTL: viper.GetDuration("jwt.refresh_ttl"),
		},
		Storage: StorageConfig{
			Backend:     viper.GetString("storage.backend"),
			LocalDir:    viper.GetString("storage.local_dir"),
			S3Bucket:    viper.GetString("storage.s3_bucket"),
			S3Region:    viper.GetString("storage.s3_region"),
			S3Endpoint:  viper.GetString("storage.s3_endpoint"),
			S3AccessKey: viper.GetString("storage.s3_access_key"),
			S3SecretKey: viper.GetString("storage.s3_secret_key"),
		},
		Events: EventsConfig{
			AMQPURL:  viper.GetString("events.amqp_url"),
			Exchange: viper.GetString("events.exchange"),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: viper.GetString("websocket.allowed_origins"),
		},
	}
}
