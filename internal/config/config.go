package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Storage   StorageConfig   `yaml:"storage"`
	Vision    VisionConfig    `yaml:"vision"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN may be empty:
// the service then runs without persistence and analyses are returned to
// callers without a record id.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Configured reports whether a database connection is available.
func (c DatabaseConfig) Configured() bool { return c.DSN != "" }

// AuthConfig holds bearer-token validation settings for durable identities.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"oneiro"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// GeminiConfig holds text-generation provider settings.
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"model"   env:"GEMINI_MODEL"   env-default:"gemini-2.5-flash"`
	Timeout time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT" env-default:"30s"`
}

// OpenAIConfig holds image-generation provider settings.
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key"  env:"OPENAI_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com"`
	Model   string        `yaml:"model"    env:"OPENAI_IMAGE_MODEL" env-default:"dall-e-3"`
	Size    string        `yaml:"size"     env:"OPENAI_IMAGE_SIZE"  env-default:"1024x1024"`
	Timeout time.Duration `yaml:"timeout"  env:"OPENAI_TIMEOUT"     env-default:"120s"`
}

// StorageConfig holds object-storage settings for generated images.
type StorageConfig struct {
	Bucket          string `yaml:"bucket"           env:"STORAGE_BUCKET"`
	CDNDomain       string `yaml:"cdn_domain"       env:"STORAGE_CDN_DOMAIN"`
	CredentialsFile string `yaml:"credentials_file" env:"STORAGE_CREDENTIALS_FILE"`
}

// Configured reports whether image storage is available.
func (c StorageConfig) Configured() bool { return c.Bucket != "" }

// VisionConfig holds visualization pipeline limits.
type VisionConfig struct {
	MaxAttempts     int `yaml:"max_attempts"      env:"VISION_MAX_ATTEMPTS"      env-default:"2"`
	PromptMaxLen    int `yaml:"prompt_max_len"    env:"VISION_PROMPT_MAX_LEN"    env-default:"4000"`
	SanitizedMaxLen int `yaml:"sanitized_max_len" env:"VISION_SANITIZED_MAX_LEN" env-default:"800"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP rate limit settings for the generation endpoints.
type RateLimitConfig struct {
	Enabled          bool `yaml:"enabled"            env:"RATE_LIMIT_ENABLED"            env-default:"true"`
	RequestsPerMin   int  `yaml:"requests_per_min"   env:"RATE_LIMIT_REQUESTS_PER_MIN"   env-default:"20"`
	GenerationPerMin int  `yaml:"generation_per_min" env:"RATE_LIMIT_GENERATION_PER_MIN" env-default:"5"`
}
