package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
	LLM     LLMConfig     `yaml:"llm"`
	Store   StoreConfig   `yaml:"store"`
	Room    RoomConfig    `yaml:"room"`
	Worker  WorkerConfig  `yaml:"worker"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ORIGIN"            env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT,PORT"        env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LLMConfig holds generative-text provider settings.
// An empty APIKey disables the provider; every assignment then uses the fallback.
type LLMConfig struct {
	APIKey           string        `yaml:"api_key"           env:"LLM_API_KEY,ANTHROPIC_API_KEY"`
	Model            string        `yaml:"model"             env:"LLM_MODEL"             env-default:"claude-sonnet-4-5"`
	MaxTokens        int64         `yaml:"max_tokens"        env:"LLM_MAX_TOKENS"        env-default:"4096"`
	Timeout          time.Duration `yaml:"timeout"           env:"LLM_TIMEOUT"           env-default:"60s"`
	ResponseLanguage string        `yaml:"response_language" env:"LLM_RESPONSE_LANGUAGE" env-default:"Japanese"`
}

// Enabled reports whether an API key is configured.
func (c LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// StoreConfig selects and configures the room store backend.
type StoreConfig struct {
	Driver   string         `yaml:"driver"   env:"STORE_DRIVER" env-default:"memory"`
	Database DatabaseConfig `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI            string        `yaml:"uri"             env:"MONGO_URI"`
	Database       string        `yaml:"database"        env:"MONGO_DATABASE"        env-default:"icebreaker"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

// RoomConfig holds room lifecycle settings.
type RoomConfig struct {
	MinCapacity      int           `yaml:"min_capacity"       env:"ROOM_MIN_CAPACITY"       env-default:"2"`
	MaxCapacity      int           `yaml:"max_capacity"       env:"ROOM_MAX_CAPACITY"       env-default:"10"`
	QuestionsPerRoom int           `yaml:"questions_per_room" env:"ROOM_QUESTIONS_PER_ROOM" env-default:"1"`
	PublicBaseURL    string        `yaml:"public_base_url"    env:"ROOM_PUBLIC_BASE_URL"    env-default:"http://localhost:5173"`
	EstimatedWait    time.Duration `yaml:"estimated_wait"     env:"ROOM_ESTIMATED_WAIT"     env-default:"60s"`
}

// WorkerConfig holds generation worker pool settings.
type WorkerConfig struct {
	Concurrency int `yaml:"concurrency" env:"WORKER_CONCURRENCY" env-default:"4"`
	QueueSize   int `yaml:"queue_size"  env:"WORKER_QUEUE_SIZE"  env-default:"64"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
