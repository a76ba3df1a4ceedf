package config

import (
	"time"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Bus            BusConfig
	Ollama         OllamaConfig
	Analysis       AnalysisConfig
	Logging        LoggingConfig
	CircuitBreaker CircuitBreakerConfig
	Connect        ConnectConfig
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig
	Redis    RedisConfig
	MongoDB  MongoDBConfig
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoDBConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// BusConfig names the pub/sub channels. Channel names are
// "<channel_prefix>:<suffix>" unless overridden individually.
type BusConfig struct {
	ChannelPrefix    string `mapstructure:"channel_prefix"`
	ChatRequests     string `mapstructure:"chat_requests"`
	AnalysisRequests string `mapstructure:"analysis_requests"`
	GeneralRequests  string `mapstructure:"general_requests"`
	Responses        string `mapstructure:"responses"`
}

type OllamaConfig struct {
	Host           string        `mapstructure:"host"`
	Model          string        `mapstructure:"model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	Burst          int           `mapstructure:"burst"`
}

type AnalysisConfig struct {
	BatchConcurrency int `mapstructure:"batch_concurrency"`
	MaxDocumentChars int `mapstructure:"max_document_chars"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

type ConnectConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}
