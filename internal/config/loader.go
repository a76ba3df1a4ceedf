package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"dteai/internal/constants"
)

func LoadConfig(configFile string) (*Config, error) {
	viper.Reset()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(configFile)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func bindEnvVariables() {
	viper.BindEnv("database.postgres.host", "DATABASE_POSTGRES_HOST")
	viper.BindEnv("database.postgres.port", "DATABASE_POSTGRES_PORT")
	viper.BindEnv("database.postgres.user", "DATABASE_POSTGRES_USER")
	viper.BindEnv("database.postgres.password", "DATABASE_POSTGRES_PASSWORD")
	viper.BindEnv("database.postgres.dbname", "DATABASE_POSTGRES_DBNAME")
	viper.BindEnv("database.postgres.sslmode", "DATABASE_POSTGRES_SSLMODE")

	viper.BindEnv("database.redis.host", "DATABASE_REDIS_HOST")
	viper.BindEnv("database.redis.port", "DATABASE_REDIS_PORT")
	viper.BindEnv("database.redis.password", "DATABASE_REDIS_PASSWORD")
	viper.BindEnv("database.redis.db", "DATABASE_REDIS_DB")

	viper.BindEnv("database.mongodb.uri", "DATABASE_MONGODB_URI")
	viper.BindEnv("database.mongodb.database", "DATABASE_MONGODB_DATABASE")

	viper.BindEnv("bus.channel_prefix", "BUS_CHANNEL_PREFIX")

	viper.BindEnv("ollama.host", "OLLAMA_HOST")
	viper.BindEnv("ollama.model", "OLLAMA_MODEL")

	viper.BindEnv("server.port", "SERVER_PORT")

	viper.BindEnv("logging.level", "LOGGING_LEVEL")
	viper.BindEnv("logging.format", "LOGGING_FORMAT")
}

func applyDefaults(cfg *Config) {
	if cfg.Bus.ChannelPrefix == "" {
		cfg.Bus.ChannelPrefix = constants.DefaultChannelPrefix
	}
	if cfg.Bus.ChatRequests == "" {
		cfg.Bus.ChatRequests = cfg.Bus.ChannelPrefix + ":" + constants.ChannelChatRequests
	}
	if cfg.Bus.AnalysisRequests == "" {
		cfg.Bus.AnalysisRequests = cfg.Bus.ChannelPrefix + ":" + constants.ChannelAnalysisRequests
	}
	if cfg.Bus.GeneralRequests == "" {
		cfg.Bus.GeneralRequests = cfg.Bus.ChannelPrefix + ":" + constants.ChannelGeneralRequests
	}
	if cfg.Bus.Responses == "" {
		cfg.Bus.Responses = cfg.Bus.ChannelPrefix + ":" + constants.ChannelResponses
	}

	if cfg.Ollama.Host == "" {
		cfg.Ollama.Host = "http://localhost:11434"
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = "llama3.2:3b"
	}

	if cfg.Analysis.BatchConcurrency <= 0 {
		cfg.Analysis.BatchConcurrency = constants.BatchConcurrency
	}
	if cfg.Analysis.MaxDocumentChars <= 0 {
		cfg.Analysis.MaxDocumentChars = constants.MaxDocumentChars
	}
}
