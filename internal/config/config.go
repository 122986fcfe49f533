package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for partchat
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Database DatabaseConfig `mapstructure:"database"`
	AI       AIConfig       `mapstructure:"ai"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DatabaseConfig holds catalog database configuration
type DatabaseConfig struct {
	Path         string        `mapstructure:"path"`
	Seed         bool          `mapstructure:"seed"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// AIConfig selects and configures the classification and composition strategies.
// UseMock selects the deterministic rule-based pair; otherwise an
// OpenAI-compatible chat completions endpoint is called.
type AIConfig struct {
	UseMock      bool          `mapstructure:"use_mock"`
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	HistoryTurns int           `mapstructure:"history_turns"`
}

// SessionConfig holds conversation session store configuration
type SessionConfig struct {
	Backend         string        `mapstructure:"backend"` // memory, redis
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Mode  string `mapstructure:"mode"` // production, development
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("PARTCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultModel(cfg.AI.BaseURL)
	}

	return &cfg, nil
}

// bindLegacyEnv keeps the environment names used by earlier deployments working.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"ai.use_mock": {"PARTCHAT_AI_USE_MOCK", "USE_MOCK_AI"},
		"ai.api_key":  {"PARTCHAT_AI_API_KEY", "DEEPSEEK_API_KEY"},
		"ai.base_url": {"PARTCHAT_AI_BASE_URL", "DEEPSEEK_BASE_URL"},
		"server.port": {"PARTCHAT_SERVER_PORT", "PORT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("admin.api_key", "")

	v.SetDefault("database.path", "./data/partselect.db")
	v.SetDefault("database.seed", true)
	v.SetDefault("database.query_timeout", 5*time.Second)

	v.SetDefault("ai.use_mock", true)
	v.SetDefault("ai.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.max_retries", 2)
	v.SetDefault("ai.history_turns", 6)

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.cleanup_interval", 10*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "partchat:session:")

	v.SetDefault("log.mode", "production")
	v.SetDefault("log.level", "info")
}

// defaultModel picks a model name matching the configured endpoint.
func defaultModel(baseURL string) string {
	if strings.Contains(baseURL, "openai.com") {
		return "gpt-3.5-turbo"
	}
	return "deepseek-chat"
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// UseLLM reports whether the external language model strategies are usable.
func (c *Config) UseLLM() bool {
	return !c.AI.UseMock && c.AI.APIKey != ""
}
