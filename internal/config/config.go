package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/dermaquiz/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. DERMAQUIZ_API_BASE_URL.
const EnvPrefix = "DERMAQUIZ"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env    string `mapstructure:"env"`    // local, dev, production
	API    API    `mapstructure:"api"`    // backend the CLI and dashboard talk to
	Server Server `mapstructure:"server"` // reference backend run by "serve"
	Log    Log    `mapstructure:"log"`
	LLM    LLM    `mapstructure:"llm"`

	// DB is the local state database (LLM event log).
	DB string `mapstructure:"db"`
}

// API configures the REST client.
type API struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"-"` // loaded from environment or credentials file
}

// Server configures the reference backend.
type Server struct {
	Addr           string   `mapstructure:"addr"`
	DB             string   `mapstructure:"db"` // SQLite path or postgres:// URL
	Token          string   `mapstructure:"-"`  // bearer token clients must present
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Log configures the zap logger.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// LLM configures question drafting.
type LLM struct {
	Provider   string        `mapstructure:"provider"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Anthropic  Credentials   `mapstructure:"anthropic"`
	OpenAI     Credentials   `mapstructure:"openai"`
	Gemini     Credentials   `mapstructure:"gemini"`
	OpenRouter Credentials   `mapstructure:"openrouter"`
}

// Credentials selects a model and carries its API key.
type Credentials struct {
	APIKey  string `mapstructure:"-"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration from an optional .env file, an optional config
// file and environment variables. When path is empty, config.yaml is looked
// up in the working directory and the user config dir; a missing file is
// not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Secrets are never read from the config file.
	_ = v.BindEnv("api_token", EnvPrefix+"_TOKEN")
	_ = v.BindEnv("server_token", EnvPrefix+"_SERVER_TOKEN")
	_ = v.BindEnv("anthropic_api_key", EnvPrefix+"_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("openai_api_key", EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("gemini_api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openrouter_api_key", EnvPrefix+"_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.API.Token = v.GetString("api_token")
	cfg.Server.Token = v.GetString("server_token")
	cfg.LLM.Anthropic.APIKey = v.GetString("anthropic_api_key")
	cfg.LLM.OpenAI.APIKey = v.GetString("openai_api_key")
	cfg.LLM.Gemini.APIKey = v.GetString("gemini_api_key")
	cfg.LLM.OpenRouter.APIKey = v.GetString("openrouter_api_key")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("db", "")

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", "15s")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.db", "")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	llmDefaults := llm.DefaultConfig()
	v.SetDefault("llm.provider", llmDefaults.Provider)
	v.SetDefault("llm.timeout", llmDefaults.Timeout.String())
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", llmDefaults.OpenRouter.BaseURL)
}

// loadDotEnv loads a .env file if it exists. Variables already set in the
// environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Dir returns the per-user config directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dermaquiz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".config", "dermaquiz"), nil
}

// Production reports whether the environment is production.
func (c *Config) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LLMConfig converts the llm section into the provider configuration.
func (c *Config) LLMConfig() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	if c.LLM.Timeout > 0 {
		out.Timeout = c.LLM.Timeout
	}
	out.Anthropic = llm.AnthropicConfig{APIKey: c.LLM.Anthropic.APIKey, Model: c.LLM.Anthropic.Model}
	out.OpenAI = llm.OpenAIConfig{APIKey: c.LLM.OpenAI.APIKey, Model: c.LLM.OpenAI.Model, BaseURL: c.LLM.OpenAI.BaseURL}
	out.Gemini = llm.GeminiConfig{APIKey: c.LLM.Gemini.APIKey, Model: c.LLM.Gemini.Model}
	out.OpenRouter = llm.OpenRouterConfig{APIKey: c.LLM.OpenRouter.APIKey, Model: c.LLM.OpenRouter.Model, BaseURL: c.LLM.OpenRouter.BaseURL}
	return out
}
