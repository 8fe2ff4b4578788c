package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var providerDefaults = map[string]struct {
	apiRoot string
	model   string
	keyEnv  string
}{
	ProviderOpenAI:    {"https://api.openai.com/v1", "gpt-3.5-turbo", "OPENAI_API_KEY"},
	ProviderAnthropic: {"https://api.anthropic.com", "claude-3-5-haiku-latest", "ANTHROPIC_API_KEY"},
}

// LoadConfig builds the configuration from defaults, the optional config file,
// the environment and the command line flags, in increasing order of precedence.
// cli may be nil.
func LoadConfig(cli *CliConfig) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.static_file", "index.html")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("backend.provider", ProviderOpenAI)
	v.SetDefault("backend.timeout", 120*time.Second)
	v.SetDefault("backend.max_tokens", 2048)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, env := range map[string]string{
		"server.host":      "HOST",
		"server.port":      "PORT",
		"backend.provider": "LLM_PROVIDER",
		"backend.model":    "LLM_MODEL",
		"backend.api_root": "LLM_API_ROOT",
		"log.level":        "LOG_LEVEL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if cli != nil {
		if cli.ConfigFile != "" {
			v.SetConfigFile(cli.ConfigFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		if cli.flags != nil {
			if err := v.BindPFlag("server.port", cli.flags.Lookup("port")); err != nil {
				return nil, fmt.Errorf("error binding port flag: %w", err)
			}
		}
	}

	// The credential env var depends on which provider was selected.
	provider := strings.ToLower(v.GetString("backend.provider"))
	defaults, ok := providerDefaults[provider]
	if !ok {
		return nil, fmt.Errorf("unknown backend.provider %q", provider)
	}
	if err := v.BindEnv("backend.api_key", defaults.keyEnv); err != nil {
		return nil, fmt.Errorf("error binding %s: %w", defaults.keyEnv, err)
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	configuration.Backend.Provider = provider
	if configuration.Backend.APIRoot == "" {
		configuration.Backend.APIRoot = defaults.apiRoot
	}
	configuration.Backend.APIRoot = strings.TrimSuffix(configuration.Backend.APIRoot, "/")
	if configuration.Backend.Model == "" {
		configuration.Backend.Model = defaults.model
	}
	if cli != nil && cli.Debug {
		configuration.Log.Level = "debug"
	}

	if err := configuration.validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// The API key is optional: without it every completion call fails upstream.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.StaticFile == "" {
		return errors.New("server.static_file is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	if c.Backend.Timeout < 0 {
		return errors.New("backend.timeout must not be negative")
	}
	if c.Backend.Provider == ProviderAnthropic && c.Backend.MaxTokens <= 0 {
		return errors.New("backend.max_tokens must be positive for the anthropic provider")
	}
	return nil
}
