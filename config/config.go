package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/slangscope/slangscope/internal"
)

const EnvPrefix = "SLANGSCOPE"

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var defaults = map[string]any{
	"llm.service":                     "openai",
	"llm.model":                       "gpt-3.5-turbo",
	"llm.timeout":                     60,
	"llm.max_retries":                 3,
	"llm.openai_api_key":              "",
	"llm.anthropic_api_key":           "",
	"llm.gemini_api_key":              "",
	"llm.openai_endpoint":             "",
	"llm.openai_org_id":               "",
	"llm.azure_openai_endpoint":       "",
	"llm.azure_openai.llm_deployment": "",
	"llm.gemini_endpoint":             "https://generativelanguage.googleapis.com/v1beta",
	"flows.max_retries":               2,
	"flows.retry_backoff":             250,
	"flows.max_tokens":                1024,
	"analysis.max_input_chars":        10_000,
	"analysis.max_input_tokens":       3_000,
	"analysis.summarize":              true,
	"store.type":                      "memory",
	"store.history":                   true,
	"store.max_records":               500,
	"store.postgres.dsn":              "",
	"term_cache.type":                 "memory",
	"term_cache.ttl":                  24 * 60,
	"term_cache.redis.address":        "localhost:6379",
	"term_cache.redis.password":       "",
	"term_cache.redis.db":             0,
	"tasks.enabled":                   true,
	"tasks.throttle":                  5,
	"tasks.max_retries":               2,
	"tasks.timeout":                   120,
	"server.host":                     "0.0.0.0",
	"server.port":                     8000,
	"server.web_enabled":              true,
	"server.max_request_size":         1 << 20,
	"server.allowed_origins":          []string{"chrome-extension://*", "moz-extension://*"},
	"log.level":                       "info",
	"auth.secret":                     "",
	"auth.required":                   false,
	"observability.otlp_endpoint":     "",
	"observability.insecure":          true,
	"observability.service_name":      "slangscope",
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config.yaml in the working directory is not an error; defaults and ENV are used.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("no config.yaml found, using defaults and environment")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	bindings := map[string][]string{
		"llm.openai_api_key":    {EnvPrefix + "_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"llm.anthropic_api_key": {EnvPrefix + "_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		"llm.gemini_api_key":    {EnvPrefix + "_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"auth.secret":           {EnvPrefix + "_AUTH_SECRET"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the config for values that would prevent the server from starting.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Store.Type == "postgres" && cfg.Store.Postgres.DSN == "" {
		return errors.New("invalid configuration: store.postgres.dsn must be set")
	}
	if cfg.Auth.Required && cfg.Auth.Secret == "" {
		return errors.New("invalid configuration: auth.secret must be set when auth.required is true")
	}
	return nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
