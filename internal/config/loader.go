package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/dailymentor/dailymentor/internal/errs"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. The YAML file at path (optional)
// 3. MENTOR_* environment variables
//
// The three credentials/identifiers are additionally bound to the bare
// GOOGLE_API_KEY, TELEGRAM_TOKEN and TELEGRAM_CHAT_ID environment variables
// so existing scheduler deployments keep working unchanged.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MENTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy aliases. With explicit names the env prefix is not applied,
	// so both forms are listed.
	for key, names := range map[string][]string{
		"gemini.api_key":   {"MENTOR_GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"telegram.token":   {"MENTOR_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"},
		"telegram.chat_id": {"MENTOR_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID"},
	} {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, errs.NewConfigError(fmt.Sprintf("failed to bind environment variable for %s", key), err)
		}
	}

	// The config file is optional; environment variables alone are a
	// complete configuration.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !os.IsNotExist(err) && !errors.As(err, &notFound) {
			return nil, errs.NewConfigError("failed to read config file", err)
		}
		slog.Debug("config file not found, using defaults and environment", "path", path)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.NewConfigError("failed to parse config", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errs.NewConfigError("invalid configuration", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", false)

	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.temperature", DefaultGeminiTemp)
	v.SetDefault("gemini.prompt", DefaultGeminiPrompt)

	v.SetDefault("retry.max_attempts", DefaultRetryMaxAttempts)
	v.SetDefault("retry.delay", DefaultRetryDelay)

	v.SetDefault("schedule", "")
}
