// Package config provides configuration loading, validation, and management
// for the daily mentor bot. It handles reading from YAML files, environment
// variables, setting default values, and validating configuration parameters.
package config

import (
	"time"
)

// Config defines the application configuration parameters for all
// components of the system: logging, quote generation, delivery, the retry
// policy applied to both provider calls, and the optional schedule.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Retry    RetryConfig    `mapstructure:"retry"`

	// Schedule is an optional cron expression. When set, the bot keeps
	// running and executes the pipeline on that schedule; when empty, it
	// runs the pipeline once and exits.
	Schedule string `mapstructure:"schedule"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// GeminiConfig holds the settings for the Gemini text-generation provider.
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"     validate:"required"`
	Model       string  `mapstructure:"model"       validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"min=0,max=2"`
	Prompt      string  `mapstructure:"prompt"      validate:"required"`
}

// TelegramConfig holds the delivery credential and destination. ChatID is
// kept as a string so both numeric chat IDs and @channel names work.
type TelegramConfig struct {
	Token  string `mapstructure:"token"   validate:"required"`
	ChatID string `mapstructure:"chat_id" validate:"required"`
}

// RetryConfig is the retry policy applied uniformly to the generation and
// delivery calls.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1"`
	Delay       time.Duration `mapstructure:"delay"        validate:"min=0"`
}

// Values matching the generation provider and retry policy the bot was
// deployed with.
const (
	DefaultLogLevel         = "info"
	DefaultGeminiModel      = "gemini-2.5-flash"
	DefaultGeminiTemp       = float32(0.7)
	DefaultRetryMaxAttempts = 3
	DefaultRetryDelay       = 5 * time.Second
)

// DefaultGeminiPrompt asks for exactly one quote with no conversational
// filler so the response can be forwarded verbatim.
const DefaultGeminiPrompt = "Create 1 short, punchy motivational quote for a programmer. Just the quote, no intro text."
