package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds process-level configuration sourced from the environment.
type Config struct {
	// HTTP server
	Port   string
	APIKey string

	// Notion
	NotionAPIKey    string
	NotionWorkspace string

	// Ledger configuration file (payment directory + database IDs)
	LedgerConfigPath string

	// Logging
	LogLevel string

	// Notifications
	NotifyQueueSize  int
	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:   getEnv("PORT", "8080"),
		APIKey: getEnv("API_KEY", ""),

		NotionAPIKey:    getEnv("NOTION_API_KEY", ""),
		NotionWorkspace: getEnv("NOTION_WORKSPACE", "codenuga"),

		LedgerConfigPath: getEnv("LEDGER_CONFIG", "./ledger.yml"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		NotifyQueueSize:  getEnvInt("NOTIFY_QUEUE_SIZE", 16),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found. A missing required key is a startup error, never a default.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIKey == "" {
		errs = append(errs, "API_KEY is required")
	}
	if c.NotionAPIKey == "" {
		errs = append(errs, "NOTION_API_KEY is required")
	}
	if c.LedgerConfigPath == "" {
		errs = append(errs, "LEDGER_CONFIG cannot be empty")
	}

	if c.NotifyQueueSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid notify queue size %d: must be at least 1", c.NotifyQueueSize))
	}

	// Telegram is optional, but token and chat ID only make sense together.
	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, "TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if c.TelegramBotToken == "" && c.TelegramChatID != 0 {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required when TELEGRAM_CHAT_ID is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
