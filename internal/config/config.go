package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig identifies the Ingresso.com scope: one city, one theater
type CatalogConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	CityID    int    `mapstructure:"city_id"`
	TheaterID string `mapstructure:"theater_id"`
}

// CacheConfig holds cache placement and the reference timezone used for
// expiry decisions
type CacheConfig struct {
	Dir      string `mapstructure:"dir"`
	Timezone string `mapstructure:"timezone"`
}

// TelegramConfig holds bot credentials and the default delivery chat
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration: Cinesystem Maceió
// (city 53, theater 1162), expiry anchored to America/Maceio.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:   "https://api-content.ingresso.com",
			CityID:    53,
			TheaterID: "1162",
		},
		Cache: CacheConfig{
			Dir:      "data",
			Timezone: "America/Maceio",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinebot", "cinebot.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinebot", "cinebot.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinebot")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinebot")
	}
}

// LoadConfig loads configuration from file and environment. A missing
// config file is fine; CINEBOT_* environment variables override file values
// (e.g. CINEBOT_TELEGRAM_TOKEN).
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CINEBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register every key so Unmarshal sees values that come only from the
	// environment. AutomaticEnv alone resolves keys lazily on Get, which
	// Unmarshal never does for unknown keys.
	viper.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	viper.SetDefault("catalog.city_id", cfg.Catalog.CityID)
	viper.SetDefault("catalog.theater_id", cfg.Catalog.TheaterID)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.timezone", cfg.Cache.Timezone)
	viper.SetDefault("telegram.token", cfg.Telegram.Token)
	viper.SetDefault("telegram.chat_id", cfg.Telegram.ChatID)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// CacheFile returns the path of the JSON cache file
func (c *Config) CacheFile() string {
	return filepath.Join(c.Cache.Dir, "cache.json")
}

// RegistryFile returns the path of the chat registry database
func (c *Config) RegistryFile() string {
	return filepath.Join(c.Cache.Dir, "chats.db")
}

// HasTelegram reports whether bot credentials are configured
func (c *Config) HasTelegram() bool {
	return c.Telegram.Token != ""
}
