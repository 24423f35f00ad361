package config

import (
	"testing"

	"github.com/spf13/viper"
)

func loadClean(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadClean(t)

	if cfg.Catalog.CityID != 53 {
		t.Errorf("city id = %d, want 53", cfg.Catalog.CityID)
	}
	if cfg.Catalog.TheaterID != "1162" {
		t.Errorf("theater id = %q, want %q", cfg.Catalog.TheaterID, "1162")
	}
	if cfg.Cache.Timezone != "America/Maceio" {
		t.Errorf("timezone = %q, want %q", cfg.Cache.Timezone, "America/Maceio")
	}
	if cfg.HasTelegram() {
		t.Error("HasTelegram() = true with no token configured")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CINEBOT_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("CINEBOT_TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("CINEBOT_CACHE_TIMEZONE", "America/Sao_Paulo")

	cfg := loadClean(t)

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q, want %q", cfg.Telegram.Token, "123:abc")
	}
	if cfg.Telegram.ChatID != -100200300 {
		t.Errorf("chat id = %d, want -100200300", cfg.Telegram.ChatID)
	}
	if cfg.Cache.Timezone != "America/Sao_Paulo" {
		t.Errorf("timezone = %q, want %q", cfg.Cache.Timezone, "America/Sao_Paulo")
	}
	if !cfg.HasTelegram() {
		t.Error("HasTelegram() = false with token set")
	}
}

func TestLoadConfigEnvLeavesOtherDefaults(t *testing.T) {
	t.Setenv("CINEBOT_TELEGRAM_TOKEN", "123:abc")

	cfg := loadClean(t)

	if cfg.Catalog.BaseURL != "https://api-content.ingresso.com" {
		t.Errorf("base url = %q, want default", cfg.Catalog.BaseURL)
	}
	if cfg.Cache.Dir != "data" {
		t.Errorf("cache dir = %q, want %q", cfg.Cache.Dir, "data")
	}
}
