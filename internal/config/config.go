package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	Port           string `mapstructure:"PORT"`
	SteamTop100URL string `mapstructure:"STEAM_TOP100_URL"`
	SteamDetailURL string `mapstructure:"STEAM_DETAIL_URL"`
	SyncInterval   string `mapstructure:"SYNC_INTERVAL"`
	LogFile        string `mapstructure:"LOG_FILE"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STEAM_TOP100_URL", "")
	viper.SetDefault("STEAM_DETAIL_URL", "")
	// The upstream ranking refreshes on a two week window.
	viper.SetDefault("SYNC_INTERVAL", "336h")
	viper.SetDefault("LOG_FILE", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
