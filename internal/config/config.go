package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Export   ExportConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Dark           bool   // default theme; the persisted flag wins once set
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	Filename string
}

// Load reads configuration from file and env. Env var overrides use prefix PENNYBOOK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "pennybook", "pennybook.db"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.dark", true)
	v.SetDefault("export.filename", "expenses.csv")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PENNYBOOK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pennybook"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PENNYBOOK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
