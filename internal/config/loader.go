package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FO76_FEEDS_OUT_DIR.
const EnvPrefix = "FO76_FEEDS"

// NewViper returns a viper instance that reads configFile, or searches for
// fo76-feeds.yaml in "." and the XDG config directory when configFile is empty.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(XDGConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key with its default so env overrides and
// Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("format", d.Format)
	v.SetDefault("notify", d.Notify)
	v.SetDefault("history", d.History)
	v.SetDefault("sources.nukaknights", d.Sources.NukaKnights)
	v.SetDefault("sources.minerva", d.Sources.Minerva)
	v.SetDefault("sources.nukacrypt", d.Sources.NukaCrypt)
}

// Load reads the config file (if any), applies env overrides and validates the
// result. A missing config file is not an error unless it was named explicitly.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
