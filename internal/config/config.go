package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "ydwatch"

// Settings is the resolved runtime configuration.
type Settings struct {
	BaseURL        string
	PollInterval   time.Duration
	SingleInterval time.Duration
	FillStep       time.Duration
	Timeout        time.Duration
	RetryMax       int
	NoUI           bool
	LogLevel       string
	LogFormat      string
	LogFile        string
}

// Dir returns the app's configuration directory, e.g. ~/.config/ydwatch.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://127.0.0.1:5000")
	v.SetDefault("poll_interval", 9000*time.Millisecond)
	v.SetDefault("single_interval", 2000*time.Millisecond)
	v.SetDefault("fill_step", 35*time.Millisecond)
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("retry_max", 2)
	v.SetDefault("no_ui", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("log_file", "")
}

// Init wires Viper with config paths, .env, env, defaults, and flag bindings.
// It is non-fatal: a missing config file or .env is ignored.
func Init(v *viper.Viper, root *cobra.Command) error {
	// .env in the working directory feeds the environment before Viper reads it.
	_ = godotenv.Load()

	setDefaults(v)

	if cfgDir, err := Dir(); err == nil {
		v.AddConfigPath(cfgDir)
	}
	v.AddConfigPath(".")
	v.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: YDWATCH_*
	v.SetEnvPrefix("YDWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if root != nil {
		flags := root.PersistentFlags()
		for key, flag := range map[string]string{
			"base_url":   "base-url",
			"no_ui":      "no-ui",
			"log_level":  "log-level",
			"log_format": "log-format",
			"log_file":   "log-file",
			"timeout":    "timeout",
			"retry_max":  "retry-max",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// Load resolves Settings from v.
func Load(v *viper.Viper) Settings {
	return Settings{
		BaseURL:        v.GetString("base_url"),
		PollInterval:   v.GetDuration("poll_interval"),
		SingleInterval: v.GetDuration("single_interval"),
		FillStep:       v.GetDuration("fill_step"),
		Timeout:        v.GetDuration("timeout"),
		RetryMax:       v.GetInt("retry_max"),
		NoUI:           v.GetBool("no_ui"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		LogFile:        v.GetString("log_file"),
	}
}
