package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load merges configuration from defaults, an optional TOML file
// (statscreen.toml in /etc or the working directory, or the path given
// via --config / STATSCREEN_CONFIG), environment variables and command
// line flags, in increasing precedence.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("statscreen", pflag.ContinueOnError)
	fs.String("config", "", "path to config file")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.Bool("mock", false, "use simulated metrics instead of the host's")
	fs.Bool("preview", false, "render to the terminal instead of the panel")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("STATSCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag("config", fs.Lookup("config")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("log_level", fs.Lookup("log-level")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("mock", fs.Lookup("mock")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("preview", fs.Lookup("preview")); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("statscreen")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults["log_level"].(string)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Sampler.IntervalMS <= 0 {
		return fmt.Errorf("invalid sample interval %dms", c.Sampler.IntervalMS)
	}
	if c.ScrollSpeed <= 0 {
		return fmt.Errorf("invalid scroll speed %d px/sec", c.ScrollSpeed)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("invalid font size %v", c.Font.Size)
	}
	if c.PreviewScale < 1 {
		return fmt.Errorf("invalid preview scale %d", c.PreviewScale)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}
