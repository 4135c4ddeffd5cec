package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
)

// Config holds user defaults loaded from the TOML config file
// (~/.config/collage/config.toml). Zero values mean "not set";
// command-line flags always win over config values.
type Config struct {
	Width           float64 `toml:"width"`
	TargetRowHeight float64 `toml:"target_row_height"`
	Gutter          float64 `toml:"gutter"`
	SnapLastToEdge  bool    `toml:"snap_last_to_edge"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	Store     string `toml:"store"`
	MongoURI  string `toml:"mongo_uri"`
	Cache     string `toml:"cache"`
	RedisAddr string `toml:"redis_addr"`
}

// loadConfig reads the config file from the standard location.
// A missing file is not an error; it just yields an empty config.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

// loadConfigFile reads and parses a TOML config file.
func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyPackConfig copies pack defaults from the config into opts for every
// flag the user did not set explicitly.
func applyPackConfig(cmd *cobra.Command, opts *pipeline.Options, cfg Config) {
	if cfg.Width > 0 && !cmd.Flags().Changed("width") {
		opts.Width = cfg.Width
	}
	if cfg.TargetRowHeight > 0 && !cmd.Flags().Changed("target") {
		opts.TargetRowHeight = cfg.TargetRowHeight
	}
	if cfg.Gutter > 0 && !cmd.Flags().Changed("gutter") {
		opts.Gutter = cfg.Gutter
	}
	if cfg.SnapLastToEdge && !cmd.Flags().Changed("snap") {
		opts.SnapLastToEdge = true
	}
}
