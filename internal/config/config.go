package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "reelpreview"

type Config struct {
	Playback  PlaybackConfig  `koanf:"playback"`
	Durations DurationsConfig `koanf:"durations"` // default dwell per segment kind
	Audio     AudioConfig     `koanf:"audio"`
	Notify    NotifyConfig    `koanf:"notify"`
	Log       LogConfig       `koanf:"log"`
}

// PlaybackConfig holds session construction policy.
type PlaybackConfig struct {
	RequireSegments bool `koanf:"require_segments"` // reject reels with no segments
}

// DurationsConfig holds the dwell used when a reel segment omits one.
type DurationsConfig struct {
	Intro      time.Duration `koanf:"intro"`
	Photo      time.Duration `koanf:"photo"`
	Before     time.Duration `koanf:"before"`
	After      time.Duration `koanf:"after"`
	Comparison time.Duration `koanf:"comparison"`
	Outro      time.Duration `koanf:"outro"`
	Video      time.Duration `koanf:"video"`
}

// AudioConfig holds background track settings.
type AudioConfig struct {
	Enabled *bool   `koanf:"enabled"` // default: true
	Volume  float64 `koanf:"volume"`  // 0.0-1.0, default: 1.0
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Finished bool `koanf:"finished"` // notify when a preview plays through
	MPRIS    bool `koanf:"mpris"`    // expose the preview to media keys (Linux)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level      string `koanf:"level"`        // "debug", "info", "warn", "error" (default: info)
	File       string `koanf:"file"`         // empty means $XDG_STATE_HOME/reelpreview/reelpreview.log
	Format     string `koanf:"format"`       // "json" or "console" (default: json)
	MaxSizeMB  int    `koanf:"max_size_mb"`  // default: 10
	MaxBackups int    `koanf:"max_backups"`  // default: 3
	MaxAgeDays int    `koanf:"max_age_days"` // default: 28
	Compress   bool   `koanf:"compress"`
}

// Load reads the config files in priority order and applies defaults.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFile reads a config file named explicitly by the user. Unlike
// LoadFrom, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the given files in order (last wins), skipping missing ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Durations = cfg.Durations.withDefaults()
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/reelpreview/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultDurations returns the dwell times of the transformation reel.
func DefaultDurations() DurationsConfig {
	return DurationsConfig{
		Intro:      1500 * time.Millisecond,
		Photo:      1500 * time.Millisecond,
		Before:     1500 * time.Millisecond,
		After:      1500 * time.Millisecond,
		Comparison: 3000 * time.Millisecond,
		Outro:      1500 * time.Millisecond,
		Video:      5000 * time.Millisecond,
	}
}

func (d DurationsConfig) withDefaults() DurationsConfig {
	def := DefaultDurations()
	pick := func(v, fallback time.Duration) time.Duration {
		if v <= 0 {
			return fallback
		}
		return v
	}
	return DurationsConfig{
		Intro:      pick(d.Intro, def.Intro),
		Photo:      pick(d.Photo, def.Photo),
		Before:     pick(d.Before, def.Before),
		After:      pick(d.After, def.After),
		Comparison: pick(d.Comparison, def.Comparison),
		Outro:      pick(d.Outro, def.Outro),
		Video:      pick(d.Video, def.Video),
	}
}

// AudioEnabled returns true unless audio was explicitly disabled.
func (c *Config) AudioEnabled() bool {
	return c.Audio.Enabled == nil || *c.Audio.Enabled
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio
	if cfg.Volume <= 0 || cfg.Volume > 1 {
		cfg.Volume = 1
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format != "console" {
		cfg.Format = "json"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}
	return cfg
}
