// Package config loads application configuration from file and
// environment via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Playback PlaybackConfig `mapstructure:"playback"`
	Startup  StartupConfig  `mapstructure:"startup"`
	Library  LibraryConfig  `mapstructure:"library"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlaybackConfig holds the autoplay preferences consumed at startup.
type PlaybackConfig struct {
	AutoplayOnAdd     bool `mapstructure:"autoplay_on_add"`     // Start playback when an add batch inserts its first track
	AutoplayOnStartup bool `mapstructure:"autoplay_on_startup"` // Start playback after the startup restore batch
	InterruptOnAdd    bool `mapstructure:"interrupt_on_add"`    // Autoplay may interrupt the current track
}

// StartupConfig holds the startup-restore policy.
type StartupConfig struct {
	RememberPlaylist bool `mapstructure:"remember_playlist"` // Restore the previous session's playlist
}

// LibraryConfig holds file-classification settings.
type LibraryConfig struct {
	AudioExtensions    []string `mapstructure:"audio_extensions"`
	PlaylistExtensions []string `mapstructure:"playlist_extensions"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			AutoplayOnAdd:     true,
			AutoplayOnStartup: false,
			InterruptOnAdd:    false,
		},
		Startup: StartupConfig{
			RememberPlaylist: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS.
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aural", "aural.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aural", "aural.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS.
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "aural")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "aural")
	}
}

// DefaultStatePath returns the directory for the persisted playlist state.
func DefaultStatePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "aural", "state")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "aural", "state")
	}
}

// LoadConfig loads configuration from file and environment.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("AURAL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file.
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("playback.autoplay_on_add", cfg.Playback.AutoplayOnAdd)
	viper.Set("playback.autoplay_on_startup", cfg.Playback.AutoplayOnStartup)
	viper.Set("playback.interrupt_on_add", cfg.Playback.InterruptOnAdd)
	viper.Set("startup.remember_playlist", cfg.Startup.RememberPlaylist)
	viper.Set("library.audio_extensions", cfg.Library.AudioExtensions)
	viper.Set("library.playlist_extensions", cfg.Library.PlaylistExtensions)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
