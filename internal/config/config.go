// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Native library settings
	Native NativeConfig `mapstructure:"native"`

	// Handler script settings
	Script ScriptConfig `mapstructure:"script"`

	// Status socket settings
	IPC IPCConfig `mapstructure:"ipc"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// NativeConfig selects and configures the compositor library
type NativeConfig struct {
	Backend string            `mapstructure:"backend"` // "wlc" or "sim"
	Env     map[string]string `mapstructure:"env"`     // Exported before native init (WLC_* variables)
}

// ScriptConfig points at the JavaScript handler script
type ScriptConfig struct {
	Path string `mapstructure:"path"`
}

// IPCConfig controls the status socket
type IPCConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SocketPath string `mapstructure:"socket_path"` // Empty means $XDG_RUNTIME_DIR/gowlc.sock
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Native: NativeConfig{
			Backend: "wlc",
			Env:     map[string]string{},
		},
		Script: ScriptConfig{
			Path: "",
		},
		IPC: IPCConfig{
			Enabled:    true,
			SocketPath: "",
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("gowlc")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "gowlc"))
		}
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "gowlc"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("GOWLC")
	viper.AutomaticEnv()

	viper.SetDefault("native.backend", DefaultConfig.Native.Backend)
	viper.SetDefault("native.env", DefaultConfig.Native.Env)
	viper.SetDefault("script.path", DefaultConfig.Script.Path)
	viper.SetDefault("ipc.enabled", DefaultConfig.IPC.Enabled)
	viper.SetDefault("ipc.socket_path", DefaultConfig.IPC.SocketPath)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit --config path that does not exist yet is not an error
		// either, so "config init" can create it.
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate checks values viper cannot check on its own
func (c *Config) Validate() error {
	switch c.Native.Backend {
	case "wlc", "sim":
	default:
		return fmt.Errorf("invalid native.backend %q (want wlc or sim)", c.Native.Backend)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	c := Get()
	viper.Set("native.backend", c.Native.Backend)
	viper.Set("native.env", c.Native.Env)
	viper.Set("script.path", c.Script.Path)
	viper.Set("ipc.enabled", c.IPC.Enabled)
	viper.Set("ipc.socket_path", c.IPC.SocketPath)
	viper.Set("logging.log_level", c.Logging.LogLevel)

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gowlc", "gowlc.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "gowlc.toml"
	}
	return filepath.Join(home, ".config", "gowlc", "gowlc.toml")
}

// NativeEnv returns native.env with upper-cased names. Viper lower-cases
// map keys, but libwlc reads WLC_* variables.
func (c *Config) NativeEnv() map[string]string {
	env := make(map[string]string, len(c.Native.Env))
	for k, v := range c.Native.Env {
		env[strings.ToUpper(k)] = v
	}
	return env
}

// SocketPath resolves the status socket location
func (c *Config) SocketPath() string {
	if c.IPC.SocketPath != "" {
		return c.IPC.SocketPath
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "gowlc.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("gowlc-%d.sock", os.Getuid()))
}
