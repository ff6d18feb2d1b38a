package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterface    = "en0"
	DefaultNetworkSetup = "networksetup"
	DefaultQRSize       = 256
	EnvPrefix           = "QRNET"
)

// Config is the qrnet configuration, merged from defaults, the qrnet.yaml file,
// QRNET_* environment variables and command-line flags (highest precedence).
type Config struct {
	Interface    string  `mapstructure:"interface" yaml:"interface"`
	NetworkSetup string  `mapstructure:"networksetup" yaml:"networksetup"`
	History      History `mapstructure:"history" yaml:"history"`
	QR           QR      `mapstructure:"qr" yaml:"qr"`
}

type History struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type QR struct {
	Size int `mapstructure:"size" yaml:"size"`
}

// New returns a viper instance with qrnet defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("interface", DefaultInterface)
	v.SetDefault("networksetup", DefaultNetworkSetup)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(stateDir(), "history.db"))
	v.SetDefault("qr.size", DefaultQRSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file (file may be empty to search the default
// locations) and binds the given flags. A missing default file is not an error.
func Load(log logr.Logger, v *viper.Viper, file string, flags map[string]*pflag.Flag) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("qrnet")
		v.SetConfigType("yaml")
		for _, dir := range searchPath() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
		log.V(1).Info("No configuration file, using defaults")
	} else {
		log.V(1).Info("Loaded configuration", "file", v.ConfigFileUsed())
	}

	for key, flag := range flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.QR.Size <= 0 {
		cfg.QR.Size = DefaultQRSize
	}
	log.V(1).Info("Configuration", "interface", cfg.Interface, "networksetup", cfg.NetworkSetup, "history", cfg.History.Enabled)
	return &cfg, nil
}

func searchPath() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "qrnet"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "qrnet"))
	}
	return append(dirs, ".")
}

func stateDir() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "qrnet")
}
