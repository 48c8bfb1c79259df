// Package config loads the runtime settings of autocli programs.
//
// Settings are resolved with viper, from lowest to highest precedence:
// built-in defaults, config.yaml in the config directory, AUTOCLI_* entries of
// a .env file in the working directory, AUTOCLI_* environment variables and
// bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read.
const EnvPrefix = "AUTOCLI"

// Setting keys.
const (
	KeyLogLevel = "log-level"
	KeyLogFile  = "log-file"
	KeyTheme    = "theme"
	KeyNoColor  = "no-color"
	KeyMaxWidth = "max-width"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel string `mapstructure:"log-level"`
	LogFile  string `mapstructure:"log-file"`
	Theme    string `mapstructure:"theme"`
	NoColor  bool   `mapstructure:"no-color"`
	MaxWidth int    `mapstructure:"max-width"`
}

// Options locates the files Load reads.
type Options struct {
	ConfigDir string // Directory holding config.yaml; DefaultConfigDir when empty
	WorkDir   string // Directory holding .env; the working directory when empty
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/autocli or the platform equivalent.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "autocli")
}

// SetDefaults registers the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyMaxWidth, 120)
}

// BindFlags binds the log-level and log-file flags of fs to v when present.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyLogLevel, KeyLogFile} {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", key, err)
		}
	}
	return nil
}

// Load resolves the settings on v. A missing config file or .env file is not
// an error; a malformed one is.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if configDir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}
	if workDir != "" {
		values, err := readDotEnv(filepath.Join(workDir, ".env"))
		if err != nil {
			return nil, err
		}
		if len(values) > 0 {
			if err := v.MergeConfigMap(values); err != nil {
				return nil, fmt.Errorf("failed to merge .env settings: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if cfg.MaxWidth < 0 {
		return nil, fmt.Errorf("invalid %s %d: must not be negative", KeyMaxWidth, cfg.MaxWidth)
	}
	return &cfg, nil
}

// readDotEnv returns the AUTOCLI_* entries of a .env file keyed by setting name.
func readDotEnv(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	values := make(map[string]any)
	for key, value := range envMap {
		name, ok := strings.CutPrefix(key, EnvPrefix+"_")
		if !ok {
			continue
		}
		values[strings.ToLower(strings.ReplaceAll(name, "_", "-"))] = value
	}
	return values, nil
}
