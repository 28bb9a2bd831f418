package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultDataDir = "~/.local/share/focusboard"

// DataDir returns the data directory from FOCUSBOARD_DATA_DIR env var,
// falling back to DefaultDataDir.
func DataDir() string {
	if env := os.Getenv("FOCUSBOARD_DATA_DIR"); env != "" {
		return env
	}
	return DefaultDataDir
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Config holds the settings shared by every binary
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	Log     struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	OpenState struct {
		Debounce time.Duration `mapstructure:"debounce"`
	} `mapstructure:"openstate"`
	Backend struct {
		BusyTimeout      time.Duration `mapstructure:"busy_timeout"`
		OptimizeInterval time.Duration `mapstructure:"optimize_interval"`
	} `mapstructure:"backend"`
}

// DatabasePath is the SQLite file inside the data directory
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "database", "data.db")
}

// BackupDir receives database backups
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "database_backups")
}

// PrefsDir holds the UI preference store
func (c *Config) PrefsDir() string {
	return filepath.Join(c.DataDir, "prefs")
}

// flagKeys maps command-line flags onto config keys
var flagKeys = map[string]string{
	"data-dir":   "data_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// AddFlags registers the flags Load understands
func AddFlags(fs *pflag.FlagSet) {
	fs.String("data-dir", "", "directory holding the database and preferences")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (text or json)")
}

// Load reads focusboard.{toml,yaml} from file, or from the user config
// directory and the working directory when file is empty. FOCUSBOARD_*
// env vars override the file, and flags that were set override both.
// A missing config file is not an error.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", DataDir())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("openstate.debounce", 300*time.Millisecond)
	v.SetDefault("backend.busy_timeout", 5*time.Second)
	v.SetDefault("backend.optimize_interval", 10*time.Minute)

	v.SetEnvPrefix("FOCUSBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("focusboard")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "focusboard"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	dir, err := ExpandHome(c.DataDir)
	if err != nil {
		return nil, err
	}
	c.DataDir = dir

	if c.OpenState.Debounce <= 0 {
		return nil, fmt.Errorf("openstate.debounce must be positive, got %s", c.OpenState.Debounce)
	}
	return &c, nil
}
