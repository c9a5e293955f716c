package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Serial SerialConfig
	UI     UIConfig
	Log    LogConfig
}

// SerialConfig holds the session defaults.
type SerialConfig struct {
	BaudRate    int           `mapstructure:"baud_rate"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	ReadBuffer  int           `mapstructure:"read_buffer"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	MaxOutputLines int           `mapstructure:"max_output_lines"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
}

// LogConfig holds logging settings. An empty File disables logging in the TUI.
type LogConfig struct {
	File  string
	Level string
}

var ErrInvalid = errors.New("invalid configuration")

// New returns a viper instance with defaults, the config file and
// SERIALTERM_ env overrides registered. Callers may bind flags onto it
// before calling Decode.
func New(path string) (*viper.Viper, error) {
	v := viper.New()

	// default values
	v.SetDefault("serial.baud_rate", 115200)
	v.SetDefault("serial.read_timeout", 50*time.Millisecond)
	v.SetDefault("serial.read_buffer", 4096)
	v.SetDefault("ui.max_output_lines", 5000)
	v.SetDefault("ui.tick_interval", 100*time.Millisecond)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SERIALTERM_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "serialterm"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SERIALTERM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; a named one must exist
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Decode unmarshals and validates the configuration held by v.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads configuration from defaults, file and env.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// Validate rejects values the session and UI cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Serial.BaudRate <= 0:
		return fmt.Errorf("%w: serial.baud_rate must be positive, got %d", ErrInvalid, c.Serial.BaudRate)
	case c.Serial.ReadTimeout < 0:
		return fmt.Errorf("%w: serial.read_timeout must not be negative, got %s", ErrInvalid, c.Serial.ReadTimeout)
	case c.Serial.ReadBuffer <= 0:
		return fmt.Errorf("%w: serial.read_buffer must be positive, got %d", ErrInvalid, c.Serial.ReadBuffer)
	case c.UI.MaxOutputLines <= 0:
		return fmt.Errorf("%w: ui.max_output_lines must be positive, got %d", ErrInvalid, c.UI.MaxOutputLines)
	case c.UI.TickInterval <= 0:
		return fmt.Errorf("%w: ui.tick_interval must be positive, got %s", ErrInvalid, c.UI.TickInterval)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
