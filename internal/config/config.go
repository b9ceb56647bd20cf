package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/jask/pinpad/internal/pin"
	"github.com/jask/pinpad/internal/ui/toolbar"
)

var ErrInvalid = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	PIN      PINConfig      `mapstructure:"pin"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// PINConfig describes the code being entered and what it is checked against.
// Hash, when set, wins over Expected.
type PINConfig struct {
	Length    int    `mapstructure:"length"`
	Expected  string `mapstructure:"expected"`
	Hash      string `mapstructure:"hash"`
	Mask      string `mapstructure:"mask"`
	FocusMode string `mapstructure:"focus_mode"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title         string `mapstructure:"title"`
	ToolbarLayout string `mapstructure:"toolbar_layout"`
	Divider       bool   `mapstructure:"divider"`
	Keypad        bool   `mapstructure:"keypad"`
	Mouse         bool   `mapstructure:"mouse"`
}

// LogConfig controls the file logger. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "pinpad")
}

// Path is the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("PINPAD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "pinpad", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(dataDir(), "pinpad.db"))
	v.SetDefault("pin.length", 6)
	v.SetDefault("pin.expected", "123456")
	v.SetDefault("pin.hash", "")
	v.SetDefault("pin.mask", "")
	v.SetDefault("pin.focus_mode", pin.FocusTarget.String())
	v.SetDefault("ui.title", "Enter PIN")
	v.SetDefault("ui.toolbar_layout", toolbar.LayoutWeighted.String())
	v.SetDefault("ui.divider", true)
	v.SetDefault("ui.keypad", true)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("log.path", filepath.Join(dataDir(), "pinpad.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix PINPAD_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("PINPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file leaves the defaults in place
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", Path(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate reports the first setting the screen cannot run with.
func (c Config) Validate() error {
	if c.PIN.Length < 1 || c.PIN.Length > pin.MaxLength {
		return fmt.Errorf("%w: pin.length %d outside 1..%d", ErrInvalid, c.PIN.Length, pin.MaxLength)
	}
	if c.PIN.Hash == "" {
		if len(c.PIN.Expected) != c.PIN.Length || len(pin.Digits(c.PIN.Expected)) != len(c.PIN.Expected) {
			return fmt.Errorf("%w: pin.expected must be %d digits", ErrInvalid, c.PIN.Length)
		}
	} else if !strings.HasPrefix(c.PIN.Hash, "$2") {
		return fmt.Errorf("%w: pin.hash is not a bcrypt hash", ErrInvalid)
	}
	if utf8.RuneCountInString(c.PIN.Mask) > 1 {
		return fmt.Errorf("%w: pin.mask must be a single character", ErrInvalid)
	}
	if _, err := pin.ParseFocusMode(c.PIN.FocusMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := toolbar.ParseLayout(c.UI.ToolbarLayout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// MaskRune is the configured mask, or 0 to show digits.
func (p PINConfig) MaskRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Mask)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// Verifier builds the check the screen submits codes to.
func (p PINConfig) Verifier() pin.Verifier {
	if p.Hash != "" {
		return pin.Hashed(p.Hash)
	}
	return pin.Literal(p.Expected)
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("pin.length", cfg.PIN.Length)
	v.Set("pin.expected", cfg.PIN.Expected)
	v.Set("pin.hash", cfg.PIN.Hash)
	v.Set("pin.mask", cfg.PIN.Mask)
	v.Set("pin.focus_mode", cfg.PIN.FocusMode)
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.toolbar_layout", cfg.UI.ToolbarLayout)
	v.Set("ui.divider", cfg.UI.Divider)
	v.Set("ui.keypad", cfg.UI.Keypad)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
