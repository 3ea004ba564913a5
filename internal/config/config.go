package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/rebeliceyang/lazylite/internal/keymap"
	"github.com/rebeliceyang/lazylite/internal/ui/theme"
)

const appName = "lazylite"

// Config holds all application configuration
type Config struct {
	UI       UIConfig         `mapstructure:"ui" yaml:"ui"`
	Input    InputConfig      `mapstructure:"input" yaml:"input"`
	History  HistoryConfig    `mapstructure:"history" yaml:"history"`
	Log      LogConfig        `mapstructure:"log" yaml:"log"`
	Export   ExportConfig     `mapstructure:"export" yaml:"export"`
	Keybinds keymap.Overrides `mapstructure:"keybinds" yaml:"keybinds"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme" yaml:"theme"`
	ColumnWidth  int    `mapstructure:"column_width" yaml:"column_width"`
	ZoomFields   int    `mapstructure:"zoom_fields" yaml:"zoom_fields"`
	MouseEnabled bool   `mapstructure:"mouse_enabled" yaml:"mouse_enabled"`
}

type InputConfig struct {
	QueryPrefix string `mapstructure:"query_prefix" yaml:"query_prefix"`
	ExecPrefix  string `mapstructure:"exec_prefix" yaml:"exec_prefix"`
	CustomTitle string `mapstructure:"custom_title" yaml:"custom_title"`
}

type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	MaxEntries int    `mapstructure:"max_entries" yaml:"max_entries"`
	Path       string `mapstructure:"path" yaml:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Format string `mapstructure:"format" yaml:"format"` // csv or json
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "default",
			ColumnWidth:  5,
			ZoomFields:   5,
			MouseEnabled: false,
		},
		Input: InputConfig{
			QueryPrefix: "query",
			ExecPrefix:  "exec ",
			CustomTitle: "custom search",
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "csv",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.column_width", d.UI.ColumnWidth)
	v.SetDefault("ui.zoom_fields", d.UI.ZoomFields)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("input.query_prefix", d.Input.QueryPrefix)
	v.SetDefault("input.exec_prefix", d.Input.ExecPrefix)
	v.SetDefault("input.custom_title", d.Input.CustomTitle)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.max_entries", d.History.MaxEntries)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.format", d.Export.Format)
}

// Loader reads the config file and can keep watching it
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader for path, or for the default search path when
// path is empty: the user config directory, then the current directory
func NewLoader(path string) *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")

		if dir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	setDefaults(v)
	return &Loader{v: v}
}

// Load loads configuration from file, falling back to defaults when no file exists
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Load reads the config file and decodes it
func (l *Loader) Load() (*Config, error) {
	// It's okay if the file doesn't exist, we have defaults
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return l.decode()
}

// ConfigFile returns the file in use, or "" when running on defaults
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with the re-read configuration whenever the config
// file is written. It does nothing when no file was loaded. onChange runs on
// the watcher goroutine.
func (l *Loader) Watch(onChange func(*Config, error)) {
	if l.ConfigFile() == "" {
		return
	}

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	err := l.v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		keyScalarHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// keyScalarHookFunc lets YAML scalars such as `key: 1` decode as keys
func keyScalarHookFunc() mapstructure.DecodeHookFuncType {
	keyType := reflect.TypeOf(keymap.Key{})
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != keyType || f.Kind() == reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64, reflect.Bool:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

// Validate checks values that would break the viewer
func (c *Config) Validate() error {
	var errs []error

	if c.UI.ColumnWidth < 1 {
		errs = append(errs, fmt.Errorf("ui.column_width must be at least 1, got %d", c.UI.ColumnWidth))
	}
	if c.UI.ZoomFields < 1 {
		errs = append(errs, fmt.Errorf("ui.zoom_fields must be at least 1, got %d", c.UI.ZoomFields))
	}
	if !knownTheme(c.UI.Theme) {
		errs = append(errs, fmt.Errorf("ui.theme %q is not one of %s", c.UI.Theme, strings.Join(theme.Names(), ", ")))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Export.Format != "csv" && c.Export.Format != "json" {
		errs = append(errs, fmt.Errorf("export.format must be csv or json, got %q", c.Export.Format))
	}
	if c.History.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func knownTheme(name string) bool {
	for _, n := range theme.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// DefaultConfigFile returns where `config init` writes the config
func DefaultConfigFile() (string, error) {
	dir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetStatePath returns the directory holding the log file and query history
func GetStatePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, appName), nil
}

// LogFile returns the configured log file or the default one in the state directory
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := GetStatePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

// HistoryFile returns the configured history database or the default one
func (c *Config) HistoryFile() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := GetStatePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
