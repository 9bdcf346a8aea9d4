// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/sprig/internal/layout"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/go-playground/validator/v10"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config  `toml:"logger"`
	Layout  layout.Metrics `toml:"layout"`
	History HistoryConfig  `toml:"history"`
	Editor  EditorConfig   `toml:"editor"`
	View    ViewConfig     `toml:"view"`
	Plugins PluginsConfig  `toml:"plugins"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	Capacity int `toml:"capacity" validate:"gte=1,lte=100000"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	SystemClipboard bool `toml:"system_clipboard"`
	KeepLastNode    bool `toml:"keep_last_node"` // refuse to delete the only remaining tree
}

// ViewConfig maps layout units onto terminal cells.
type ViewConfig struct {
	CellWidth  float64 `toml:"cell_width" validate:"gt=0"`
	CellHeight float64 `toml:"cell_height" validate:"gt=0"`
	Theme      string  `toml:"theme"`
}

// PluginsConfig holds per-plugin tables, e.g. [plugins.autosave].
type PluginsConfig struct {
	Autosave AutosaveConfig `toml:"autosave"`
}

// AutosaveConfig controls the autosave plugin.
type AutosaveConfig struct {
	Enabled bool `toml:"enabled"`
	Every   int  `toml:"every" validate:"gte=1"` // committed edits between saves
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error

	validate = validator.New()
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Layout: layout.DefaultMetrics(),
		History: HistoryConfig{
			Capacity: DefaultHistoryCapacity,
		},
		Editor: EditorConfig{
			SystemClipboard: SystemClipboard,
			KeepLastNode:    KeepLastNode,
		},
		View: ViewConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
			Theme:      DefaultThemeName,
		},
		Plugins: PluginsConfig{
			Autosave: AutosaveConfig{Enabled: false, Every: DefaultAutosaveEvery},
		},
	}
}

// DefaultPath returns ~/.config/sprig/config.toml, or "" when the user
// config directory cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over cfg. Keys missing from the file keep
// the values already in cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) (undecoded []string, err error) {
	_, err = os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate checks config values and resets invalid ones to defaults, field
// by field. It returns the dotted paths of the fields it reset.
func (c *Config) validate() []string {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	defaults := reflect.ValueOf(NewDefaultConfig()).Elem()
	current := reflect.ValueOf(c).Elem()
	var reset []string
	for _, fe := range verrs {
		// "Config.Layout.RowHeight" -> [Layout RowHeight]
		path := strings.Split(fe.StructNamespace(), ".")[1:]
		dst, src := current, defaults
		for _, name := range path {
			dst = dst.FieldByName(name)
			src = src.FieldByName(name)
		}
		if dst.IsValid() && dst.CanSet() {
			dst.Set(src)
			reset = append(reset, strings.Join(path, "."))
		}
	}
	return reset
}

// Load builds a configuration from defaults, the TOML file at path (if any)
// and flag overrides, then validates it. Problems that were recovered from
// are returned as warnings; err is only set when the file exists but could
// not be read or parsed, in which case the defaults plus overrides are used.
func Load(path string, flags *Flags) (cfg *Config, warnings []string, err error) {
	cfg = NewDefaultConfig()

	if path != "" {
		fileCfg := NewDefaultConfig()
		undecoded, ferr := loadFromFile(path, fileCfg)
		if ferr != nil {
			err = ferr
		} else {
			cfg = fileCfg
			for _, key := range undecoded {
				warnings = append(warnings, fmt.Sprintf("unrecognized key %q in %s", key, path))
			}
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	for _, field := range cfg.validate() {
		warnings = append(warnings, fmt.Sprintf("invalid value for %s, using default", field))
	}
	return cfg, warnings, err
}

// LoadConfig loads the application configuration once and stores it for Get.
// An empty configFilePath selects DefaultPath.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	var warnings []string
	loadOnce.Do(func() {
		if configFilePath == "" {
			configFilePath = DefaultPath()
		}
		loadedConfig, warnings, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, warnings, loadErr
}

// PluginValue looks up key in the [plugins.<name>] table by TOML tag.
func (c *Config) PluginValue(name, key string) (interface{}, bool) {
	section, ok := fieldByTag(reflect.ValueOf(c.Plugins), name)
	if !ok {
		return nil, false
	}
	v, ok := fieldByTag(section, key)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("toml"), ",")
		if name == tag {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
