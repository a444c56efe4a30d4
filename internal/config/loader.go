// Package config provides configuration loading, defaults, and validation for
// computefp.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "COMPUTEFP"

// Sentinel errors returned (wrapped) by Load.
var (
	ErrConfigFileNotFound = errors.New("config: file not found")
	ErrConfigParseError   = errors.New("config: parse error")
	ErrConfigValidation   = errors.New("config: validation failed")
)

// DefaultSearchPaths lists the files tried, in order, when no explicit
// configuration path is given.  A leading "~" expands to the home directory.
var DefaultSearchPaths = []string{
	"computefp.yaml",
	"~/.computefp/config.yaml",
	"/etc/computefp/config.yaml",
}

type loadOptions struct {
	configPath  string
	searchPaths []string
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

// WithConfigPath forces a specific configuration file.  A missing file is an
// error, unlike the implicit search paths.
func WithConfigPath(path string) LoadOption {
	return func(o *loadOptions) { o.configPath = path }
}

// WithSearchPaths replaces DefaultSearchPaths.  Passing no paths disables the
// search so only defaults and environment variables apply.
func WithSearchPaths(paths ...string) LoadOption {
	return func(o *loadOptions) { o.searchPaths = paths }
}

// newViper builds a pre-configured Viper instance: YAML file type, COMPUTEFP_
// env prefix, and a key replacer that maps "." → "_" so that nested keys like
// "sinks.kafka.topic" resolve to "COMPUTEFP_SINKS_KAFKA_TOPIC".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v, reflect.TypeOf(Config{}), "")
	return v
}

// bindEnvKeys registers every mapstructure key of t with viper.  AutomaticEnv
// only resolves keys viper already knows about, so without this an
// environment override of a key absent from the file would be ignored by
// Unmarshal.
func bindEnvKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			bindEnvKeys(v, f.Type, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}

// Load resolves the configuration file (explicit path or the first existing
// search path), merges COMPUTEFP_* environment overrides, applies defaults
// and validates the result.  Having no configuration file at all is valid.
func Load(opts ...LoadOption) (*Config, error) {
	o := loadOptions{searchPaths: DefaultSearchPaths}
	for _, opt := range opts {
		opt(&o)
	}

	v := newViper()
	path := o.configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrConfigFileNotFound, path, err)
		}
	} else {
		path = firstExisting(o.searchPaths)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrConfigParseError, path, err)
		}
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

func firstExisting(paths []string) string {
	home, _ := os.UserHomeDir()
	for _, p := range paths {
		if strings.HasPrefix(p, "~/") {
			if home == "" {
				continue
			}
			p = filepath.Join(home, p[2:])
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Callers apply only the
// settings that are safe to change at runtime (the log level).
//
// Watch is non-blocking; viper runs the watcher in a background goroutine.
// A change that fails to parse or validate is passed to onError (when
// non-nil) and onChange is not called.
func Watch(configPath string, onChange func(*Config), onError func(error)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should call Load first.
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		cfg.Source = configPath
		onChange(cfg)
	})
	v.WatchConfig()
}

//Personal.AI order the ending
