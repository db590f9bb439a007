// Package config loads the settings of the furigana command.
//
// Values come from, in order of precedence, command line flags, FURIGANA_*
// environment variables, an optional yaml or json file and the defaults.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the command settings.
type Config struct {
	// Lossy lets normalize merge collapsed blocks.
	Lossy bool `mapstructure:"lossy"`
	// KanjiFallback makes blocks without reading project their literal to kana.
	KanjiFallback bool `mapstructure:"kanji_fallback"`
	// LiteralMatch selects literal comparison.
	LiteralMatch bool `mapstructure:"literal_match"`
	// FoldKana compares readings regardless of katakana or hiragana.
	FoldKana bool `mapstructure:"fold_kana"`
	// Workers bounds the number of lines processed at once.
	Workers int `mapstructure:"workers"`
	// CacheSize is the number of projections kept in memory.
	CacheSize int `mapstructure:"cache_size"`
	Log       Log `mapstructure:"log"`
}

// Log holds the logging settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Dir receives JSON run reports. Empty disables reports.
	Dir string `mapstructure:"dir"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		KanjiFallback: true,
		Workers:       runtime.GOMAXPROCS(0),
		CacheSize:     1024,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"lossy":          "lossy",
	"kanji-fallback": "kanji_fallback",
	"literal":        "literal_match",
	"fold-kana":      "fold_kana",
	"workers":        "workers",
	"cache-size":     "cache_size",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"report-dir":     "log.dir",
}

// Load reads the settings. path may be empty, in which case only defaults,
// environment and flags are used. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("FURIGANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("lossy", d.Lossy)
	v.SetDefault("kanji_fallback", d.KanjiFallback)
	v.SetDefault("literal_match", d.LiteralMatch)
	v.SetDefault("fold_kana", d.FoldKana)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.dir", d.Log.Dir)
}

// Validate checks the settings for values the command can't use.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
