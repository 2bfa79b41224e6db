// Package config loads runtime settings: a YAML file first, then
// STATECANON_* environment overrides, then validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/ladder"
	"github.com/reoring/statecanon/source/gojson"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STATECANON_"

// JSON driver names.
const (
	DriverStd    = "encoding/json"
	DriverGoJSON = "go-json"
)

// Config is the full runtime configuration.
type Config struct {
	Ladder Ladder `yaml:"ladder" envPrefix:"LADDER_"`
	Parse  Parse  `yaml:"parse"  envPrefix:"PARSE_"`
	Store  Store  `yaml:"store"  envPrefix:"STORE_"`
	Log    Log    `yaml:"log"    envPrefix:"LOG_"`
	// Lang selects issue message language ("en" or "zh").
	Lang string `yaml:"lang" env:"LANG"`
}

// Ladder selects a preset and optionally overrides its caps. Zero caps and a
// nil TitleLiftsLawCap keep the preset's values.
type Ladder struct {
	Preset           string `yaml:"preset"              env:"PRESET"`
	ElementCap       int    `yaml:"element_cap"         env:"ELEMENT_CAP"`
	PowerCap         int    `yaml:"power_cap"           env:"POWER_CAP"`
	LawCap           int    `yaml:"law_cap"             env:"LAW_CAP"`
	TitleLiftsLawCap *bool  `yaml:"title_lifts_law_cap" env:"TITLE_LIFTS_LAW_CAP"`
}

// Parse holds decode limits.
type Parse struct {
	JSONDriver    string `yaml:"json_driver"    env:"JSON_DRIVER"`
	MaxDepth      int    `yaml:"max_depth"      env:"MAX_DEPTH"`
	MaxBytes      int64  `yaml:"max_bytes"      env:"MAX_BYTES"`
	DuplicateKeys string `yaml:"duplicate_keys" env:"DUPLICATE_KEYS"`
}

// Store locates the variable store.
type Store struct {
	Path string `yaml:"path" env:"PATH"`
}

// Log configures the CLI logger.
type Log struct {
	Level  string `yaml:"level"  env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ladder: Ladder{Preset: "standard"},
		Parse: Parse{
			JSONDriver:    DriverStd,
			MaxDepth:      64,
			MaxBytes:      8 << 20,
			DuplicateKeys: statecanon.Ignore.String(),
		},
		Store: Store{Path: "statecanon.db"},
		Log:   Log{Level: "info", Format: "text"},
		Lang:  "en",
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	return load(path, env.Options{Prefix: EnvPrefix})
}

func load(path string, opts env.Options) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every invalid setting as an invalid_config issue.
func (c Config) Validate() error {
	var iss statecanon.Issues
	fail := func(path, format string, args ...any) {
		iss = statecanon.AppendIssues(iss, statecanon.NewIssue(path, statecanon.CodeInvalidConfig,
			map[string]any{"reason": fmt.Sprintf(format, args...)}))
	}

	if _, err := c.LadderConfig(); err != nil {
		if more, ok := statecanon.AsIssues(err); ok {
			for _, it := range more {
				it.Path = "/ladder" + it.Path
				iss = statecanon.AppendIssues(iss, it)
			}
		} else {
			fail("/ladder/preset", "%v", err)
		}
	}
	switch c.Parse.JSONDriver {
	case DriverStd, DriverGoJSON:
	default:
		fail("/parse/json_driver", "unknown driver %q", c.Parse.JSONDriver)
	}
	if c.Parse.MaxDepth < 0 {
		fail("/parse/max_depth", "must not be negative")
	}
	if c.Parse.MaxBytes < 0 {
		fail("/parse/max_bytes", "must not be negative")
	}
	if _, ok := statecanon.ParseSeverity(c.Parse.DuplicateKeys); !ok {
		fail("/parse/duplicate_keys", "want ignore, warn or error, got %q", c.Parse.DuplicateKeys)
	}
	if c.Store.Path == "" {
		fail("/store/path", "must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		fail("/log/level", "%v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		fail("/log/format", "want text or json, got %q", c.Log.Format)
	}
	switch c.Lang {
	case "en", "zh":
	default:
		fail("/lang", "want en or zh, got %q", c.Lang)
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// LadderConfig resolves the preset and overrides into ladder caps.
func (c Config) LadderConfig() (ladder.Config, error) {
	lc, ok := ladder.Preset(c.Ladder.Preset)
	if !ok {
		return ladder.Config{}, fmt.Errorf("unknown ladder preset %q", c.Ladder.Preset)
	}
	if c.Ladder.ElementCap != 0 {
		lc.ElementCap = c.Ladder.ElementCap
	}
	if c.Ladder.PowerCap != 0 {
		lc.PowerCap = c.Ladder.PowerCap
	}
	if c.Ladder.LawCap != 0 {
		lc.LawCap = c.Ladder.LawCap
	}
	if c.Ladder.TitleLiftsLawCap != nil {
		lc.TitleLiftsLawCap = *c.Ladder.TitleLiftsLawCap
	}
	if err := lc.Validate(); err != nil {
		return ladder.Config{}, err
	}
	return lc, nil
}

// ParseOpt returns the decode options.
func (c Config) ParseOpt() statecanon.ParseOpt {
	sev, _ := statecanon.ParseSeverity(c.Parse.DuplicateKeys)
	return statecanon.ParseOpt{
		Strictness: statecanon.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.Parse.MaxDepth,
		MaxBytes:   c.Parse.MaxBytes,
	}
}

// InstallJSONDriver makes the configured driver the global JSON driver.
func (c Config) InstallJSONDriver() {
	if c.Parse.JSONDriver == DriverGoJSON {
		statecanon.SetJSONDriver(gojson.Driver())
		return
	}
	statecanon.UseDefaultJSONDriver()
}

// SlogLevel parses the log level.
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return l, nil
}
