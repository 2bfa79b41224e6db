package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/statecanon"
	"github.com/reoring/statecanon/ladder"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statecanon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func loadWith(t *testing.T, path string, environ map[string]string) (Config, error) {
	t.Helper()
	return load(path, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(t, "", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	lc, err := cfg.LadderConfig()
	require.NoError(t, err)
	assert.Equal(t, ladder.Standard, lc)

	opt := cfg.ParseOpt()
	assert.Equal(t, 64, opt.MaxDepth)
	assert.Equal(t, int64(8<<20), opt.MaxBytes)
	assert.Equal(t, statecanon.Ignore, opt.Strictness.OnDuplicateKey)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
ladder:
  preset: compact
  law_cap: 2
parse:
  json_driver: go-json
  duplicate_keys: warn
store:
  path: /tmp/file.db
log:
  level: debug
`)
	cfg, err := loadWith(t, path, map[string]string{
		"STATECANON_STORE_PATH":                 "/tmp/env.db",
		"STATECANON_LADDER_TITLE_LIFTS_LAW_CAP": "false",
		"STATECANON_LOG_FORMAT":                 "json",
		"STATECANON_LANG":                       "zh",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.Store.Path)
	assert.Equal(t, DriverGoJSON, cfg.Parse.JSONDriver)
	assert.Equal(t, statecanon.Warn, cfg.ParseOpt().Strictness.OnDuplicateKey)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "zh", cfg.Lang)

	lc, err := cfg.LadderConfig()
	require.NoError(t, err)
	assert.Equal(t, ladder.Config{ElementCap: 3, PowerCap: 1, LawCap: 2, TitleLiftsLawCap: false}, lc)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())
}

func TestLoad_UnknownFileKey(t *testing.T) {
	_, err := loadWith(t, writeFile(t, "ladder:\n  presets: compact\n"), map[string]string{})
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := loadWith(t, filepath.Join(t.TempDir(), "absent.yaml"), map[string]string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := loadWith(t, writeFile(t, ""), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_BadEnvValue(t *testing.T) {
	_, err := loadWith(t, "", map[string]string{"STATECANON_PARSE_MAX_DEPTH": "deep"})
	require.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Ladder.Preset = "huge"
	cfg.Parse.JSONDriver = "simdjson"
	cfg.Parse.MaxDepth = -1
	cfg.Parse.DuplicateKeys = "explode"
	cfg.Store.Path = ""
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Lang = "fr"

	err := cfg.Validate()
	iss, ok := statecanon.AsIssues(err)
	require.True(t, ok)
	var paths []string
	for _, it := range iss {
		assert.Equal(t, statecanon.CodeInvalidConfig, it.Code)
		paths = append(paths, it.Path)
	}
	assert.Equal(t, []string{
		"/ladder/preset", "/parse/json_driver", "/parse/max_depth", "/parse/duplicate_keys",
		"/store/path", "/log/level", "/log/format", "/lang",
	}, paths)
}

func TestValidate_LadderCapPaths(t *testing.T) {
	cfg := Default()
	cfg.Ladder.PowerCap = -2
	iss, ok := statecanon.AsIssues(cfg.Validate())
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "/ladder/power_cap", iss[0].Path)
}

func TestInstallJSONDriver(t *testing.T) {
	cfg := Default()
	cfg.Parse.JSONDriver = DriverGoJSON
	cfg.InstallJSONDriver()
	assert.Equal(t, "go-json", statecanon.CurrentJSONDriver().Name())

	Default().InstallJSONDriver()
	assert.Equal(t, "encoding/json", statecanon.CurrentJSONDriver().Name())
}
