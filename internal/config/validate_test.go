package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	_, res := NormalizeAndValidate(defaultConfig())
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateCatchesBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Port = 0
	cfg.Batch.Concurrency = -1

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	assert.Len(t, res.Errors, 2)
}

func TestValidateWarnsOnAggressiveSettings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Batch.Concurrency = 16
	cfg.Scraper.TimeoutSeconds = 300

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.Len(t, res.Warnings, 2)
}

func TestSaveAtomicAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := defaultConfig()
	cfg.Scraper.UserAgent = "TestBot/1.0"

	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Port = -2
	err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg)
	assert.Error(t, err)
}

func TestEnsureUserConfigSeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "no-such-default.yml"))
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	// second call is a no-op on the existing file
	again, err := EnsureUserConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestDurationHelpers(t *testing.T) {
	var zero Config
	assert.Equal(t, "15s", zero.ScrapeTimeout().String())
	assert.Equal(t, "1h0m0s", zero.RulesTTL().String())
	assert.Equal(t, "6h0m0s", zero.RefreshInterval().String())
	assert.Equal(t, "168h0m0s", zero.RefreshMaxAge().String())
}
