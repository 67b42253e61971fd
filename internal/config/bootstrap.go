package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// defaults used when neither a user config nor a packaged default exists.
func defaultConfig() Config {
	var c Config
	c.App.Port = 38520
	c.Scraper.TimeoutSeconds = 15
	c.Scraper.RequestsPerSecond = 2
	c.Scraper.Burst = 4
	c.Batch.Concurrency = 2
	c.Batch.RequestsPerSecond = 1
	c.RulesCache.TTLMinutes = 60
	c.Refresh.Enabled = true
	c.Refresh.IntervalMinutes = 360
	c.Refresh.MaxAgeHours = 168
	return c
}

// EnsureUserConfig makes sure a writable config exists in the data dir,
// seeding it from the packaged default (or built-in defaults when the
// packaged file is absent).
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		if err := SaveAtomic(userPath, defaultConfig()); err != nil {
			return "", err
		}
		return userPath, nil
	}
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
