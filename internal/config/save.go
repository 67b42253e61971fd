package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveAtomic validates and writes the config with a tmp+bak rename so a
// crash mid-write never leaves a truncated file behind.
func SaveAtomic(path string, cfg Config) error {
	if _, res := NormalizeAndValidate(cfg); !res.OK() {
		return errors.New("config validation failed: " + res.Errors[0])
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
