// Package secrets keeps the function-level access key in the OS keychain
// so it never lands in the config file on disk.
package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups the engine's secrets in the OS keychain.
	KeyringService = "greenchainz"
	AccessKeyName  = "greenchainz:functions:access-key"

	// Env fallback for headless deployments without a keychain.
	AccessKeyEnv = "GREENCHAINZ_ACCESS_KEY"
)

// GetAccessKey resolves the access key: keychain first, env second.
func GetAccessKey() (string, error) {
	if key, err := keyring.Get(KeyringService, AccessKeyName); err == nil && strings.TrimSpace(key) != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(AccessKeyEnv)); key != "" {
		return key, nil
	}
	return "", errors.New("access key not found (set it via keychain or " + AccessKeyEnv + ")")
}

func SetAccessKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("access key is empty")
	}
	return keyring.Set(KeyringService, AccessKeyName, key)
}

func DeleteAccessKey() error {
	return keyring.Delete(KeyringService, AccessKeyName)
}
