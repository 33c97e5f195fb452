package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/weekwise/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is found in the keyring
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetFeedSecret retrieves the feed-token signing secret. The environment
// variable takes precedence so headless hosts can run without an OS keyring.
// Returns ErrNotFound if no secret is stored anywhere.
func GetFeedSecret() ([]byte, error) {
	if env := os.Getenv(constants.FeedSecretEnvVar); env != "" {
		return []byte(env), nil
	}

	secret, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return []byte(secret), nil
}

// SetFeedSecret stores the feed-token signing secret in the OS keyring.
func SetFeedSecret(secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

// DeleteFeedSecret removes the feed-token signing secret from the OS keyring.
func DeleteFeedSecret() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// EnsureFeedSecret returns the stored signing secret, generating and storing
// a fresh random one on first use.
func EnsureFeedSecret() ([]byte, error) {
	secret, err := GetFeedSecret()
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate signing secret: %w", err)
	}
	encoded := hex.EncodeToString(raw)
	if err := SetFeedSecret(encoded); err != nil {
		return nil, err
	}
	return []byte(encoded), nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered but is empty; anything else
	// likely indicates the keyring is not usable
	return err == nil || err == keyring.ErrNotFound
}
