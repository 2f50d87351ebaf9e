package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	IsAvailable() bool
}

const (
	ServiceName = "invoicer"
	KeyName     = "db-encryption-key"
	EnvVar      = "INVOICER_DB_KEY"
)

var ErrKeyNotFound = errors.New("encryption key not found")

// NewKeyring returns a keyring backed by the OS credential store.
// A non-empty INVOICER_DB_KEY always takes precedence over the stored key.
func NewKeyring() Keyring {
	return &envOverride{next: &systemKeyring{}}
}

// systemKeyring stores the key in the macOS Keychain, Windows Credential
// Manager or the Secret Service on Linux
type systemKeyring struct{}

func (k *systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w in system keyring", ErrKeyNotFound)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}

	return nil
}

// IsAvailable probes the store with a throwaway entry
func (k *systemKeyring) IsAvailable() bool {
	testKey := "__invoicer_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testKey)
	return true
}

type envOverride struct {
	next Keyring
}

func (k *envOverride) GetKey() (string, error) {
	if key := os.Getenv(EnvVar); key != "" {
		return key, nil
	}
	key, err := k.next.GetKey()
	if err != nil {
		return "", fmt.Errorf("%w (or set %s)", err, EnvVar)
	}
	return key, nil
}

func (k *envOverride) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if !k.next.IsAvailable() {
		return fmt.Errorf("keyring not available on this platform: please set %s", EnvVar)
	}
	return k.next.SetKey(password)
}

func (k *envOverride) IsAvailable() bool {
	return os.Getenv(EnvVar) != "" || k.next.IsAvailable()
}
