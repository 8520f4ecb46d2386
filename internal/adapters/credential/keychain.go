package credential

import (
	"context"
	"errors"

	perr "caserelay/internal/platform/errors"

	"github.com/zalando/go-keyring"
)

// KeychainProvider reads the token from the OS keychain (macOS Keychain,
// Secret Service on Linux, Windows Credential Manager). Used by the CLI
type KeychainProvider struct {
	service string
	user    string
}

// NewKeychainProvider returns a provider for the given service and account
func NewKeychainProvider(service, user string) *KeychainProvider {
	if service == "" {
		service = "caserelay"
	}
	if user == "" {
		user = "notion"
	}
	return &KeychainProvider{service: service, user: user}
}

// Credential implements Provider
func (k *KeychainProvider) Credential(context.Context) (Credential, error) {
	v, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credential{}, perr.WithOp(perr.Configf("no keychain entry for %s/%s", k.service, k.user), "credential.keychain")
		}
		return Credential{}, perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfig, "keychain is locked or inaccessible"), "credential.keychain")
	}
	return New(v, "keychain")
}

// Store validates raw and writes it to the keychain
func (k *KeychainProvider) Store(raw string) error {
	c, err := New(raw, "keychain")
	if err != nil {
		return err
	}
	if err := keyring.Set(k.service, k.user, c.Value()); err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfig, "keychain write failed"), "credential.keychain")
	}
	return nil
}
