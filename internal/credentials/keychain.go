package credentials

import (
	"errors"
	"os"
	"os/user"

	"github.com/zalando/go-keyring"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/types"
)

// KeychainSource reads the credentials document stored as a generic
// password in the system keyring.
type KeychainSource struct {
	Service string
	Account string
}

// NewKeychainSource returns a source for the Claude Code keychain entry of
// the current user.
func NewKeychainSource() KeychainSource {
	return KeychainSource{Service: Service, Account: currentUser()}
}

func (s KeychainSource) Name() string {
	return "keychain " + s.Service
}

func (s KeychainSource) Read() (*types.OAuthCredentials, error) {
	secret, err := keyring.Get(s.Service, s.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Err: err}
		}
		return nil, &Error{Kind: KindKeychain, Err: err}
	}
	creds, err := parse([]byte(secret))
	if err != nil {
		return nil, err
	}
	config.DebugLog("Loaded credentials from system keyring")
	return creds, nil
}

func currentUser() string {
	if username := os.Getenv("USER"); username != "" {
		return username
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
