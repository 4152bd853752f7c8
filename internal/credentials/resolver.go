package credentials

import (
	"time"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/types"
)

// Resolver tries its sources in order and returns the first record found.
type Resolver struct {
	Sources []Source
}

// NewResolver returns a resolver over the platform default sources for the
// credentials file at path.
func NewResolver(path string) *Resolver {
	return &Resolver{Sources: DefaultSources(path)}
}

// Resolve returns the first record any source yields. If every source fails
// the error of the first source that got further than "not found" is
// returned, so a malformed file is reported even when the keychain is empty.
func (r *Resolver) Resolve() (*types.OAuthCredentials, error) {
	var specific error
	for _, src := range r.Sources {
		creds, err := src.Read()
		if err == nil {
			return creds, nil
		}
		config.DebugLog("Credential source %s failed: %v", src.Name(), err)
		if kind, _ := KindOf(err); kind != KindNotFound && specific == nil {
			specific = err
		}
	}
	if specific != nil {
		return nil, specific
	}
	config.DebugLog("No credentials found")
	return nil, &Error{Kind: KindNotFound}
}

// IsValid reports whether the access token is still valid at now. There is
// no allowance for clock skew: a token expiring exactly at now is invalid.
func IsValid(creds *types.OAuthCredentials, now time.Time) bool {
	return creds != nil && creds.ExpiresAt > now.UnixMilli()
}
