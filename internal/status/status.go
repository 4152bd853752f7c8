// Package status combines credential resolution, token validation and the
// usage fetch into the operations the front end consumes.
package status

import (
	"errors"
	"net/http"
	"time"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/credentials"
	"github.com/erwint/claude-usage-monitor/internal/types"
	"github.com/erwint/claude-usage-monitor/internal/usage"
)

// ReasonTokenExpired is reported when credentials exist but have expired.
const ReasonTokenExpired = "token_expired"

// ErrTokenExpired is returned by FetchUsageForCurrentCredentials when the
// stored token has expired.
var ErrTokenExpired = errors.New("token has expired. Please login again using 'claude' CLI")

// Resolver produces the current OAuth record.
type Resolver interface {
	Resolve() (*types.OAuthCredentials, error)
}

// Fetcher retrieves usage for an access token.
type Fetcher interface {
	FetchUsage(accessToken string) (*types.UsageResponse, error)
}

// Monitor answers status and usage queries. Every call resolves the
// credentials afresh; nothing is cached between calls.
type Monitor struct {
	Resolver Resolver
	Fetcher  Fetcher
	Path     string
	Now      func() time.Time
}

// New returns a monitor over the default sources for the credentials file
// at path.
func New(path string, fetcher Fetcher) *Monitor {
	return &Monitor{
		Resolver: credentials.NewResolver(path),
		Fetcher:  fetcher,
		Path:     path,
		Now:      time.Now,
	}
}

func (m *Monitor) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// CredentialsFilePath returns the credentials file location shown to the
// user for guidance.
func (m *Monitor) CredentialsFilePath() string {
	return m.Path
}

// CheckStatus never fails: resolution errors are reported through
// ErrorReason.
func (m *Monitor) CheckStatus() types.AuthStatus {
	st := types.AuthStatus{CredentialsPath: m.Path}

	creds, err := m.Resolver.Resolve()
	if err != nil {
		kind, ok := credentials.KindOf(err)
		reason := kind.Reason()
		if !ok {
			reason = credentials.KindRead.Reason()
		}
		config.DebugLog("Status: unauthenticated (%s): %v", reason, err)
		st.ErrorReason = &reason
		return st
	}

	expiresAt := creds.ExpiresAt
	st.ExpiresAt = &expiresAt
	if !credentials.IsValid(creds, m.now()) {
		reason := ReasonTokenExpired
		st.ErrorReason = &reason
		config.DebugLog("Status: token expired at %d", expiresAt)
		return st
	}

	st.Authenticated = true
	return st
}

// FetchUsageForCurrentCredentials resolves and validates the credentials,
// then fetches usage with them. Any failure is returned as is; callers show
// err.Error() verbatim.
func (m *Monitor) FetchUsageForCurrentCredentials() (*types.UsageResponse, error) {
	creds, err := m.Resolver.Resolve()
	if err != nil {
		return nil, err
	}
	if !credentials.IsValid(creds, m.now()) {
		return nil, ErrTokenExpired
	}
	return m.Fetcher.FetchUsage(creds.AccessToken)
}

// NeedsLogin reports whether err means the user has to log in again with
// the claude CLI.
func NeedsLogin(err error) bool {
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	if kind, ok := credentials.KindOf(err); ok {
		return kind == credentials.KindNotFound || kind == credentials.KindNoOAuth
	}
	var respErr *usage.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusUnauthorized
}
