package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/erwint/claude-usage-monitor/internal/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileSource(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantToken string
		wantKind  Kind
	}{
		{
			name:      "well formed",
			content:   `{"claudeAiOauth": {"accessToken":"t","expiresAt":9999999999999}}`,
			wantToken: "t",
		},
		{
			name:      "all fields",
			content:   `{"claudeAiOauth": {"accessToken":"abc","refreshToken":"r","expiresAt":1700000000000,"scopes":["user:inference","user:profile"],"subscriptionType":"max"}}`,
			wantToken: "abc",
		},
		{
			name:     "null oauth",
			content:  `{"claudeAiOauth": null}`,
			wantKind: KindNoOAuth,
		},
		{
			name:     "missing oauth",
			content:  `{"somethingElse": {}}`,
			wantKind: KindNoOAuth,
		},
		{
			name:     "malformed",
			content:  `{"claudeAiOauth": {`,
			wantKind: KindParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := FileSource{Path: writeFile(t, tt.content)}.Read()
			if tt.wantToken != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, creds.AccessToken)
				return
			}
			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestFileSourceParsesAllFields(t *testing.T) {
	path := writeFile(t, `{"claudeAiOauth": {"accessToken":"abc","refreshToken":"r","expiresAt":1700000000000,"scopes":["user:inference","user:profile"]}}`)

	creds, err := FileSource{Path: path}.Read()
	require.NoError(t, err)
	assert.Equal(t, "r", creds.RefreshToken)
	assert.Equal(t, int64(1700000000000), creds.ExpiresAt)
	assert.Equal(t, []string{"user:inference", "user:profile"}, creds.Scopes)
}

func TestFileSourceMissing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Read()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileSourceReadError(t *testing.T) {
	// A directory exists but cannot be read as a file.
	_, err := FileSource{Path: t.TempDir()}.Read()
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindRead, kind)
}

func TestKeychainSource(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(Service, "alice",
		`{"claudeAiOauth": {"accessToken":"from-keychain","expiresAt":9999999999999}}`+"\n"))

	creds, err := KeychainSource{Service: Service, Account: "alice"}.Read()
	require.NoError(t, err)
	assert.Equal(t, "from-keychain", creds.AccessToken)

	_, err = KeychainSource{Service: Service, Account: "bob"}.Read()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestKeychainSourceNoOAuth(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(Service, "alice", `{}`))

	_, err := KeychainSource{Service: Service, Account: "alice"}.Read()
	assert.True(t, errors.Is(err, ErrNoOAuth))
}

func TestKeychainSourceBackendFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("keychain locked"))
	defer keyring.MockInit()

	_, err := KeychainSource{Service: Service, Account: "alice"}.Read()
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindKeychain, kind)
	assert.Contains(t, err.Error(), "keychain locked")
}

type stubSource struct {
	creds *types.OAuthCredentials
	err   error
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Read() (*types.OAuthCredentials, error) {
	s.calls++
	return s.creds, s.err
}

func TestResolverOrder(t *testing.T) {
	first := &stubSource{creds: &types.OAuthCredentials{AccessToken: "first"}}
	second := &stubSource{creds: &types.OAuthCredentials{AccessToken: "second"}}

	creds, err := (&Resolver{Sources: []Source{first, second}}).Resolve()
	require.NoError(t, err)
	assert.Equal(t, "first", creds.AccessToken)
	assert.Equal(t, 0, second.calls, "later sources are not consulted after a success")
}

func TestResolverFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		sources   []Source
		wantToken string
		wantKind  Kind
	}{
		{
			name: "file missing, keychain present",
			sources: []Source{
				&stubSource{err: &Error{Kind: KindNotFound}},
				&stubSource{creds: &types.OAuthCredentials{AccessToken: "kc"}},
			},
			wantToken: "kc",
		},
		{
			name: "file without oauth, keychain present",
			sources: []Source{
				&stubSource{err: &Error{Kind: KindNoOAuth}},
				&stubSource{creds: &types.OAuthCredentials{AccessToken: "kc"}},
			},
			wantToken: "kc",
		},
		{
			name: "file without oauth, keychain empty",
			sources: []Source{
				&stubSource{err: &Error{Kind: KindNoOAuth}},
				&stubSource{err: &Error{Kind: KindNotFound}},
			},
			wantKind: KindNoOAuth,
		},
		{
			name: "file missing, keychain failure",
			sources: []Source{
				&stubSource{err: &Error{Kind: KindNotFound}},
				&stubSource{err: &Error{Kind: KindKeychain, Err: errors.New("denied")}},
			},
			wantKind: KindKeychain,
		},
		{
			name: "malformed file reported before keychain failure",
			sources: []Source{
				&stubSource{err: &Error{Kind: KindParse, Err: errors.New("bad json")}},
				&stubSource{err: &Error{Kind: KindKeychain, Err: errors.New("denied")}},
			},
			wantKind: KindParse,
		},
		{
			name:     "no sources",
			sources:  nil,
			wantKind: KindNotFound,
		},
		{
			name: "nothing anywhere",
			sources: []Source{
				&stubSource{err: &Error{Kind: KindNotFound}},
				&stubSource{err: &Error{Kind: KindNotFound}},
			},
			wantKind: KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := (&Resolver{Sources: tt.sources}).Resolve()
			if tt.wantToken != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, creds.AccessToken)
				return
			}
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}

func TestResolverFileBeatsKeychain(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(Service, "alice",
		`{"claudeAiOauth": {"accessToken":"from-keychain","expiresAt":9999999999999}}`))
	path := writeFile(t, `{"claudeAiOauth": {"accessToken":"from-file","expiresAt":9999999999999}}`)

	r := &Resolver{Sources: []Source{FileSource{Path: path}, KeychainSource{Service: Service, Account: "alice"}}}
	creds, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "from-file", creds.AccessToken)
}

func TestResolveMissingFileWithoutSecureStorage(t *testing.T) {
	r := &Resolver{Sources: []Source{FileSource{Path: filepath.Join(t.TempDir(), ".credentials.json")}}}
	_, err := r.Resolve()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIsValid(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name      string
		expiresAt int64
		expected  bool
	}{
		{"far future", 9999999999999, true},
		{"one millisecond ahead", now.UnixMilli() + 1, true},
		{"exactly now", now.UnixMilli(), false},
		{"one millisecond ago", now.UnixMilli() - 1, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &types.OAuthCredentials{AccessToken: "t", ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.expected, IsValid(creds, now))
		})
	}

	assert.False(t, IsValid(nil, now))
}

func TestKindReason(t *testing.T) {
	tests := map[Kind]string{
		KindNotFound: "not_found",
		KindNoOAuth:  "no_oauth",
		KindRead:     "read_error",
		KindParse:    "parse_error",
		KindKeychain: "keychain_error",
	}
	for kind, reason := range tests {
		assert.Equal(t, reason, kind.Reason())
	}
}

func TestPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".claude", ".credentials.json"), path)
}
