// Package credentials locates and parses the OAuth credentials that the
// Claude Code CLI persists locally, either as a JSON file or in the OS
// secure storage.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erwint/claude-usage-monitor/internal/types"
)

// Service is the secure storage service name Claude Code writes its
// credentials under.
const Service = "Claude Code-credentials"

// Path returns the credentials file location. It does not depend on the
// platform and does not check that the file exists.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".claude", ".credentials.json"), nil
}

// Source is a place credentials can be read from.
type Source interface {
	Name() string
	Read() (*types.OAuthCredentials, error)
}

// parse decodes a credentials document and extracts its OAuth record.
func parse(data []byte) (*types.OAuthCredentials, error) {
	var creds types.Credentials
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &creds); err != nil {
		return nil, &Error{Kind: KindParse, Err: err}
	}
	if creds.ClaudeAiOauth == nil {
		return nil, &Error{Kind: KindNoOAuth}
	}
	return creds.ClaudeAiOauth, nil
}
