package credentials

import (
	"errors"
	"io/fs"
	"os"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/types"
)

// FileSource reads the plaintext credentials file.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string {
	return "file " + s.Path
}

func (s FileSource) Read() (*types.OAuthCredentials, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindNotFound, Err: err}
		}
		return nil, &Error{Kind: KindRead, Err: err}
	}
	creds, err := parse(data)
	if err != nil {
		return nil, err
	}
	config.DebugLog("Loaded credentials from file: %s", s.Path)
	return creds, nil
}
