//go:build darwin

package credentials

// DefaultSources returns the file at path followed by the macOS keychain.
// The file wins when present so a synced credentials file can override the
// keychain entry.
func DefaultSources(path string) []Source {
	return []Source{FileSource{Path: path}, NewKeychainSource()}
}
