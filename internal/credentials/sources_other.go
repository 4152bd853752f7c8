//go:build !darwin

package credentials

// DefaultSources returns the credentials file at path. Claude Code only
// uses secure storage on macOS.
func DefaultSources(path string) []Source {
	return []Source{FileSource{Path: path}}
}
