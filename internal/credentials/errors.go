package credentials

import (
	"errors"
	"fmt"
)

// Kind classifies why credentials could not be resolved.
type Kind int

const (
	// KindNotFound means no source held any credentials.
	KindNotFound Kind = iota
	// KindNoOAuth means a credentials document was found but its
	// claudeAiOauth field was absent or null.
	KindNoOAuth
	// KindRead is an I/O failure other than absence, e.g. permission denied.
	KindRead
	// KindParse means the credentials document was not valid JSON.
	KindParse
	// KindKeychain means the secure storage backend was present but the
	// query failed.
	KindKeychain
)

// Reason returns the stable identifier reported in AuthStatus.ErrorReason.
func (k Kind) Reason() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNoOAuth:
		return "no_oauth"
	case KindRead:
		return "read_error"
	case KindParse:
		return "parse_error"
	case KindKeychain:
		return "keychain_error"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	return k.Reason()
}

// Error is returned by sources and the resolver.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return "credentials file not found"
	case KindNoOAuth:
		return "no OAuth credentials found in file"
	case KindRead:
		return fmt.Sprintf("failed to read credentials file: %v", e.Err)
	case KindParse:
		return fmt.Sprintf("failed to parse credentials: %v", e.Err)
	case KindKeychain:
		return fmt.Sprintf("failed to read from keychain: %v", e.Err)
	default:
		return fmt.Sprintf("credentials error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a credentials *Error of the same kind, so
// callers can write errors.Is(err, credentials.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound = &Error{Kind: KindNotFound}
	ErrNoOAuth  = &Error{Kind: KindNoOAuth}
)

// KindOf returns the kind carried by err, or KindNotFound with ok == false
// if err is not a credentials error.
func KindOf(err error) (Kind, bool) {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind, true
	}
	return KindNotFound, false
}
