package settings

import (
	"fmt"
	"runtime"
	"strings"
)

// Modifier is a bit set of shortcut modifier keys.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModControl
	ModSuper
	ModShift
)

// Shortcut is a validated shortcut.
type Shortcut struct {
	Modifiers Modifier
	Key       rune
}

var modifiers = map[string]Modifier{
	"alt":           ModAlt,
	"ctrl":          ModControl,
	"control":       ModControl,
	"super":         ModSuper,
	"cmd":           ModSuper,
	"meta":          ModSuper,
	"shift":         ModShift,
	"ctrl+shift":    ModControl | ModShift,
	"control+shift": ModControl | ModShift,
	"super+shift":   ModSuper | ModShift,
	"cmd+shift":     ModSuper | ModShift,
	"alt+shift":     ModAlt | ModShift,
}

// ParseShortcut validates c. Only the modifier combinations above and the
// letters a to z are accepted, case-insensitively.
func ParseShortcut(c ShortcutConfig) (Shortcut, error) {
	mod, ok := modifiers[strings.ToLower(c.Modifier)]
	if !ok {
		return Shortcut{}, fmt.Errorf("unsupported modifier %q", c.Modifier)
	}
	key := strings.ToLower(c.Key)
	if len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		return Shortcut{}, fmt.Errorf("unsupported key %q", c.Key)
	}
	return Shortcut{Modifiers: mod, Key: rune(key[0])}, nil
}

// PlatformName returns the name the front end uses for the current OS.
func PlatformName() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "linux":
		return "linux"
	case "windows":
		return "windows"
	default:
		return "unknown"
	}
}
