package config

import (
	"fmt"
	"strings"
)

// Hotkey is a parsed key combination. Modifiers hold canonical names
// (ctrl, shift, alt, super) and Key a canonical key name.
type Hotkey struct {
	Modifiers []string
	Key       string
}

var hotkeyModifiers = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"option":  "alt",
	"super":   "super",
	"win":     "super",
	"cmd":     "super",
	"meta":    "super",
}

var hotkeyKeyAliases = map[string]string{
	"enter": "return",
	"esc":   "escape",
	"del":   "delete",
}

// HotkeyKeys lists the canonical key names ParseHotkey accepts.
var HotkeyKeys = func() map[string]bool {
	keys := map[string]bool{
		"space": true, "return": true, "escape": true, "tab": true, "delete": true,
		"up": true, "down": true, "left": true, "right": true,
	}
	for c := 'a'; c <= 'z'; c++ {
		keys[string(c)] = true
	}
	for c := '0'; c <= '9'; c++ {
		keys[string(c)] = true
	}
	for i := 1; i <= 12; i++ {
		keys[fmt.Sprintf("f%d", i)] = true
	}
	return keys
}()

// ParseHotkey parses a combination such as "ctrl+shift+s". The last part is
// the key; every other part must be a modifier.
func ParseHotkey(s string) (Hotkey, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Hotkey{}, fmt.Errorf("hotkey %q: want modifier+key", s)
	}
	var hk Hotkey
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		m, ok := hotkeyModifiers[p]
		if !ok {
			return Hotkey{}, fmt.Errorf("hotkey %q: unknown modifier %q", s, p)
		}
		hk.Modifiers = append(hk.Modifiers, m)
	}
	key := strings.TrimSpace(parts[len(parts)-1])
	if alias, ok := hotkeyKeyAliases[key]; ok {
		key = alias
	}
	if !HotkeyKeys[key] {
		return Hotkey{}, fmt.Errorf("hotkey %q: unknown key %q", s, key)
	}
	hk.Key = key
	return hk, nil
}
