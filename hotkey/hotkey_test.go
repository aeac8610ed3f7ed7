//go:build windows

package hotkey

import (
	"testing"

	"github.com/soocke/region-capture/config"
)

func TestKeysCoverConfigNames(t *testing.T) {
	for name := range config.HotkeyKeys {
		if _, ok := keys[name]; !ok {
			t.Fatalf("key %q accepted by config but not mapped", name)
		}
	}
	for _, name := range []string{"ctrl", "shift", "alt", "super"} {
		if _, ok := modifier(name); !ok {
			t.Fatalf("modifier %q not mapped", name)
		}
	}
}
