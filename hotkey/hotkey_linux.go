//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 maps Alt to Mod1 and Super to Mod4 on common keyboard layouts.
func platformModifier(name string) (hotkey.Modifier, bool) {
	switch name {
	case "alt":
		return hotkey.Mod1, true
	case "super":
		return hotkey.Mod4, true
	}
	return 0, false
}
