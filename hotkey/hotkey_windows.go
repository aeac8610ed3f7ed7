//go:build windows

package hotkey

import "golang.design/x/hotkey"

func platformModifier(name string) (hotkey.Modifier, bool) {
	switch name {
	case "alt":
		return hotkey.ModAlt, true
	case "super":
		return hotkey.ModWin, true
	}
	return 0, false
}
