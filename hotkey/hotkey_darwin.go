//go:build darwin

package hotkey

import "golang.design/x/hotkey"

func platformModifier(name string) (hotkey.Modifier, bool) {
	switch name {
	case "alt":
		return hotkey.ModOption, true
	case "super":
		return hotkey.ModCmd, true
	}
	return 0, false
}
