//go:build !windows

package capture

import "github.com/vova616/screenshot"

var platformGrab GrabFunc = screenshot.CaptureRect
