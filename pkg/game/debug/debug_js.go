//go:build js && wasm
// +build js,wasm

package debug

import (
	"fmt"
	"syscall/js"
)

var enabled = true

// SetEnabled turns tracing on or off.
func SetEnabled(on bool) { enabled = on }

// Enabled reports whether tracing is on.
func Enabled() bool { return enabled }

func Log(format string, args ...any) {
	if !enabled {
		return
	}
	js.Global().Get("console").Call("log", fmt.Sprintf(format, args...))
}
