//go:build !(js && wasm)
// +build !js !wasm

// Package debug writes trace output. Natively it is off unless
// TICTACTOE_DEBUG is set or SetEnabled(true) is called.
package debug

import (
	"log"
	"os"
	"sync/atomic"
)

var enabled atomic.Bool

func init() {
	enabled.Store(os.Getenv("TICTACTOE_DEBUG") != "")
}

// SetEnabled turns tracing on or off.
func SetEnabled(on bool) { enabled.Store(on) }

// Enabled reports whether tracing is on.
func Enabled() bool { return enabled.Load() }

func Log(format string, args ...any) {
	if !enabled.Load() {
		return
	}
	log.Printf("[debug] "+format, args...)
}
