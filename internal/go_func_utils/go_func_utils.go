package go_func_utils

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn in a goroutine. A panic is written to logger with its stack
// and then re-raised, since the terminal UI otherwise swallows the crash output.
func SafeGo(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}

// SafeGoRecover runs fn in a goroutine and swallows any panic after logging it.
// Used for best-effort work such as audio cues that must never take the app down.
func SafeGoRecover(logger *log.Logger, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC (recovered): %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}
