package fireworks

import (
	"io"
	"log"
	"os"
)

// logger receives binding errors, render warnings and debug stats. Per-frame
// failures are never returned to callers; they end up here.
var logger = log.New(os.Stderr, "[fireworks] ", 0)

// SetLogOutput redirects package diagnostics. Passing nil restores stderr.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
