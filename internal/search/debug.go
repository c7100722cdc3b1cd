package search

import (
	"log"
	"os"
)

// debugLoggingEnabled gates the scanner's diagnostic logging. An env var is
// enough here; a one-shot CLI tool has no use for a structured logging
// framework.
var debugLoggingEnabled = os.Getenv("FZLINE_DEBUG_LOG") == "1"

func debugf(format string, args ...any) {
	if !debugLoggingEnabled {
		return
	}
	log.Printf(format, args...)
}
