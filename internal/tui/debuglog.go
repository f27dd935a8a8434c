package tui

import (
	"io"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	debugOnce   sync.Once
	debugLogger *charmlog.Logger
)

// debugLog returns the TUI debug logger. The TUI owns the terminal, so
// nothing may write to stderr; set BLOCKVIEW_TUI_DEBUG to a file path to get
// a log, otherwise everything is discarded.
func debugLog() *charmlog.Logger {
	debugOnce.Do(func() {
		w := io.Writer(io.Discard)
		if path := strings.TrimSpace(os.Getenv("BLOCKVIEW_TUI_DEBUG")); path != "" {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = f
			}
		}
		debugLogger = charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           charmlog.DebugLevel,
		})
	})
	return debugLogger
}
