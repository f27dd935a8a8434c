package cli

import (
	"io"

	charmlog "github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. It writes to w (stderr in practice) so
// structured JSON on stdout stays machine-readable.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
