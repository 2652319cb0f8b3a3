//go:build !windows && !darwin && !gtk

package filechooser

import (
	"log/slog"

	"github.com/leonwijng/filechooser/internal/fallback"
)

// Linux builds use the terminal unless built with -tags gtk, which needs
// cgo and the GTK 3 headers.
func defaultToolkit(*slog.Logger) Toolkit {
	return fallback.StdPrompt()
}
