//go:build windows || darwin || gtk

package filechooser

import (
	"log/slog"

	"github.com/leonwijng/filechooser/internal/fallback"
	"github.com/leonwijng/filechooser/internal/fallback/sqweek"
)

// sqweek shows one file or one directory, everything else goes to the
// terminal prompt.
func defaultToolkit(log *slog.Logger) Toolkit {
	return fallback.NewChain(log, sqweek.New(log), fallback.StdPrompt())
}
