// Package sqweek implements fallback.Toolkit with github.com/sqweek/dialog,
// which uses GTK on Linux, Cocoa on macOS and the common dialogs on Windows.
//
// The toolkit is only built with the windows, darwin or gtk build tags,
// since sqweek needs cgo and GTK 3 on Linux.
package sqweek

import (
	"fmt"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/fallback"
)

const allFilesLabel = "All Files"

// Check returns fallback.ErrUnsupported for requests sqweek cannot show:
// its dialogs select exactly one file or one directory.
func Check(req fallback.Request) error {
	switch {
	case req.Mode == dialog.FilesAndDirectories:
		return fmt.Errorf("%w: sqweek cannot select files and directories together", fallback.ErrUnsupported)
	case req.MultiSelection:
		return fmt.Errorf("%w: sqweek cannot select several entries", fallback.ErrUnsupported)
	}
	return nil
}

// Filters returns the filters shown for req, the accept-all filter last.
func Filters(req fallback.Request) []dialog.Filter {
	filters := make([]dialog.Filter, 0, len(req.Filters)+1)
	filters = append(filters, req.Filters...)
	if req.AcceptAll {
		filters = append(filters, dialog.Filter{Label: allFilesLabel, Extensions: []string{dialog.AcceptAllPattern}})
	}
	return filters
}
