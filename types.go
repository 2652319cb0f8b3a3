package filechooser

import (
	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/fallback"
	"github.com/leonwijng/filechooser/internal/packed"
	"github.com/leonwijng/filechooser/internal/win32"
)

type (
	// Mode is the kind of entry the user may select.
	Mode = dialog.Mode
	// Filter is a labelled list of extensions without leading dots.
	Filter = dialog.Filter
	// Owner is the native handle of the window owning the dialog.
	Owner = dialog.Owner
	// Result is the outcome of an accepted dialog.
	Result = dialog.Result
	// Strategy identifies the dialog implementation used.
	Strategy = dialog.Strategy

	// NativeAPI is the set of Windows calls behind the native dialogs.
	NativeAPI = win32.API
	// NativeError is a failure reported by a native dialog.
	NativeError = win32.Error

	// Toolkit shows the portable fallback chooser.
	Toolkit = fallback.Toolkit
	// ToolkitRequest describes a chooser to a Toolkit.
	ToolkitRequest = fallback.Request
	// ToolkitResponse carries the selection of a Toolkit.
	ToolkitResponse = fallback.Response
)

const (
	Files               = dialog.Files
	Directories         = dialog.Directories
	FilesAndDirectories = dialog.FilesAndDirectories

	NativeFileDialog    = dialog.NativeFileDialog
	NativeFolderBrowser = dialog.NativeFolderBrowser
	FallbackDialog      = dialog.FallbackDialog

	// NoOwner shows a dialog without an owner window.
	NoOwner Owner = 0
)

var (
	// ErrNoExtensions is returned by AddFilter without extensions.
	ErrNoExtensions = dialog.ErrNoExtensions
	// ErrInvalidFilter is returned by AddFilter for a label or extension
	// containing NUL, or an extension containing ';'.
	ErrInvalidFilter = dialog.ErrInvalidFilter
	// ErrUnsupportedRequest is returned by a Toolkit that cannot show the
	// requested chooser. ToolkitChain passes such requests on.
	ErrUnsupportedRequest = fallback.ErrUnsupported
	// ErrTooManyFiles is returned when the multi-selection size exceeds
	// MaxFiles.
	ErrTooManyFiles = packed.ErrTooManyFiles
	// ErrNativeDialog matches every NativeError.
	ErrNativeDialog = win32.ErrDialog
)

// ToolkitChain returns a Toolkit trying toolkits in order, moving on when
// one returns ErrUnsupportedRequest.
func ToolkitChain(toolkits ...Toolkit) Toolkit {
	return fallback.NewChain(nil, toolkits...)
}

// ParseMode parses "files", "dirs" or "both".
func ParseMode(s string) (Mode, error) {
	return dialog.ParseMode(s)
}
