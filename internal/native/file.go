// Package native shows the Windows common file dialog and folder browser.
package native

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/logger"
	"github.com/leonwijng/filechooser/internal/packed"
	"github.com/leonwijng/filechooser/internal/win32"
)

const baseFlags = win32.OFN_EXPLORER |
	// restore the process working directory after browsing
	win32.OFN_NOCHANGEDIR |
	win32.OFN_HIDEREADONLY |
	win32.OFN_ENABLESIZING

var errEmptySelection = errors.New("dialog accepted without a selection")

// FileDialog shows GetOpenFileName / GetSaveFileName.
type FileDialog struct {
	api win32.API
	log *slog.Logger
}

// NewFileDialog returns a FileDialog calling api. A nil log uses the
// default logger.
func NewFileDialog(api win32.API, log *slog.Logger) *FileDialog {
	return &FileDialog{api: api, log: logger.Or(log)}
}

// Flags returns the OFN flags used for cfg.
func Flags(cfg dialog.Config) uint32 {
	flags := uint32(baseFlags)
	if !cfg.AddToRecent {
		flags |= win32.OFN_DONTADDTORECENT
	}
	if cfg.MultiSelection {
		flags |= win32.OFN_ALLOWMULTISELECT
	}
	return flags
}

// Show blocks until the user accepts or cancels the dialog. Cancelling
// returns false and a nil error; a native failure returns a *win32.Error.
func (d *FileDialog) Show(cfg dialog.Config, owner dialog.Owner, action dialog.Action) (dialog.Result, bool, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ofn := win32.NewOpenFileName()
	ofn.Owner = uintptr(owner)
	ofn.Flags = Flags(cfg)

	// The dialog fails with FNERR_BUFFERTOOSMALL if the selection does not
	// fit, there is no second attempt with a larger buffer.
	length, err := packed.FileBufferLength(cfg.MultiSelection, cfg.MaxFiles)
	if err != nil {
		return dialog.Result{}, false, err
	}
	buf := make([]uint16, (packed.FileBufferBytes(length)+1)/2)
	if cfg.DefaultFile != "" {
		def, err := packed.EncodeString(cfg.DefaultFile)
		if err != nil {
			return dialog.Result{}, false, err
		}
		if len(def)/2 >= length {
			return dialog.Result{}, false, fmt.Errorf("default file name %q exceeds %d characters", cfg.DefaultFile, length-1)
		}
		copy(buf, packed.Units(def))
	}
	ofn.File = &buf[0]
	ofn.MaxFile = uint32(length)

	if ofn.Title, err = wide(cfg.Title); err != nil {
		return dialog.Result{}, false, err
	}
	if ofn.InitialDir, err = wide(cfg.CurrentDirectory); err != nil {
		return dialog.Result{}, false, err
	}

	if len(cfg.Filters) > 0 {
		enc, err := packed.EncodeFilters(cfg.Filters)
		if err != nil {
			return dialog.Result{}, false, err
		}
		ofn.Filter = &packed.Units(enc)[0]
		ofn.FilterIndex = uint32(max(cfg.FilterIndex, 1))
	}

	op := "GetOpenFileName"
	call := d.api.GetOpenFileName
	if action == dialog.Save {
		op, call = "GetSaveFileName", d.api.GetSaveFileName
	}

	d.log.Debug("showing native file dialog",
		"action", action,
		"multi", cfg.MultiSelection,
		"filters", len(cfg.Filters),
		"buffer", length)

	if !call(ofn) {
		// zero means the user cancelled
		if code := d.api.CommDlgExtendedError(); code != 0 {
			return dialog.Result{}, false, &win32.Error{Op: op, Code: code}
		}
		return dialog.Result{}, false, nil
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), 2*len(buf))
	var (
		files []string
		dir   string
	)
	if cfg.MultiSelection {
		files, dir = packed.Selection(packed.DecodePaths(raw))
	} else if p := packed.FirstPath(raw); p != "" {
		files, dir = []string{p}, packed.Parent(p)
	}
	if len(files) == 0 {
		return dialog.Result{}, false, fmt.Errorf("%s: %w", op, errEmptySelection)
	}

	res := dialog.NewResult(dialog.NativeFileDialog, files, dir)
	// the user may have switched filters
	res.FilterIndex = int(ofn.FilterIndex)
	return res, true, nil
}

// wide returns s as a NUL terminated UTF-16 string, or nil for "".
func wide(s string) (*uint16, error) {
	if s == "" {
		return nil, nil
	}
	b, err := packed.EncodeString(s + "\x00")
	if err != nil {
		return nil, err
	}
	return &packed.Units(b)[0], nil
}
