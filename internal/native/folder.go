package native

import (
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/logger"
	"github.com/leonwijng/filechooser/internal/packed"
	"github.com/leonwijng/filechooser/internal/win32"
)

// folderPathUnits sizes the SHGetPathFromIDList buffer, 4 KiB.
const folderPathUnits = 2048

// FolderBrowser shows SHBrowseForFolder.
type FolderBrowser struct {
	api win32.API
	log *slog.Logger
}

// NewFolderBrowser returns a FolderBrowser calling api.
func NewFolderBrowser(api win32.API, log *slog.Logger) *FolderBrowser {
	return &FolderBrowser{api: api, log: logger.Or(log)}
}

// Show lets the user pick one file system directory. Only the title of cfg
// is used.
func (b *FolderBrowser) Show(cfg dialog.Config, owner dialog.Owner) (dialog.Result, bool, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := b.api.OleInitialize(); err != nil {
		return dialog.Result{}, false, fmt.Errorf("folder browser: %w", err)
	}

	bi := &win32.BrowseInfo{
		Owner: uintptr(owner),
		// virtual folders such as "Network" cannot be confirmed
		Flags: win32.BIF_RETURNONLYFSDIRS | win32.BIF_USENEWUI,
	}
	title, err := wide(cfg.Title)
	if err != nil {
		return dialog.Result{}, false, err
	}
	bi.Title = title

	b.log.Debug("showing native folder browser", "title", cfg.Title)

	pidl := b.api.SHBrowseForFolder(bi)
	if pidl == 0 {
		return dialog.Result{}, false, nil
	}
	defer b.api.CoTaskMemFree(pidl)

	buf := make([]uint16, folderPathUnits)
	if !b.api.SHGetPathFromIDList(pidl, &buf[0]) {
		return dialog.Result{}, false, &win32.Error{Op: "SHGetPathFromIDList"}
	}
	folder := packed.FirstPath(unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), 2*len(buf)))

	// a drive root has no parent and is its own current directory
	dir := packed.Parent(folder)
	if dir == "" {
		dir = folder
	}
	return dialog.NewResult(dialog.NativeFolderBrowser, []string{folder}, dir), true, nil
}
