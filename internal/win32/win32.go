// Package win32 exposes the comdlg32, shell32 and ole32 calls used to show
// the native Windows file and folder dialogs. The calls are reached through
// the API interface so that dialog adapters can run against a fake.
package win32

import "unsafe"

// GetOpenFileName / GetSaveFileName flags.
const (
	OFN_READONLY         = 0x00000001
	OFN_OVERWRITEPROMPT  = 0x00000002
	OFN_HIDEREADONLY     = 0x00000004
	OFN_NOCHANGEDIR      = 0x00000008
	OFN_ALLOWMULTISELECT = 0x00000200
	OFN_PATHMUSTEXIST    = 0x00000800
	OFN_FILEMUSTEXIST    = 0x00001000
	OFN_EXPLORER         = 0x00080000
	OFN_ENABLESIZING     = 0x00800000
	OFN_DONTADDTORECENT  = 0x02000000
)

// SHBrowseForFolder flags.
const (
	BIF_RETURNONLYFSDIRS = 0x00000001
	BIF_EDITBOX          = 0x00000010
	BIF_NEWDIALOGSTYLE   = 0x00000040
	BIF_USENEWUI         = BIF_NEWDIALOGSTYLE | BIF_EDITBOX
)

// OpenFileName mirrors OPENFILENAMEW.
type OpenFileName struct {
	StructSize      uint32
	Owner           uintptr
	Instance        uintptr
	Filter          *uint16
	CustomFilter    *uint16
	MaxCustomFilter uint32
	FilterIndex     uint32
	File            *uint16
	MaxFile         uint32
	FileTitle       *uint16
	MaxFileTitle    uint32
	InitialDir      *uint16
	Title           *uint16
	Flags           uint32
	FileOffset      uint16
	FileExtension   uint16
	DefExt          *uint16
	CustData        uintptr
	FnHook          uintptr
	TemplateName    *uint16
	PvReserved      uintptr
	DwReserved      uint32
	FlagsEx         uint32
}

// NewOpenFileName returns an OpenFileName with its size field set.
func NewOpenFileName() *OpenFileName {
	return &OpenFileName{StructSize: uint32(unsafe.Sizeof(OpenFileName{}))}
}

// BrowseInfo mirrors BROWSEINFOW.
type BrowseInfo struct {
	Owner       uintptr
	Root        uintptr
	DisplayName *uint16
	Title       *uint16
	Flags       uint32
	Callback    uintptr
	LParam      uintptr
	Image       int32
}

// API is the set of native calls the dialog adapters depend on.
type API interface {
	// Available reports whether native dialogs can be shown at all.
	Available() bool

	GetOpenFileName(ofn *OpenFileName) bool
	GetSaveFileName(ofn *OpenFileName) bool
	CommDlgExtendedError() uint32

	OleInitialize() error
	// SHBrowseForFolder returns the PIDL of the chosen folder, or 0 on cancel.
	SHBrowseForFolder(bi *BrowseInfo) uintptr
	// SHGetPathFromIDList writes the path of pidl into path, which must hold
	// at least MAX_PATH units.
	SHGetPathFromIDList(pidl uintptr, path *uint16) bool
	CoTaskMemFree(pidl uintptr)
}
