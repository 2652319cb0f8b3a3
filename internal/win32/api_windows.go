//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modcomdlg32 = windows.NewLazySystemDLL("comdlg32.dll")
	modshell32  = windows.NewLazySystemDLL("shell32.dll")
	modole32    = windows.NewLazySystemDLL("ole32.dll")

	procGetOpenFileNameW     = modcomdlg32.NewProc("GetOpenFileNameW")
	procGetSaveFileNameW     = modcomdlg32.NewProc("GetSaveFileNameW")
	procCommDlgExtendedError = modcomdlg32.NewProc("CommDlgExtendedError")
	procSHBrowseForFolderW   = modshell32.NewProc("SHBrowseForFolderW")
	procSHGetPathFromIDListW = modshell32.NewProc("SHGetPathFromIDListW")
	procOleInitialize        = modole32.NewProc("OleInitialize")
	procCoTaskMemFree        = modole32.NewProc("CoTaskMemFree")
)

const rpcEChangedMode = 0x80010106

type system struct{}

// System returns the API backed by the Windows DLLs.
func System() API {
	return system{}
}

func (system) Available() bool {
	return modcomdlg32.Load() == nil && modshell32.Load() == nil && modole32.Load() == nil
}

func (system) GetOpenFileName(ofn *OpenFileName) bool {
	ret, _, _ := procGetOpenFileNameW.Call(uintptr(unsafe.Pointer(ofn)))
	return ret != 0
}

func (system) GetSaveFileName(ofn *OpenFileName) bool {
	ret, _, _ := procGetSaveFileNameW.Call(uintptr(unsafe.Pointer(ofn)))
	return ret != 0
}

func (system) CommDlgExtendedError() uint32 {
	ret, _, _ := procCommDlgExtendedError.Call()
	return uint32(ret)
}

func (system) OleInitialize() error {
	hr, _, _ := procOleInitialize.Call(0)
	// S_FALSE means the thread was already initialized
	if int32(hr) < 0 && uint32(hr) != rpcEChangedMode {
		return fmt.Errorf("OleInitialize: %w", windows.Errno(hr))
	}
	return nil
}

func (system) SHBrowseForFolder(bi *BrowseInfo) uintptr {
	pidl, _, _ := procSHBrowseForFolderW.Call(uintptr(unsafe.Pointer(bi)))
	return pidl
}

func (system) SHGetPathFromIDList(pidl uintptr, path *uint16) bool {
	ret, _, _ := procSHGetPathFromIDListW.Call(pidl, uintptr(unsafe.Pointer(path)))
	return ret != 0
}

func (system) CoTaskMemFree(pidl uintptr) {
	procCoTaskMemFree.Call(pidl)
}
