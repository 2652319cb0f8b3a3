//go:build !windows

package win32

import "errors"

var errUnsupported = errors.New("native dialogs are only available on windows")

type system struct{}

// System returns an API whose Available method reports false.
func System() API {
	return system{}
}

func (system) Available() bool { return false }
func (system) GetOpenFileName(*OpenFileName) bool { return false }
func (system) GetSaveFileName(*OpenFileName) bool { return false }
func (system) CommDlgExtendedError() uint32 { return CDERR_INITIALIZATION }
func (system) OleInitialize() error { return errUnsupported }
func (system) SHBrowseForFolder(*BrowseInfo) uintptr { return 0 }
func (system) SHGetPathFromIDList(uintptr, *uint16) bool { return false }
func (system) CoTaskMemFree(uintptr) {}
