// Package win32test provides a scripted win32.API for tests.
package win32test

import (
	"encoding/binary"
	"unsafe"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/packed"
	"github.com/leonwijng/filechooser/internal/win32"
)

// Fake answers native calls from its fields and records what it was given.
// The zero value is an available platform on which every dialog is
// cancelled.
type Fake struct {
	Unavailable bool

	// Accept makes the file dialogs succeed and write Selection, a packed
	// path buffer such as "C:\\dir\x00a.txt\x00\x00", to the output buffer.
	Accept    bool
	Selection string
	// ChosenFilter is reported back as the filter index when non-zero.
	ChosenFilter uint32
	// ErrorCode is returned by CommDlgExtendedError after a failed call.
	ErrorCode uint32

	// Folder is the path returned by the folder browser; empty cancels.
	Folder    string
	PathFails bool
	OleErr    error

	Calls []string

	Flags       uint32
	Owner       uintptr
	FilterIndex uint32
	MaxFile     uint32
	Filters     []dialog.Filter
	Title       string
	InitialDir  string
	DefaultFile string

	BrowseFlags uint32
	BrowseOwner uintptr
	BrowseTitle string
	Freed       []uintptr

	lastError uint32
}

const pidl = 0xD1D1

var _ win32.API = (*Fake)(nil)

func (f *Fake) Available() bool {
	return !f.Unavailable
}

func (f *Fake) GetOpenFileName(ofn *win32.OpenFileName) bool {
	f.Calls = append(f.Calls, "GetOpenFileName")
	return f.fileDialog(ofn)
}

func (f *Fake) GetSaveFileName(ofn *win32.OpenFileName) bool {
	f.Calls = append(f.Calls, "GetSaveFileName")
	return f.fileDialog(ofn)
}

func (f *Fake) fileDialog(ofn *win32.OpenFileName) bool {
	f.Flags = ofn.Flags
	f.Owner = ofn.Owner
	f.FilterIndex = ofn.FilterIndex
	f.MaxFile = ofn.MaxFile
	f.Title = str(ofn.Title)
	f.InitialDir = str(ofn.InitialDir)
	f.DefaultFile = str(ofn.File)
	f.Filters = nil
	if ofn.Filter != nil {
		f.Filters, _ = packed.DecodeFilters(toBytes(multi(ofn.Filter)))
	}

	f.lastError = 0
	if !f.Accept {
		f.lastError = f.ErrorCode
		return false
	}

	sel, _ := packed.EncodeString(f.Selection)
	units := packed.Units(sel)
	if uint32(len(units)) > ofn.MaxFile {
		f.lastError = win32.FNERR_BUFFERTOOSMALL
		return false
	}
	copy(unsafe.Slice(ofn.File, ofn.MaxFile), units)
	if f.ChosenFilter != 0 {
		ofn.FilterIndex = f.ChosenFilter
	}
	return true
}

func (f *Fake) CommDlgExtendedError() uint32 {
	f.Calls = append(f.Calls, "CommDlgExtendedError")
	return f.lastError
}

func (f *Fake) OleInitialize() error {
	f.Calls = append(f.Calls, "OleInitialize")
	return f.OleErr
}

func (f *Fake) SHBrowseForFolder(bi *win32.BrowseInfo) uintptr {
	f.Calls = append(f.Calls, "SHBrowseForFolder")
	f.BrowseFlags = bi.Flags
	f.BrowseOwner = bi.Owner
	f.BrowseTitle = str(bi.Title)
	if f.Folder == "" {
		return 0
	}
	return pidl
}

func (f *Fake) SHGetPathFromIDList(id uintptr, path *uint16) bool {
	f.Calls = append(f.Calls, "SHGetPathFromIDList")
	if id != pidl || f.PathFails {
		return false
	}
	b, _ := packed.EncodeString(f.Folder + "\x00")
	copy(unsafe.Slice(path, packed.MaxPath), packed.Units(b))
	return true
}

func (f *Fake) CoTaskMemFree(id uintptr) {
	f.Calls = append(f.Calls, "CoTaskMemFree")
	f.Freed = append(f.Freed, id)
}

// str reads a NUL terminated UTF-16 string.
func str(p *uint16) string {
	if p == nil {
		return ""
	}
	var units []uint16
	for u := p; *u != 0; u = (*uint16)(unsafe.Add(unsafe.Pointer(u), 2)) {
		units = append(units, *u)
	}
	return packed.FirstPath(toBytes(append(units, 0)))
}

// multi reads a double NUL terminated UTF-16 string list, terminators included.
func multi(p *uint16) []uint16 {
	var units []uint16
	prev := uint16(1)
	for u := p; ; u = (*uint16)(unsafe.Add(unsafe.Pointer(u), 2)) {
		units = append(units, *u)
		if *u == 0 && prev == 0 {
			return units
		}
		prev = *u
	}
}

func toBytes(units []uint16) []byte {
	b := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(b[2*i:], u)
	}
	return b
}
