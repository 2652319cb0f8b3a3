package win32

import (
	"errors"
	"fmt"
)

// CommDlgExtendedError codes.
const (
	CDERR_STRUCTSIZE      = 0x0001
	CDERR_INITIALIZATION  = 0x0002
	CDERR_NOTEMPLATE      = 0x0003
	CDERR_NOHINSTANCE     = 0x0004
	CDERR_LOADSTRFAILURE  = 0x0005
	CDERR_FINDRESFAILURE  = 0x0006
	CDERR_LOADRESFAILURE  = 0x0007
	CDERR_LOCKRESFAILURE  = 0x0008
	CDERR_MEMALLOCFAILURE = 0x0009
	CDERR_MEMLOCKFAILURE  = 0x000A
	CDERR_NOHOOK          = 0x000B
	CDERR_REGISTERMSGFAIL = 0x000C
	FNERR_SUBCLASSFAILURE = 0x3001
	FNERR_INVALIDFILENAME = 0x3002
	FNERR_BUFFERTOOSMALL  = 0x3003
	CDERR_DIALOGFAILURE   = 0xFFFF
)

var codeNames = map[uint32]string{
	CDERR_STRUCTSIZE:      "CDERR_STRUCTSIZE",
	CDERR_INITIALIZATION:  "CDERR_INITIALIZATION",
	CDERR_NOTEMPLATE:      "CDERR_NOTEMPLATE",
	CDERR_NOHINSTANCE:     "CDERR_NOHINSTANCE",
	CDERR_LOADSTRFAILURE:  "CDERR_LOADSTRFAILURE",
	CDERR_FINDRESFAILURE:  "CDERR_FINDRESFAILURE",
	CDERR_LOADRESFAILURE:  "CDERR_LOADRESFAILURE",
	CDERR_LOCKRESFAILURE:  "CDERR_LOCKRESFAILURE",
	CDERR_MEMALLOCFAILURE: "CDERR_MEMALLOCFAILURE",
	CDERR_MEMLOCKFAILURE:  "CDERR_MEMLOCKFAILURE",
	CDERR_NOHOOK:          "CDERR_NOHOOK",
	CDERR_REGISTERMSGFAIL: "CDERR_REGISTERMSGFAIL",
	FNERR_SUBCLASSFAILURE: "FNERR_SUBCLASSFAILURE",
	FNERR_INVALIDFILENAME: "FNERR_INVALIDFILENAME",
	FNERR_BUFFERTOOSMALL:  "FNERR_BUFFERTOOSMALL",
	CDERR_DIALOGFAILURE:   "CDERR_DIALOGFAILURE",
}

// ErrDialog is matched by every Error.
var ErrDialog = errors.New("native dialog failed")

// Error is a native dialog failure, as opposed to the user cancelling it.
type Error struct {
	Op   string
	Code uint32
}

func (e *Error) Error() string {
	if name, ok := codeNames[e.Code]; ok {
		return fmt.Sprintf("%s failed with error %#04x (%s)", e.Op, e.Code, name)
	}
	return fmt.Sprintf("%s failed with error %#04x", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return ErrDialog
}
