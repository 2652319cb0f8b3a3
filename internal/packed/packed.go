// Package packed encodes and decodes the NUL separated UTF-16LE string
// lists exchanged with the Windows common dialogs.
//
// A filter buffer is a list of (label, patterns) pairs:
//
//	Images\0*.png;*.jpg\0Text\0*.txt\0\0
//
// A path buffer returned by a multi-selection dialog is a list of strings
// ending with an empty one. A single string is the selected file; with more
// than one, the first is the directory the remaining file names live in.
package packed

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/leonwijng/filechooser/internal/dialog"
)

const (
	// MaxPath is the Windows path length ceiling in UTF-16 units.
	MaxPath = 260

	// MaxFiles is the largest multi-selection size whose buffer, in bytes,
	// still fits in a DWORD.
	MaxFiles = (math.MaxUint32 - 1) / 4 / MaxPath

	nul = "\x00"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

var (
	// ErrMalformed is returned when a filter buffer is not a valid packed list.
	ErrMalformed = errors.New("malformed packed buffer")
	// ErrTooManyFiles is returned for a multi-selection size above MaxFiles.
	ErrTooManyFiles = errors.New("too many files for the selection buffer")
)

// EncodeString returns s as UTF-16LE without a terminator.
func EncodeString(s string) ([]byte, error) {
	b, err := utf16le.NewEncoder().String(s)
	if err != nil {
		return nil, fmt.Errorf("encode utf-16: %w", err)
	}
	return []byte(b), nil
}

// EncodeFilters packs filters in order. Every filter contributes its label
// and its patterns joined by ';', each followed by a terminator, and the
// buffer ends with one extra terminator.
func EncodeFilters(filters []dialog.Filter) ([]byte, error) {
	var sb strings.Builder
	for _, f := range filters {
		sb.WriteString(f.Label)
		sb.WriteString(nul)
		sb.WriteString(strings.Join(f.Patterns(), ";"))
		sb.WriteString(nul)
	}
	sb.WriteString(nul)
	// an empty list still needs the double terminator
	if len(filters) == 0 {
		sb.WriteString(nul)
	}
	return EncodeString(sb.String())
}

// DecodeFilters is the inverse of EncodeFilters.
func DecodeFilters(buf []byte) ([]dialog.Filter, error) {
	strs, err := splitAll(buf)
	if err != nil {
		return nil, err
	}
	if len(strs)%2 != 0 {
		return nil, fmt.Errorf("%w: label without patterns", ErrMalformed)
	}

	filters := make([]dialog.Filter, 0, len(strs)/2)
	for i := 0; i < len(strs); i += 2 {
		label, patterns := strs[i], strings.Split(strs[i+1], ";")
		exts := make([]string, 0, len(patterns))
		for _, p := range patterns {
			ext, ok := strings.CutPrefix(p, "*.")
			if !ok || ext == "" {
				return nil, fmt.Errorf("%w: pattern %q", ErrMalformed, p)
			}
			exts = append(exts, ext)
		}
		filters = append(filters, dialog.Filter{Label: label, Extensions: exts})
	}
	return filters, nil
}

// splitAll decodes a buffer that must end with a double terminator. Unlike
// DecodePaths it keeps empty strings that are followed by more content, so
// the filter shape can be validated.
func splitAll(buf []byte) ([]string, error) {
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformed, len(buf))
	}
	s := decodeUnits(buf)
	body, ok := strings.CutSuffix(s, nul+nul)
	if !ok {
		return nil, fmt.Errorf("%w: missing final terminator", ErrMalformed)
	}
	if body == "" {
		return nil, nil
	}
	return strings.Split(body, nul), nil
}

// DecodePaths reads NUL terminated strings in 2-byte units until an empty
// string. Unterminated trailing content is dropped.
func DecodePaths(raw []byte) []string {
	var paths []string
	from := 0
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] != 0 || raw[i+1] != 0 {
			continue
		}
		if i == from {
			break
		}
		paths = append(paths, decodeUnits(raw[from:i]))
		from = i + 2
	}
	return paths
}

// FirstPath returns the first NUL terminated string of raw.
func FirstPath(raw []byte) string {
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			return decodeUnits(raw[:i])
		}
	}
	return decodeUnits(raw[:len(raw)&^1])
}

// Selection interprets decoded path strings: one string is the selected
// file, more are a base directory followed by names relative to it.
func Selection(paths []string) (files []string, dir string) {
	switch len(paths) {
	case 0:
		return nil, ""
	case 1:
		return []string{paths[0]}, Parent(paths[0])
	}
	dir = paths[0]
	files = make([]string, 0, len(paths)-1)
	for _, name := range paths[1:] {
		files = append(files, Join(dir, name))
	}
	return files, dir
}

// FileBufferLength is the size, in UTF-16 units, of the buffer receiving
// the selected path(s). A maxFiles below one means the default.
func FileBufferLength(multi bool, maxFiles int) (int, error) {
	if !multi {
		return MaxPath, nil
	}
	if maxFiles < 1 {
		maxFiles = dialog.DefaultMaxFiles
	}
	if maxFiles > MaxFiles {
		return 0, fmt.Errorf("%w: %d, at most %d", ErrTooManyFiles, maxFiles, MaxFiles)
	}
	return maxFiles * MaxPath, nil
}

// FileBufferBytes is the number of bytes reserved for a path buffer of
// length units: four bytes per unit plus a terminating byte.
func FileBufferBytes(length int) int {
	return 4*length + 1
}

// Units converts a UTF-16LE byte buffer to code units. A trailing odd byte
// is ignored.
func Units(b []byte) []uint16 {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return units
}

func decodeUnits(b []byte) string {
	// the decoder substitutes U+FFFD for unpaired surrogates instead of failing
	s, _ := utf16le.NewDecoder().Bytes(b)
	return string(s)
}
