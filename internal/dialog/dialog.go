// Package dialog holds the types shared by the chooser facade and its
// native and fallback adapters.
package dialog

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Mode is the kind of file system entry the user may select.
type Mode int

const (
	Files Mode = iota
	Directories
	FilesAndDirectories
)

func (m Mode) String() string {
	switch m {
	case Files:
		return "files"
	case Directories:
		return "dirs"
	case FilesAndDirectories:
		return "both"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names returned by Mode.String plus a few long forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "files", "file":
		return Files, nil
	case "dirs", "dir", "directories", "directory":
		return Directories, nil
	case "both", "all", "files-and-directories", "filesanddirectories":
		return FilesAndDirectories, nil
	}
	return Files, fmt.Errorf("unknown selection mode %q", s)
}

// Action tells whether a dialog opens or saves.
type Action int

const (
	Open Action = iota
	Save
)

func (a Action) String() string {
	if a == Save {
		return "save"
	}
	return "open"
}

// Owner is the native handle of the window owning a dialog. Zero means the
// dialog has no owner.
type Owner uintptr

// AcceptAllPattern is the extension that matches every file.
const AcceptAllPattern = "*"

var (
	// ErrNoExtensions is returned when a filter is registered without extensions.
	ErrNoExtensions = errors.New("filter needs at least one extension")
	// ErrInvalidFilter is returned for labels or extensions that cannot be
	// packed for the native dialog.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Filter is a labelled list of file extensions, without leading dots.
type Filter struct {
	Label      string   `yaml:"label"`
	Extensions []string `yaml:"extensions"`
}

// NewFilter validates and builds a Filter.
func NewFilter(label string, extensions ...string) (Filter, error) {
	if len(extensions) == 0 {
		return Filter{}, fmt.Errorf("filter %q: %w", label, ErrNoExtensions)
	}
	if strings.ContainsRune(label, 0) {
		return Filter{}, fmt.Errorf("filter %q: NUL in label: %w", label, ErrInvalidFilter)
	}
	for _, ext := range extensions {
		if ext == "" {
			return Filter{}, fmt.Errorf("filter %q: empty extension: %w", label, ErrNoExtensions)
		}
		// NUL ends a string and ';' separates patterns in the packed buffer
		if strings.ContainsAny(ext, "\x00;") {
			return Filter{}, fmt.Errorf("filter %q: extension %q: %w", label, ext, ErrInvalidFilter)
		}
	}
	return Filter{Label: label, Extensions: slices.Clone(extensions)}, nil
}

// AcceptsAll reports whether the filter is the "all files" filter.
func (f Filter) AcceptsAll() bool {
	return len(f.Extensions) == 1 && f.Extensions[0] == AcceptAllPattern
}

// Patterns returns the glob patterns of the filter, "*.ext" for each extension.
func (f Filter) Patterns() []string {
	patterns := make([]string, len(f.Extensions))
	for i, ext := range f.Extensions {
		patterns[i] = "*." + ext
	}
	return patterns
}

// Config is the dialog configuration handed to an adapter for one invocation.
type Config struct {
	Mode             Mode
	MultiSelection   bool
	DefaultFile      string
	Title            string
	OpenButtonText   string
	SaveButtonText   string
	CurrentDirectory string
	Filters          []Filter
	// FilterIndex is the 1-based index of the initially selected filter.
	FilterIndex int
	AddToRecent bool
	// MaxFiles bounds the native multi-selection buffer.
	MaxFiles int
}

// DefaultMaxFiles is the number of paths the native multi-selection buffer
// is sized for.
const DefaultMaxFiles = 10000

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Filters = make([]Filter, len(c.Filters))
	for i, f := range c.Filters {
		out.Filters[i] = Filter{Label: f.Label, Extensions: slices.Clone(f.Extensions)}
	}
	return out
}

// ApproveText returns the button text configured for the action.
func (c Config) ApproveText(action Action) string {
	if action == Save {
		return c.SaveButtonText
	}
	return c.OpenButtonText
}

// Strategy identifies the adapter that shows a dialog.
type Strategy int

const (
	NativeFileDialog Strategy = iota
	NativeFolderBrowser
	FallbackDialog
)

func (s Strategy) String() string {
	switch s {
	case NativeFileDialog:
		return "native-file"
	case NativeFolderBrowser:
		return "native-folder"
	case FallbackDialog:
		return "fallback"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Result is the outcome of one accepted dialog invocation.
type Result struct {
	ID          uuid.UUID
	Files       []string
	Directory   string
	FilterIndex int
	Strategy    Strategy
}

// NewResult builds a Result with a fresh ID. An empty dir is derived from
// the parent of the first file.
func NewResult(strategy Strategy, files []string, dir string) Result {
	if dir == "" && len(files) > 0 {
		dir = filepath.Dir(files[0])
	}
	return Result{
		ID:        uuid.New(),
		Files:     files,
		Directory: dir,
		Strategy:  strategy,
	}
}

// SelectedFile returns the first selected path, or "" if there is none.
func (r Result) SelectedFile() string {
	if len(r.Files) == 0 {
		return ""
	}
	return r.Files[0]
}

// Clone returns a copy of r that shares no slices with it.
func (r Result) Clone() Result {
	r.Files = slices.Clone(r.Files)
	return r
}
