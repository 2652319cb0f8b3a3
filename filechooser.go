// Package filechooser shows a file or folder selection dialog. It uses the
// native Windows dialogs where they can serve the request and a portable
// toolkit chooser everywhere else, for example on other platforms or when
// files and directories are to be selected together.
//
//	fc := filechooser.New()
//	fc.AddFilter("All Files", "*")
//	fc.AddFilter("Pictures", "jpg", "jpeg", "gif", "png", "bmp")
//	fc.SetMultiSelectionEnabled(true)
//	ok, err := fc.ShowOpenDialog(filechooser.NoOwner)
//	if err != nil {
//		return err
//	}
//	if ok {
//		for _, path := range fc.SelectedFiles() {
//			// ...
//		}
//	}
package filechooser

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/fallback"
	"github.com/leonwijng/filechooser/internal/logger"
	"github.com/leonwijng/filechooser/internal/native"
	"github.com/leonwijng/filechooser/internal/packed"
	"github.com/leonwijng/filechooser/internal/win32"
)

// DefaultMaxFiles is the number of paths the native multi-selection buffer
// is sized for.
const DefaultMaxFiles = dialog.DefaultMaxFiles

// MaxFiles is the largest value SetMaxFiles can take.
const MaxFiles = packed.MaxFiles

// Chooser holds the dialog configuration and the outcome of the last
// accepted dialog. A Chooser shows one dialog at a time and must not be
// used from several goroutines at once.
type Chooser struct {
	cfg    dialog.Config
	result Result

	api               NativeAPI
	toolkit           Toolkit
	nativeMultiSelect bool
	log               *slog.Logger

	fileDialog    *native.FileDialog
	folderBrowser *native.FolderBrowser
	fallback      *fallback.Adapter
}

// Option configures a Chooser.
type Option func(*Chooser)

// WithCurrentDirectory sets the directory the first dialog starts in. A
// path that is not a directory is replaced by its parent.
func WithCurrentDirectory(path string) Option {
	return func(c *Chooser) {
		c.cfg.CurrentDirectory = resolveDirectory(path)
	}
}

// WithNative replaces the Windows API, mainly for tests.
func WithNative(api NativeAPI) Option {
	return func(c *Chooser) {
		c.api = api
	}
}

// WithToolkit replaces the fallback toolkit.
func WithToolkit(tk Toolkit) Option {
	return func(c *Chooser) {
		c.toolkit = tk
	}
}

// WithNativeMultiSelect controls whether multi-selection of files uses the
// native dialog (the default) or the fallback toolkit.
func WithNativeMultiSelect(enabled bool) Option {
	return func(c *Chooser) {
		c.nativeMultiSelect = enabled
	}
}

// WithLogger sets the logger; the package default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chooser) {
		c.log = l
	}
}

// New returns a Chooser selecting a single file with no filters.
func New(opts ...Option) *Chooser {
	c := &Chooser{
		cfg: dialog.Config{
			Mode:        Files,
			FilterIndex: 1,
			MaxFiles:    DefaultMaxFiles,
		},
		nativeMultiSelect: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = logger.Or(c.log)
	if c.api == nil {
		c.api = win32.System()
	}
	if c.toolkit == nil {
		c.toolkit = defaultToolkit(c.log)
	}
	c.fileDialog = native.NewFileDialog(c.api, c.log)
	c.folderBrowser = native.NewFolderBrowser(c.api, c.log)
	c.fallback = fallback.New(c.toolkit, c.log)
	return c
}

func resolveDirectory(path string) string {
	if path == "" {
		return ""
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// ShowOpenDialog shows an open dialog and blocks until it is closed. It
// reports whether the user accepted a selection. The selection replaces the
// previous one only when accepted.
func (c *Chooser) ShowOpenDialog(owner Owner) (bool, error) {
	return c.show(owner, dialog.Open)
}

// ShowSaveDialog shows a save dialog, see ShowOpenDialog.
func (c *Chooser) ShowSaveDialog(owner Owner) (bool, error) {
	return c.show(owner, dialog.Save)
}

func (c *Chooser) show(owner Owner, action dialog.Action) (bool, error) {
	cfg := c.cfg.Clone()
	strategy := SelectStrategy(c.Capabilities(), cfg.Mode, cfg.MultiSelection)
	log := c.log.With("action", action, "strategy", strategy)
	if strategy == FallbackDialog && c.api.Available() {
		log.Debug("native dialog cannot serve request", "mode", cfg.Mode, "multi", cfg.MultiSelection)
	}

	var (
		res Result
		ok  bool
		err error
	)
	switch strategy {
	case NativeFileDialog:
		res, ok, err = c.fileDialog.Show(cfg, owner, action)
	case NativeFolderBrowser:
		res, ok, err = c.folderBrowser.Show(cfg, owner)
	default:
		res, ok, err = c.fallback.Show(cfg, owner, action)
	}
	if err != nil {
		log.Debug("dialog failed", "error", err)
		return false, err
	}
	if !ok {
		log.Debug("dialog cancelled")
		return false, nil
	}

	c.result = res
	if res.Directory != "" {
		c.cfg.CurrentDirectory = res.Directory
	}
	if res.FilterIndex > 0 {
		c.cfg.FilterIndex = res.FilterIndex
	}
	log.Debug("dialog accepted", "id", res.ID, "files", len(res.Files), "dir", res.Directory)
	return true, nil
}

// Capabilities reports what the native dialogs can do for this Chooser.
func (c *Chooser) Capabilities() Capabilities {
	return Capabilities{
		Native:            c.api.Available(),
		NativeMultiSelect: c.nativeMultiSelect,
	}
}

// AddFilter appends a filter. Extensions have no leading dot; a filter whose
// only extension is "*" matches all files. The order of registration is the
// order shown to the user.
func (c *Chooser) AddFilter(label string, extensions ...string) error {
	f, err := dialog.NewFilter(label, extensions...)
	if err != nil {
		return err
	}
	c.cfg.Filters = append(c.cfg.Filters, f)
	return nil
}

// Filters returns a copy of the registered filters.
func (c *Chooser) Filters() []Filter {
	return c.cfg.Clone().Filters
}

func (c *Chooser) SetMode(mode Mode) {
	c.cfg.Mode = mode
}

func (c *Chooser) Mode() Mode {
	return c.cfg.Mode
}

func (c *Chooser) SetMultiSelectionEnabled(enabled bool) {
	c.cfg.MultiSelection = enabled
}

func (c *Chooser) MultiSelectionEnabled() bool {
	return c.cfg.MultiSelection
}

// SetDefaultFileName preselects a file name in the dialog.
func (c *Chooser) SetDefaultFileName(name string) {
	c.cfg.DefaultFile = name
}

func (c *Chooser) SetTitle(title string) {
	c.cfg.Title = title
}

// SetOpenButtonText sets the approve button text of open dialogs. Only the
// fallback toolkit honours it.
func (c *Chooser) SetOpenButtonText(text string) {
	c.cfg.OpenButtonText = text
}

// SetSaveButtonText sets the approve button text of save dialogs. Only the
// fallback toolkit honours it.
func (c *Chooser) SetSaveButtonText(text string) {
	c.cfg.SaveButtonText = text
}

// SetCurrentDirectory sets the directory the next dialog starts in.
func (c *Chooser) SetCurrentDirectory(path string) {
	c.cfg.CurrentDirectory = path
}

// SetFilterIndex selects the initial filter, counting from 1.
func (c *Chooser) SetFilterIndex(index int) {
	c.cfg.FilterIndex = index
}

// FilterIndex is the filter last chosen in a native dialog, or the one set
// with SetFilterIndex.
func (c *Chooser) FilterIndex() int {
	return c.cfg.FilterIndex
}

// SetAddToRecent lets the native dialog add the selection to the recent
// documents list.
func (c *Chooser) SetAddToRecent(enabled bool) {
	c.cfg.AddToRecent = enabled
}

// SetMaxFiles sizes the native multi-selection buffer. Values above
// MaxFiles make the native dialog fail with ErrTooManyFiles.
func (c *Chooser) SetMaxFiles(n int) {
	c.cfg.MaxFiles = n
}

// SelectedFile returns the first selected path, or "" before any accepted
// dialog.
func (c *Chooser) SelectedFile() string {
	return c.result.SelectedFile()
}

// SelectedFiles returns all paths of the last accepted dialog.
func (c *Chooser) SelectedFiles() []string {
	return slices.Clone(c.result.Files)
}

// CurrentDirectory returns the directory of the last accepted selection, or
// the configured start directory.
func (c *Chooser) CurrentDirectory() string {
	return c.cfg.CurrentDirectory
}

// Result returns the last accepted result. Its ID is zero before any
// dialog was accepted.
func (c *Chooser) Result() Result {
	return c.result.Clone()
}
