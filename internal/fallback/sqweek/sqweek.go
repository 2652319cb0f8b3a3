//go:build windows || darwin || gtk

package sqweek

import (
	"errors"
	"log/slog"

	sqdialog "github.com/sqweek/dialog"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/fallback"
	"github.com/leonwijng/filechooser/internal/logger"
)

// Toolkit shows one file or one directory. It returns fallback.ErrUnsupported
// for mixed mode and multi-selection so a fallback.Chain can pass those on.
// It has no owner window or approve text; both are ignored.
type Toolkit struct {
	log *slog.Logger
}

var _ fallback.Toolkit = (*Toolkit)(nil)

// New returns the sqweek toolkit.
func New(log *slog.Logger) *Toolkit {
	return &Toolkit{log: logger.Or(log)}
}

func (t *Toolkit) Choose(req fallback.Request) (fallback.Response, bool, error) {
	if err := Check(req); err != nil {
		return fallback.Response{}, false, err
	}
	if req.ApproveText != "" {
		t.log.Debug("sqweek ignores approve text", "approveText", req.ApproveText)
	}

	var (
		path string
		err  error
	)
	switch {
	case req.Mode == dialog.Directories:
		b := sqdialog.Directory().Title(req.Title)
		if req.StartDir != "" {
			b = b.SetStartDir(req.StartDir)
		}
		path, err = b.Browse()
	case req.Action == dialog.Save:
		path, err = FileBuilder(req).Save()
	default:
		path, err = FileBuilder(req).Load()
	}

	if errors.Is(err, sqdialog.ErrCancelled) {
		return fallback.Response{}, false, nil
	}
	if err != nil {
		return fallback.Response{}, false, err
	}
	if path == "" {
		return fallback.Response{}, false, nil
	}
	return fallback.Response{Files: []string{path}}, true, nil
}

// FileBuilder configures a sqweek file dialog for req.
func FileBuilder(req fallback.Request) *sqdialog.FileBuilder {
	b := sqdialog.File().Title(req.Title)
	for _, f := range Filters(req) {
		b = b.Filter(f.Label, f.Extensions...)
	}
	if req.StartDir != "" {
		b = b.SetStartDir(req.StartDir)
	}
	if req.SelectedFile != "" {
		b = b.SetStartFile(req.SelectedFile)
	}
	return b
}
