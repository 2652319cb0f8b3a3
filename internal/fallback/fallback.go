// Package fallback shows a portable toolkit file chooser when the native
// Windows dialogs cannot be used.
package fallback

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/logger"
)

// Request is the toolkit neutral description of a chooser.
type Request struct {
	Action         dialog.Action
	Mode           dialog.Mode
	MultiSelection bool
	Title          string
	ApproveText    string
	StartDir       string
	// SelectedFile is preselected in save dialogs.
	SelectedFile string
	// Filters never contains the accept-all filter, AcceptAll stands for it.
	Filters   []dialog.Filter
	AcceptAll bool
	Owner     dialog.Owner
}

// Response is what the user picked. Directory may be left empty.
type Response struct {
	Files     []string
	Directory string
}

// Toolkit runs a chooser modally. ok is false when the user cancelled.
type Toolkit interface {
	Choose(req Request) (resp Response, ok bool, err error)
}

// Adapter maps a dialog configuration onto a Toolkit.
type Adapter struct {
	toolkit Toolkit
	log     *slog.Logger
}

// New returns an Adapter running tk.
func New(tk Toolkit, log *slog.Logger) *Adapter {
	return &Adapter{toolkit: tk, log: logger.Or(log)}
}

// BuildRequest translates cfg for the toolkit.
func BuildRequest(cfg dialog.Config, owner dialog.Owner, action dialog.Action) Request {
	req := Request{
		Action:         action,
		Mode:           cfg.Mode,
		MultiSelection: cfg.MultiSelection,
		Title:          cfg.Title,
		ApproveText:    cfg.ApproveText(action),
		StartDir:       cfg.CurrentDirectory,
		Owner:          owner,
		// toolkits show "all files" when nothing else is registered
		AcceptAll: len(cfg.Filters) == 0,
	}
	if action == dialog.Save {
		req.SelectedFile = cfg.DefaultFile
	}
	for _, f := range cfg.Filters {
		if f.AcceptsAll() {
			req.AcceptAll = true
			continue
		}
		req.Filters = append(req.Filters, dialog.Filter{Label: f.Label, Extensions: slices.Clone(f.Extensions)})
	}
	return req
}

// Show runs the toolkit chooser for cfg.
func (a *Adapter) Show(cfg dialog.Config, owner dialog.Owner, action dialog.Action) (dialog.Result, bool, error) {
	req := BuildRequest(cfg, owner, action)
	a.log.Debug("showing fallback dialog",
		"action", action,
		"mode", req.Mode,
		"multi", req.MultiSelection,
		"filters", len(req.Filters),
		"acceptAll", req.AcceptAll)

	resp, ok, err := a.toolkit.Choose(req)
	if err != nil {
		return dialog.Result{}, false, fmt.Errorf("fallback dialog: %w", err)
	}
	if !ok || len(resp.Files) == 0 {
		return dialog.Result{}, false, nil
	}

	files := resp.Files
	if !cfg.MultiSelection {
		files = files[:1]
	}
	res := dialog.NewResult(dialog.FallbackDialog, slices.Clone(files), resp.Directory)
	res.FilterIndex = cfg.FilterIndex
	return res, true, nil
}
