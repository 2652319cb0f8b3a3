package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/leonwijng/filechooser"
	"github.com/leonwijng/filechooser/internal/config"
	"github.com/leonwijng/filechooser/internal/dialog"
	"github.com/leonwijng/filechooser/internal/logger"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	// options added to every chooser, tests use them to inject fakes
	chooserOpts []filechooser.Option
	copy        func(string) error

	exitCode int

	configPath string
	verbose    bool
	dialog     dialogFlags
}

type dialogFlags struct {
	profile     string
	mode        string
	multi       bool
	filters     []string
	title       string
	dir         string
	defaultFile string
	openText    string
	saveText    string
	filterIndex int
	addToRecent bool
	maxFiles    int
	owner       uint64
	copy        bool
	json        bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		copy:   clipboard.WriteAll,
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filechooser",
		Short: "Show a file or folder dialog and print the selection",
		Long: `filechooser shows the native Windows file dialog or folder browser and
falls back to a portable chooser on other platforms or when files and
directories are selected together. Selected paths are printed to stdout,
one per line.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "profiles file (default is the user config directory)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log dialog decisions to stderr")

	cmd.AddCommand(
		a.dialogCmd(dialog.Open),
		a.dialogCmd(dialog.Save),
		a.profilesCmd(),
	)
	return cmd
}

func (a *app) dialogCmd(action dialog.Action) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action.String(),
		Short: fmt.Sprintf("Show a %s dialog", action),
		Example: `filechooser open --filter "Pictures=jpg,png" --filter "All Files=*" --multi
filechooser open --mode dirs --title "Backup destination"
filechooser save --default report.csv --profile export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDialog(cmd, action)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&a.dialog.profile, "profile", "p", "", "start from a profile of the config file")
	f.StringVarP(&a.dialog.mode, "mode", "m", "files", "selection mode: files, dirs or both")
	f.BoolVar(&a.dialog.multi, "multi", false, "allow selecting several entries")
	f.StringArrayVarP(&a.dialog.filters, "filter", "f", nil, `filter as "Label=ext1,ext2", repeatable, "*" matches all files`)
	f.StringVarP(&a.dialog.title, "title", "t", "", "dialog title")
	f.StringVarP(&a.dialog.dir, "dir", "d", "", "start directory")
	f.StringVar(&a.dialog.defaultFile, "default", "", "preselected file name")
	f.StringVar(&a.dialog.openText, "open-text", "", "approve button text of open dialogs")
	f.StringVar(&a.dialog.saveText, "save-text", "", "approve button text of save dialogs")
	f.IntVar(&a.dialog.filterIndex, "filter-index", 1, "initially selected filter, counting from 1")
	f.BoolVar(&a.dialog.addToRecent, "add-to-recent", false, "add the selection to the recent documents")
	f.IntVar(&a.dialog.maxFiles, "max-files", filechooser.DefaultMaxFiles, "number of files the native multi-selection buffer is sized for")
	f.Uint64Var(&a.dialog.owner, "owner", 0, "native handle of the owner window")
	f.BoolVarP(&a.dialog.copy, "copy", "c", false, "copy the selection to the clipboard")
	f.BoolVar(&a.dialog.json, "json", false, "print the result as JSON")
	return cmd
}

func (a *app) profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the profiles of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			for _, name := range cfg.Names() {
				p := cfg.Profiles[name]
				fmt.Fprintf(a.stdout, "%s\t%s\t%s\n", name, modeName(p.Mode), p.Title)
			}
			return nil
		},
	}
}

func modeName(s string) string {
	m, err := dialog.ParseMode(s)
	if err != nil {
		return s
	}
	return m.String()
}

func (a *app) loadConfig() (*config.Config, string, error) {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, "", err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func (a *app) setupLogging(cfg *config.Config) {
	level := slog.LevelWarn
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	logger.SetLevel(level)
}

func (a *app) runDialog(cmd *cobra.Command, action dialog.Action) error {
	cfg, path, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.setupLogging(cfg)
	logger.Debug("loaded config", "path", path, "profiles", len(cfg.Profiles))

	fc, err := a.buildChooser(cmd, cfg)
	if err != nil {
		return err
	}

	owner := filechooser.Owner(a.dialog.owner)
	var ok bool
	if action == dialog.Save {
		ok, err = fc.ShowSaveDialog(owner)
	} else {
		ok, err = fc.ShowOpenDialog(owner)
	}
	if err != nil {
		return err
	}
	if !ok {
		a.status(color.FgYellow, "✗ Cancelled")
		a.exitCode = 1
		return nil
	}

	res := fc.Result()
	if err := a.print(res); err != nil {
		return err
	}
	if a.dialog.copy {
		if err := a.copy(strings.Join(res.Files, "\n")); err != nil {
			return fmt.Errorf("failed to copy selection: %w", err)
		}
		a.status(color.FgGreen, "✓ Copied %d path(s) to clipboard", len(res.Files))
	}
	return nil
}

// buildChooser applies the profile first and explicitly set flags on top.
func (a *app) buildChooser(cmd *cobra.Command, cfg *config.Config) (*filechooser.Chooser, error) {
	var p config.Profile
	if a.dialog.profile != "" {
		var err error
		if p, err = cfg.Profile(a.dialog.profile); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("mode") || p.Mode == "" {
		p.Mode = a.dialog.mode
	}
	if changed("multi") {
		p.Multi = a.dialog.multi
	}
	if changed("title") {
		p.Title = a.dialog.title
	}
	if changed("dir") {
		p.Directory = a.dialog.dir
	}
	if changed("default") {
		p.DefaultFile = a.dialog.defaultFile
	}
	if changed("open-text") {
		p.OpenButton = a.dialog.openText
	}
	if changed("save-text") {
		p.SaveButton = a.dialog.saveText
	}
	if changed("filter-index") || p.FilterIndex == 0 {
		p.FilterIndex = a.dialog.filterIndex
	}
	if changed("add-to-recent") {
		p.AddToRecent = a.dialog.addToRecent
	}
	if changed("max-files") || p.MaxFiles == 0 {
		p.MaxFiles = a.dialog.maxFiles
	}
	if changed("filter") {
		p.Filters = nil
		for _, s := range a.dialog.filters {
			f, err := parseFilter(s)
			if err != nil {
				return nil, err
			}
			p.Filters = append(p.Filters, f)
		}
	}

	mode, err := dialog.ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}

	opts := append([]filechooser.Option{filechooser.WithCurrentDirectory(p.Directory)}, a.chooserOpts...)
	fc := filechooser.New(opts...)
	fc.SetMode(mode)
	fc.SetMultiSelectionEnabled(p.Multi)
	fc.SetTitle(p.Title)
	fc.SetDefaultFileName(p.DefaultFile)
	fc.SetOpenButtonText(p.OpenButton)
	fc.SetSaveButtonText(p.SaveButton)
	fc.SetFilterIndex(p.FilterIndex)
	fc.SetAddToRecent(p.AddToRecent)
	fc.SetMaxFiles(p.MaxFiles)
	for _, f := range p.Filters {
		if err := fc.AddFilter(f.Label, f.Extensions...); err != nil {
			return nil, err
		}
	}
	return fc, nil
}

// parseFilter reads "Label=ext1,ext2". Leading "*." or "." of extensions
// are dropped.
func parseFilter(s string) (dialog.Filter, error) {
	label, list, ok := strings.Cut(s, "=")
	label = strings.TrimSpace(label)
	if !ok || label == "" {
		return dialog.Filter{}, fmt.Errorf("invalid filter %q, want \"Label=ext1,ext2\"", s)
	}

	var exts []string
	for _, ext := range strings.Split(list, ",") {
		ext = strings.TrimSpace(ext)
		if ext != dialog.AcceptAllPattern {
			ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
		}
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return dialog.NewFilter(label, exts...)
}

type output struct {
	ID          string   `json:"id"`
	Files       []string `json:"files"`
	Directory   string   `json:"directory"`
	FilterIndex int      `json:"filterIndex,omitempty"`
	Strategy    string   `json:"strategy"`
}

func (a *app) print(res filechooser.Result) error {
	if a.dialog.json {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output{
			ID:          res.ID.String(),
			Files:       res.Files,
			Directory:   res.Directory,
			FilterIndex: res.FilterIndex,
			Strategy:    res.Strategy.String(),
		})
	}
	for _, f := range res.Files {
		if _, err := fmt.Fprintln(a.stdout, f); err != nil {
			return err
		}
	}
	return nil
}

// status writes a line to stderr, colored when stderr is a terminal.
func (a *app) status(attr color.Attribute, format string, args ...any) {
	c := color.New(attr)
	if f, ok := a.stderr.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		c.DisableColor()
	}
	c.Fprintf(a.stderr, format+"\n", args...)
}
