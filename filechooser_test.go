package filechooser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonwijng/filechooser/internal/logger"
	"github.com/leonwijng/filechooser/internal/win32"
	"github.com/leonwijng/filechooser/internal/win32/win32test"
)

type fakeToolkit struct {
	resp  ToolkitResponse
	ok    bool
	err   error
	calls []ToolkitRequest
}

func (f *fakeToolkit) Choose(req ToolkitRequest) (ToolkitResponse, bool, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.ok, f.err
}

func newChooser(api *win32test.Fake, tk *fakeToolkit, opts ...Option) *Chooser {
	opts = append([]Option{WithNative(api), WithToolkit(tk), WithLogger(logger.Discard())}, opts...)
	return New(opts...)
}

func TestNew_Defaults(t *testing.T) {
	fc := newChooser(&win32test.Fake{}, &fakeToolkit{})

	assert.Equal(t, Files, fc.Mode())
	assert.False(t, fc.MultiSelectionEnabled())
	assert.Equal(t, 1, fc.FilterIndex())
	assert.Empty(t, fc.Filters())
	assert.Empty(t, fc.SelectedFile())
	assert.Empty(t, fc.SelectedFiles())
	assert.Equal(t, uuid.Nil, fc.Result().ID)
	assert.Equal(t, Capabilities{Native: true, NativeMultiSelect: true}, fc.Capabilities())
}

func TestWithCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"directory", dir, dir},
		{"file", file, dir},
		{"missing", filepath.Join(dir, "missing", "x.txt"), filepath.Join(dir, "missing")},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newChooser(&win32test.Fake{}, &fakeToolkit{}, WithCurrentDirectory(tt.path))
			assert.Equal(t, tt.want, fc.CurrentDirectory())
		})
	}
}

func TestAddFilter_RejectsInvalid(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\a.txt` + "\x00"}
	fc := newChooser(api, &fakeToolkit{})

	require.NoError(t, fc.AddFilter("Text", "txt"))
	assert.ErrorIs(t, fc.AddFilter("Nothing"), ErrNoExtensions)
	assert.ErrorIs(t, fc.AddFilter("Blank", "txt", ""), ErrNoExtensions)
	assert.ErrorIs(t, fc.AddFilter("Split", "a;b"), ErrInvalidFilter)
	assert.ErrorIs(t, fc.AddFilter("Nul", "a\x00b"), ErrInvalidFilter)
	assert.ErrorIs(t, fc.AddFilter("Nul\x00label", "txt"), ErrInvalidFilter)
	assert.Len(t, fc.Filters(), 1)

	_, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	assert.Equal(t, []Filter{{Label: "Text", Extensions: []string{"txt"}}}, api.Filters)
}

func TestFilters_ReturnsCopy(t *testing.T) {
	fc := newChooser(&win32test.Fake{}, &fakeToolkit{})
	require.NoError(t, fc.AddFilter("Text", "txt"))

	fs := fc.Filters()
	fs[0].Extensions[0] = "exe"
	assert.Equal(t, "txt", fc.Filters()[0].Extensions[0])
}

func TestShowOpenDialog_NativeFile(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\dir\file.txt` + "\x00"}
	tk := &fakeToolkit{}
	fc := newChooser(api, tk)
	fc.SetTitle("Open it")

	ok, err := fc.ShowOpenDialog(99)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, `C:\dir\file.txt`, fc.SelectedFile())
	assert.Equal(t, []string{`C:\dir\file.txt`}, fc.SelectedFiles())
	assert.Equal(t, `C:\dir`, fc.CurrentDirectory())
	assert.Equal(t, NativeFileDialog, fc.Result().Strategy)
	assert.NotEqual(t, uuid.Nil, fc.Result().ID)
	assert.Equal(t, "Open it", api.Title)
	assert.Equal(t, uintptr(99), api.Owner)
	assert.Empty(t, tk.calls)
}

func TestShowOpenDialog_NativeMultiSelect(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: "C:\\dir\x00a.txt\x00b.txt\x00"}
	fc := newChooser(api, &fakeToolkit{})
	fc.SetMultiSelectionEnabled(true)

	ok, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{`C:\dir\a.txt`, `C:\dir\b.txt`}, fc.SelectedFiles())
	assert.Equal(t, `C:\dir\a.txt`, fc.SelectedFile())
	assert.Equal(t, `C:\dir`, fc.CurrentDirectory())
	assert.NotZero(t, api.Flags&win32.OFN_ALLOWMULTISELECT)
}

func TestShowOpenDialog_LegacyMultiSelectUsesFallback(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\never` + "\x00"}
	tk := &fakeToolkit{ok: true, resp: ToolkitResponse{Files: []string{"/a/1", "/a/2"}}}
	fc := newChooser(api, tk, WithNativeMultiSelect(false))
	fc.SetMultiSelectionEnabled(true)

	ok, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Empty(t, api.Calls)
	assert.Equal(t, []string{"/a/1", "/a/2"}, fc.SelectedFiles())
	assert.Equal(t, FallbackDialog, fc.Result().Strategy)
}

func TestShowOpenDialog_Directories(t *testing.T) {
	api := &win32test.Fake{Folder: `C:\Users\me`}
	fc := newChooser(api, &fakeToolkit{})
	fc.SetMode(Directories)
	fc.SetMultiSelectionEnabled(true)
	fc.SetTitle("Folder")

	ok, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{`C:\Users\me`}, fc.SelectedFiles())
	assert.Equal(t, `C:\Users`, fc.CurrentDirectory())
	assert.Equal(t, "Folder", api.BrowseTitle)
	assert.Equal(t, NativeFolderBrowser, fc.Result().Strategy)
}

func TestShowOpenDialog_MixedModeGoesToFallback(t *testing.T) {
	api := &win32test.Fake{}
	tk := &fakeToolkit{ok: true, resp: ToolkitResponse{Files: []string{"/srv/data"}, Directory: "/srv"}}
	fc := newChooser(api, tk)
	fc.SetMode(FilesAndDirectories)
	fc.SetOpenButtonText("Use")
	require.NoError(t, fc.AddFilter("All Files", "*"))
	require.NoError(t, fc.AddFilter("Logs", "log"))

	ok, err := fc.ShowOpenDialog(5)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Empty(t, api.Calls)
	require.Len(t, tk.calls, 1)
	req := tk.calls[0]
	assert.Equal(t, FilesAndDirectories, req.Mode)
	assert.Equal(t, "Use", req.ApproveText)
	assert.Equal(t, Owner(5), req.Owner)
	assert.True(t, req.AcceptAll)
	assert.Equal(t, []Filter{{Label: "Logs", Extensions: []string{"log"}}}, req.Filters)

	assert.Equal(t, "/srv/data", fc.SelectedFile())
	assert.Equal(t, "/srv", fc.CurrentDirectory())
}

func TestShowSaveDialog_NoNativePlatform(t *testing.T) {
	api := &win32test.Fake{Unavailable: true}
	tk := &fakeToolkit{ok: true, resp: ToolkitResponse{Files: []string{"/home/u/report.pdf"}}}
	fc := newChooser(api, tk)
	fc.SetDefaultFileName("report.pdf")
	fc.SetSaveButtonText("Store")

	ok, err := fc.ShowSaveDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Empty(t, api.Calls)
	require.Len(t, tk.calls, 1)
	assert.Equal(t, "report.pdf", tk.calls[0].SelectedFile)
	assert.Equal(t, "Store", tk.calls[0].ApproveText)
	assert.Equal(t, "/home/u", fc.CurrentDirectory())
}

func TestShowDialog_CancelKeepsPreviousResult(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: "C:\\dir\x00a.txt\x00b.txt\x00", ChosenFilter: 2}
	fc := newChooser(api, &fakeToolkit{})
	fc.SetMultiSelectionEnabled(true)
	require.NoError(t, fc.AddFilter("Text", "txt"))
	require.NoError(t, fc.AddFilter("All Files", "*"))

	ok, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)
	first := fc.Result()
	firstDir := fc.CurrentDirectory()
	assert.Equal(t, 2, fc.FilterIndex())

	api.Accept = false
	ok, err = fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, first, fc.Result())
	assert.Equal(t, firstDir, fc.CurrentDirectory())
	assert.Equal(t, 2, fc.FilterIndex())
	// the second dialog starts where the first ended, on the chosen filter
	assert.Equal(t, `C:\dir`, api.InitialDir)
	assert.Equal(t, uint32(2), api.FilterIndex)
}

func TestShowDialog_NativeFailureKeepsPreviousResult(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\keep.txt` + "\x00"}
	fc := newChooser(api, &fakeToolkit{})

	ok, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)
	first := fc.Result()

	api.Accept = false
	api.ErrorCode = win32.FNERR_INVALIDFILENAME
	ok, err = fc.ShowSaveDialog(NoOwner)
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrNativeDialog)

	var nerr *NativeError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, uint32(win32.FNERR_INVALIDFILENAME), nerr.Code)
	assert.Equal(t, first, fc.Result())
}

func TestShowDialog_EachAcceptGetsFreshResult(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\a.txt` + "\x00"}
	fc := newChooser(api, &fakeToolkit{})

	_, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	first := fc.Result()

	api.Selection = `D:\b.txt` + "\x00"
	_, err = fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	second := fc.Result()

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{`D:\b.txt`}, second.Files)
	assert.Equal(t, `D:\`, fc.CurrentDirectory())
}

func TestShowDialog_ToolkitError(t *testing.T) {
	boom := errors.New("display unavailable")
	fc := newChooser(&win32test.Fake{Unavailable: true}, &fakeToolkit{err: boom})

	ok, err := fc.ShowOpenDialog(NoOwner)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, fc.SelectedFiles())
}

func TestSelectedFiles_ReturnsCopy(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\a.txt` + "\x00"}
	fc := newChooser(api, &fakeToolkit{})
	_, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)

	files := fc.SelectedFiles()
	files[0] = "tampered"
	assert.Equal(t, `C:\a.txt`, fc.SelectedFile())
}

func TestSetters_FlowIntoNativeDialog(t *testing.T) {
	api := &win32test.Fake{}
	fc := newChooser(api, &fakeToolkit{})
	fc.SetCurrentDirectory(`E:\projects`)
	fc.SetDefaultFileName("main.go")
	fc.SetAddToRecent(true)
	fc.SetMaxFiles(3)
	fc.SetMultiSelectionEnabled(true)
	fc.SetFilterIndex(2)
	require.NoError(t, fc.AddFilter("Go", "go"))
	require.NoError(t, fc.AddFilter("Mod", "mod", "sum"))

	_, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)

	assert.Equal(t, `E:\projects`, api.InitialDir)
	assert.Equal(t, "main.go", api.DefaultFile)
	assert.Zero(t, api.Flags&win32.OFN_DONTADDTORECENT)
	assert.Equal(t, uint32(3*260), api.MaxFile)
	assert.Equal(t, uint32(2), api.FilterIndex)
}

func TestShowOpenDialog_TooManyFiles(t *testing.T) {
	api := &win32test.Fake{Accept: true, Selection: `C:\a.txt` + "\x00"}
	fc := newChooser(api, &fakeToolkit{})
	fc.SetMultiSelectionEnabled(true)
	fc.SetMaxFiles(MaxFiles + 1)

	ok, err := fc.ShowOpenDialog(NoOwner)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrTooManyFiles)
	assert.Empty(t, api.Calls)
	assert.Empty(t, fc.SelectedFiles())
}

func TestShowOpenDialog_MixedModeSkipsUnsupportedToolkit(t *testing.T) {
	gui := &fakeToolkit{err: fmt.Errorf("%w: files and directories", ErrUnsupportedRequest)}
	term := &fakeToolkit{ok: true, resp: ToolkitResponse{Files: []string{"/srv/data"}}}
	fc := New(
		WithNative(&win32test.Fake{}),
		WithToolkit(ToolkitChain(gui, term)),
		WithLogger(logger.Discard()),
	)
	fc.SetMode(FilesAndDirectories)

	ok, err := fc.ShowOpenDialog(NoOwner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"/srv/data"}, fc.SelectedFiles())
	assert.Equal(t, FallbackDialog, fc.Result().Strategy)
	require.Len(t, term.calls, 1)
	assert.Equal(t, FilesAndDirectories, term.calls[0].Mode)
}

func TestShowOpenDialog_NoToolkitCanServe(t *testing.T) {
	fc := newChooser(&win32test.Fake{Unavailable: true}, &fakeToolkit{err: ErrUnsupportedRequest})
	fc.SetMultiSelectionEnabled(true)

	ok, err := fc.ShowOpenDialog(NoOwner)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnsupportedRequest)
}
