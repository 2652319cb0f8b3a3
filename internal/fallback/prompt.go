package fallback

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leonwijng/filechooser/internal/dialog"
)

// Prompt is a Toolkit for hosts without a GUI toolkit: it asks for paths on
// a terminal. An empty answer cancels. With multi-selection, paths are read
// one per line until an empty line. A path that does not exist or does not
// match the mode is reported and asked for again.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt returns a Prompt reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// StdPrompt prompts on stdin, writing to stderr so stdout stays clean.
func StdPrompt() *Prompt {
	return NewPrompt(os.Stdin, os.Stderr)
}

func (p *Prompt) Choose(req Request) (Response, bool, error) {
	p.header(req)

	var files []string
	for {
		fmt.Fprint(p.out, "Enter path: ")
		line, readErr := p.in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return Response{}, false, readErr
		}
		eof := readErr == io.EOF

		path := strings.TrimSpace(line)
		if path == "" && len(files) == 0 && req.Action == dialog.Save && req.SelectedFile != "" {
			path = req.SelectedFile
		}
		if path == "" {
			break
		}

		path, err := p.resolve(req, path)
		if err != nil {
			// a typo asks again instead of ending the dialog
			fmt.Fprintln(p.out, err)
			if eof {
				break
			}
			continue
		}
		files = append(files, path)

		if !req.MultiSelection || eof {
			break
		}
	}

	if len(files) == 0 {
		return Response{}, false, nil
	}
	return Response{Files: files}, true, nil
}

func (p *Prompt) header(req Request) {
	title := req.Title
	if title == "" {
		title = "Select " + kind(req.Mode)
	}
	fmt.Fprintln(p.out, title)
	if req.StartDir != "" {
		fmt.Fprintf(p.out, "Relative paths start at %s\n", req.StartDir)
	}
	for i, f := range req.Filters {
		fmt.Fprintf(p.out, "  %d. %s (%s)\n", i+1, f.Label, strings.Join(f.Patterns(), ";"))
	}
	if req.SelectedFile != "" {
		fmt.Fprintf(p.out, "Press enter for %s\n", req.SelectedFile)
	}
	if req.MultiSelection {
		fmt.Fprintln(p.out, "One path per line, empty line to finish")
	}
}

// resolve makes path absolute and, when opening, checks that it exists and
// matches the selection mode.
func (p *Prompt) resolve(req Request, path string) (string, error) {
	if !filepath.IsAbs(path) && req.StartDir != "" {
		path = filepath.Join(req.StartDir, path)
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if req.Action == dialog.Save {
		return path, nil
	}

	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return "", err
	}
	switch {
	case req.Mode == dialog.Files && fi.IsDir():
		return "", fmt.Errorf("%s is a directory", path)
	case req.Mode == dialog.Directories && !fi.IsDir():
		return "", fmt.Errorf("%s is not a directory", path)
	}
	return path, nil
}

func kind(m dialog.Mode) string {
	switch m {
	case dialog.Directories:
		return "a directory"
	case dialog.FilesAndDirectories:
		return "a file or directory"
	}
	return "a file"
}
