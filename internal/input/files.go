package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/samsaffron/streamdown/internal/clipboard"
)

// Clipboard is the argument that reads the document from the system clipboard.
const Clipboard = "clipboard"

// ErrNoInput is returned when stdin is requested but is an interactive terminal.
var ErrNoInput = errors.New("no input: pass a file or pipe markdown on stdin")

// Document is markdown read from a file, stdin or the clipboard.
type Document struct {
	Name string // file spec, "stdin" or "clipboard"
	Text string
}

// Read loads the document named by arg. An empty arg or "-" reads stdin,
// "clipboard" reads the system clipboard, anything else is a FileSpec.
func Read(arg string, stdin io.Reader) (Document, error) {
	switch {
	case arg == "" || arg == "-":
		text, err := ReadStdin(stdin)
		if err != nil {
			return Document{}, err
		}
		return Document{Name: "stdin", Text: text}, nil

	case strings.EqualFold(arg, Clipboard):
		text, err := clipboard.ReadText()
		if err != nil {
			return Document{}, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return Document{Name: Clipboard, Text: text}, nil
	}

	spec, err := ParseFileSpec(arg)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(expandPath(spec.Path))
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %q: %w", spec.Path, err)
	}
	text := string(data)
	if spec.HasRegion {
		text = ExtractLines(text, spec.StartLine, spec.EndLine)
	}
	return Document{Name: spec.String(), Text: text}, nil
}

// ReadStdin reads all of r. When r is a terminal there is nothing piped in
// and ErrNoInput is returned rather than blocking on the keyboard.
func ReadStdin(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", ErrNoInput
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
