package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("no clipboard utility found")

// tool is one command line clipboard utility.
type tool struct {
	name string
	args []string
}

// readers and writers are tried in order, Wayland before X11.
var (
	readers = map[string][]tool{
		"darwin": {{name: "pbpaste"}},
		"linux": {
			{name: "wl-paste", args: []string{"--no-newline"}},
			{name: "xclip", args: []string{"-selection", "clipboard", "-o"}},
		},
	}
	writers = map[string][]tool{
		"darwin": {{name: "pbcopy"}},
		"linux": {
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
		},
	}
)

// ReadText reads text content from the system clipboard
func ReadText() (string, error) {
	tools, ok := readers[runtime.GOOS]
	if !ok {
		return "", fmt.Errorf("clipboard read not supported on %s", runtime.GOOS)
	}
	for _, t := range installed(tools) {
		var out bytes.Buffer
		cmd := exec.Command(t.name, t.args...)
		cmd.Stdout = &out
		if err := cmd.Run(); err == nil {
			return out.String(), nil
		}
	}
	return "", ErrUnavailable
}

// CopyText copies text to the system clipboard
func CopyText(text string) error {
	tools, ok := writers[runtime.GOOS]
	if !ok {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	available := installed(tools)
	if len(available) == 0 {
		return ErrUnavailable
	}
	cmd := exec.Command(available[0].name, available[0].args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", available[0].name, err)
	}
	return nil
}

func installed(tools []tool) []tool {
	var found []tool
	for _, t := range tools {
		if _, err := exec.LookPath(t.name); err == nil {
			found = append(found, t)
		}
	}
	return found
}
