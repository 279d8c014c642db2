package dotfiles

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// LocalBinPath is the PATH assignment that puts ~/.local/bin first.
const LocalBinPath = `PATH="$HOME/.local/bin:$PATH"`

// EnsureLine appends "export <assignment>" to the profile at path, preceded
// by a "# comment" line, unless the file already contains assignment. It
// reports whether the file was changed.
func EnsureLine(path, assignment, comment string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if strings.Contains(string(data), assignment) {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	if _, err := f.WriteString("\n# " + comment + "\nexport " + assignment + "\n"); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
