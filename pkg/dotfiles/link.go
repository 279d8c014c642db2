package dotfiles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Status is what Link did.
type Status int

const (
	// Linked means a new symlink was created.
	Linked Status = iota
	// AlreadyLinked means dst already pointed at src.
	AlreadyLinked
	// ReplacedDangling means a broken symlink at dst was replaced.
	ReplacedDangling
	// Equivalent means dst is a file whose content matches src up to
	// whitespace; it was left alone.
	Equivalent
	// Conflict means dst exists with different content; it was left alone.
	Conflict
)

func (s Status) String() string {
	switch s {
	case Linked:
		return "linked"
	case AlreadyLinked:
		return "already linked"
	case ReplacedDangling:
		return "replaced dangling symlink"
	case Equivalent:
		return "equivalent"
	case Conflict:
		return "conflict"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes the outcome of Link.
type Result struct {
	Status Status
	// Target is the relative path stored in a newly created symlink.
	Target string
	// Diff is a unified diff from dst to src, set for Conflict.
	Diff string
}

// Link makes dst a relative symlink to src, creating dst's directory.
// Relative paths are taken from the current working directory.
func Link(src, dst string) (Result, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return Result{}, err
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Result{}, err
	}

	var res Result
	fi, err := os.Lstat(dst)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Status = Linked
	case err != nil:
		return Result{}, err
	case fi.Mode()&fs.ModeSymlink != 0:
		if same, err := pointsTo(dst, src); err != nil {
			return Result{}, err
		} else if same {
			return Result{Status: AlreadyLinked}, nil
		}
		if _, err := os.Stat(dst); err == nil {
			// Symlink to some other existing file: treat like a regular file.
			return compare(src, dst)
		}
		if err := os.Remove(dst); err != nil {
			return Result{}, err
		}
		res.Status = ReplacedDangling
	default:
		return compare(src, dst)
	}

	rel, err := filepath.Rel(filepath.Dir(dst), src)
	if err != nil {
		return Result{}, err
	}
	if err := os.Symlink(rel, dst); err != nil {
		return Result{}, err
	}
	res.Target = rel
	return res, nil
}

func pointsTo(link, want string) (bool, error) {
	got, err := filepath.EvalSymlinks(link)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	want, err = filepath.EvalSymlinks(want)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

func compare(src, dst string) (Result, error) {
	diff, err := Diff(src, dst)
	if err != nil {
		return Result{}, err
	}
	if diff == "" {
		return Result{Status: Equivalent}, nil
	}
	return Result{Status: Conflict, Diff: diff}, nil
}

// Diff compares two files line by line, ignoring leading and trailing
// whitespace on each line. It returns "" when they are equivalent and
// otherwise a unified diff that turns dst into src.
func Diff(src, dst string) (string, error) {
	srcData, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	dstData, err := os.ReadFile(dst)
	if err != nil {
		return "", err
	}

	srcLines := splitLines(string(srcData))
	dstLines := splitLines(string(dstData))
	if equalTrimmed(srcLines, dstLines) {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(dstData)),
		B:        difflib.SplitLines(string(srcData)),
		FromFile: dst,
		ToFile:   src,
		Context:  3,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(diff, "\n"), nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func equalTrimmed(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if strings.TrimSpace(a[i]) != strings.TrimSpace(b[i]) {
			return false
		}
	}
	return true
}
