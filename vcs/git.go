package vcs

import (
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// Repo reads files out of a git repository's history without touching the
// working tree.
type Repo struct {
	Dir string // repository root, passed to git as -C
}

// Show returns the content of file at rev, as `git show rev:file` would.
// A revision or path that does not exist reports ok == false with no error;
// the error return is reserved for failures running git itself.
func (r *Repo) Show(rev, file string) ([]byte, bool, error) {
	out, err := exec.Command("git", "-C", r.Dir, "show", rev+":"+file).Output()
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			logrus.Debugf("git show %s:%s: %s", rev, file, strings.TrimSpace(string(exit.Stderr)))
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("git show %s:%s: %w", rev, file, err)
	}
	return out, true, nil
}

// List returns the paths under rev whose base name matches pattern,
// in the order git reports them.
func (r *Repo) List(rev, pattern string) ([]string, error) {
	out, err := exec.Command("git", "-C", r.Dir, "ls-tree", "--name-only", "-r", rev).Output()
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return nil, fmt.Errorf("git ls-tree %s: %s", rev, strings.TrimSpace(string(exit.Stderr)))
		}
		return nil, fmt.Errorf("git ls-tree %s: %w", rev, err)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		ok, err := path.Match(pattern, path.Base(line))
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		if ok {
			files = append(files, line)
		}
	}
	return files, nil
}
