package build

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/elee1766/tamzen-font/backport"
)

// RegisterFonts makes dir usable by the X server: mkfontdir writes the
// fonts.dir index, then the server's font path is extended and re-read.
// The xset steps need a running display and are best-effort; the index
// file itself is not.
func RegisterFonts(dir string, fn backport.CheckErrFn) error {
	if msg, err := exec.Command("mkfontdir", dir).CombinedOutput(); err != nil {
		return fmt.Errorf("mkfontdir %s: %s: %w", dir, strings.TrimSpace(string(msg)), err)
	}
	if fn != nil {
		fn(backport.NewInfoMsg("indexed fonts in %s", dir))
	}

	if msg, err := exec.Command("xset", "+fp", dir).CombinedOutput(); err != nil {
		// Already on the font path, or no display; either way rehash below
		// is what matters.
		if fn != nil {
			fn(backport.NewWarningMsg("xset +fp %s: %s", dir, strings.TrimSpace(string(msg))))
		}
	}
	if msg, err := exec.Command("xset", "fp", "rehash").CombinedOutput(); err != nil {
		if fn != nil {
			fn(backport.NewWarningMsg("xset fp rehash: %s", strings.TrimSpace(string(msg))))
		}
	}
	return nil
}

// Install copies built artifacts into dir, defaulting to the per-user font
// directory, and registers the result. Returns the directory used.
func Install(results []FileResult, dir string, fn backport.CheckErrFn) (string, error) {
	if dir == "" {
		dir = userFontDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create font dir %s: %w", dir, err)
	}

	installed := 0
	for _, r := range results {
		if r.Err != nil || r.Out == "" {
			continue
		}
		data, err := os.ReadFile(r.Out)
		if err != nil {
			if fn != nil {
				fn(backport.NewWarningMsg("skipping install of %s: %s", r.Out, err))
			}
			continue
		}
		dst := filepath.Join(dir, filepath.Base(r.Out))
		if err := os.WriteFile(dst, data, 0644); err != nil {
			if fn != nil {
				fn(backport.NewWarningMsg("skipping install of %s: %s", r.Out, err))
			}
			continue
		}
		installed++
	}
	if installed == 0 {
		return dir, ErrNoTargets
	}
	return dir, RegisterFonts(dir, fn)
}
