package build

import (
	"os"
	"path/filepath"
)

func userFontDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "fonts")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "share", "fonts")
	}
	return ".fonts"
}
