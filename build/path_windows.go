package build

import (
	"os"
	"path/filepath"
)

func userFontDir() string {
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		return filepath.Join(local, "Microsoft", "Windows", "Fonts")
	}
	return "Fonts"
}
