package build

import (
	"os/user"
	"path/filepath"
)

func userFontDir() string {
	if usr, err := user.Current(); err == nil {
		return filepath.Join(usr.HomeDir, "Library", "Fonts")
	}
	return "Fonts"
}
