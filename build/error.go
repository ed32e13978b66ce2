package build

import "errors"

var (
	ErrNoTargets      = errors.New("no target font files found")
	ErrNoPatchCommand = errors.New("no patch command configured")
)
