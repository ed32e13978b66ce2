package backport

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoRevisions = errors.New("no donor revisions configured")

// CheckErrFn receives diagnostics from warn-and-continue operations.
// Returning false asks the operation to stop instead of continuing.
type CheckErrFn func(error) bool

type InfoMsg string

func NewInfoMsg(format string, a ...any) *InfoMsg {
	m := InfoMsg(fmt.Sprintf(format, a...))
	return &m
}

func (m InfoMsg) Error() string {
	return string(m)
}

type WarningMsg string

func NewWarningMsg(format string, a ...any) *WarningMsg {
	w := WarningMsg(fmt.Sprintf(format, a...))
	return &w
}

func (w WarningMsg) Error() string {
	return string(w)
}

type ErrUnresolvedGlyphs struct {
	file  string
	chars []rune
}

func NewErrUnresolvedGlyphs(file string, chars []rune) *ErrUnresolvedGlyphs {
	return &ErrUnresolvedGlyphs{
		file:  file,
		chars: chars,
	}
}

func (e *ErrUnresolvedGlyphs) Error() string {
	return fmt.Sprintf(`no donor glyph found for "%s": %s`, e.file, formatChars(e.chars))
}

// Codepoint notation rather than the characters themselves: the terminal's
// font may be missing the very glyphs being reported.
func formatChars(chars []rune) string {
	parts := make([]string, 0, len(chars))
	for _, ch := range chars {
		parts = append(parts, fmt.Sprintf("U+%04X", ch))
	}
	return strings.Join(parts, " ")
}

var _ error = (*InfoMsg)(nil)
var _ error = (*WarningMsg)(nil)
var _ error = (*ErrUnresolvedGlyphs)(nil)
