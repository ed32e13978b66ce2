package backport

import "github.com/elee1766/tamzen-font/bdf"

// SourceFunc resolves one donor font. Absence is reported with ok == false,
// never an error; a Registry closure is the usual implementation.
type SourceFunc func(rev, file string) (*bdf.Font, bool)

// Result lists which of a target's required characters ended up present in
// the font and which could not be found in any donor.
type Result struct {
	Resolved   []rune
	Unresolved []rune
}

// Backport fills the target font's missing required glyphs in place.
// Characters are processed in ascending order. For each missing character
// every configured revision is tried in order and, within a revision, every
// candidate filename from the target's plan; the first donor holding the
// glyph wins and its block is transplanted verbatim, metrics included.
// The selector itself performs no I/O and no logging; src hides all of that.
func (c *Config) Backport(font *bdf.Font, file string, src SourceFunc) Result {
	plan := c.Plan(file)

	var res Result
	for _, ch := range plan.Chars {
		if c.backportChar(font, plan.Files, ch, src) {
			res.Resolved = append(res.Resolved, ch)
		} else {
			res.Unresolved = append(res.Unresolved, ch)
		}
	}
	return res
}

func (c *Config) backportChar(font *bdf.Font, files []string, ch rune, src SourceFunc) bool {
	cp := int(ch)
	if _, ok := font.Glyph(cp); ok {
		return true // already present, nothing to transplant
	}

	for _, rev := range c.Revisions {
		for _, file := range files {
			donor, ok := src(rev, file)
			if !ok {
				continue
			}
			if glyph, ok := donor.Glyph(cp); ok {
				font.SetGlyph(cp, glyph)
				return true
			}
		}
	}
	return false
}
