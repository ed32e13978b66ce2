package backport_test

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/elee1766/tamzen-font/backport"
	"github.com/elee1766/tamzen-font/bdf"

	"github.com/stretchr/testify/require"
)

func glyphBlock(name string, cp int, rows ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STARTCHAR %s\n", name)
	fmt.Fprintf(&b, "ENCODING %d\n", cp)
	b.WriteString("SWIDTH 480 0\nDWIDTH 4 0\n")
	fmt.Fprintf(&b, "BBX 4 %d 0 -2\n", len(rows))
	b.WriteString("BITMAP\n")
	for _, r := range rows {
		b.WriteString(r + "\n")
	}
	b.WriteString("ENDCHAR\n")
	return b.String()
}

func parseFont(t *testing.T, glyphs ...string) *bdf.Font {
	t.Helper()
	text := fmt.Sprintf("STARTFONT 2.1\nFONT -misc-Tamsyn-medium-r-normal--14-101-100-100-c-70-iso10646-1\nCHARS %d\n%sENDFONT\n",
		len(glyphs), strings.Join(glyphs, ""))
	font, err := bdf.Parse(text)
	require.NoError(t, err)
	return font
}

// srcMap is an in-memory stand-in for the registry.
type srcMap map[backport.Source]*bdf.Font

func (m srcMap) resolve(rev, file string) (*bdf.Font, bool) {
	font, ok := m[backport.Source{Rev: rev, File: file}]
	return font, ok
}

func quoteConfig(revs ...string) *backport.Config {
	return &backport.Config{
		Revisions: revs,
		Glyphs:    []backport.GlyphRule{{Pattern: regexp.MustCompile(`.`), Chars: "b"}},
	}
}

func TestBackportPrefersEarlierRevision(t *testing.T) {
	oldGlyph := glyphBlock("b", 98, "00", "F0", "F0", "00")
	midGlyph := glyphBlock("b", 98, "00", "0F", "0F", "00")
	sources := srcMap{
		{Rev: "old", File: "Tamsyn5x9r.bdf"}: parseFont(t, oldGlyph),
		{Rev: "mid", File: "Tamsyn5x9r.bdf"}: parseFont(t, midGlyph),
	}

	target := parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0"))
	res := quoteConfig("old", "mid").Backport(target, "Tamsyn5x9r.bdf", sources.resolve)

	require.Equal(t, []rune{'b'}, res.Resolved)
	require.Empty(t, res.Unresolved)

	got, ok := target.Glyph(98)
	require.True(t, ok)
	require.Equal(t, oldGlyph, got)
}

func TestBackportFilenameFallbackBeforeNextRevision(t *testing.T) {
	variantGlyph := glyphBlock("b", 98, "00", "F0", "F0", "00")
	laterGlyph := glyphBlock("b", 98, "00", "0F", "0F", "00")
	sources := srcMap{
		// Under "old" only the renamed file carries the glyph.
		{Rev: "old", File: "Tamsyn7x14r.bdf"}: parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0")),
		{Rev: "old", File: "Tamsyn7x13r.bdf"}: parseFont(t, variantGlyph),
		{Rev: "mid", File: "Tamsyn7x14r.bdf"}: parseFont(t, laterGlyph),
	}

	cfg := quoteConfig("old", "mid")
	cfg.Renames = []backport.RenameRule{{Pattern: regexp.MustCompile(`7x14`), Replace: "7x13"}}

	target := parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0"))
	res := cfg.Backport(target, "Tamsyn7x14r.bdf", sources.resolve)

	require.Equal(t, []rune{'b'}, res.Resolved)

	got, ok := target.Glyph(98)
	require.True(t, ok)
	require.Equal(t, variantGlyph, got, "renamed file in the same revision should win over the next revision")
}

func TestBackportUnresolved(t *testing.T) {
	sources := srcMap{
		{Rev: "old", File: "Tamsyn5x9r.bdf"}: parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0")),
	}

	target := parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0"))
	before := target.Len()
	res := quoteConfig("old").Backport(target, "Tamsyn5x9r.bdf", sources.resolve)

	require.Empty(t, res.Resolved)
	require.Equal(t, []rune{'b'}, res.Unresolved)
	require.Equal(t, before, target.Len(), "an unresolved character must not change the font")
}

func TestBackportSkipsPresentGlyphs(t *testing.T) {
	target := parseFont(t, glyphBlock("b", 98, "00", "80", "C0", "A0"))

	calls := 0
	src := func(rev, file string) (*bdf.Font, bool) {
		calls++
		return nil, false
	}

	res := quoteConfig("old").Backport(target, "Tamsyn5x9r.bdf", src)
	require.Equal(t, []rune{'b'}, res.Resolved)
	require.Zero(t, calls, "present glyphs must not hit the sources")
}

// A glyph that was pruned as blank counts as missing and is refilled from
// the earliest revision that carries a drawn version of it.
func TestBackportRefillsPrunedGlyph(t *testing.T) {
	donorGlyph := glyphBlock("b", 98, "00", "80", "C0", "A0")
	sources := srcMap{
		{Rev: "old", File: "TamsynA.bdf"}: parseFont(t, donorGlyph),
		{Rev: "mid", File: "TamsynA.bdf"}: parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0")),
	}

	target := parseFont(t,
		glyphBlock("A", 65, "00", "40", "A0", "E0"),
		glyphBlock("b", 98, "00", "00", "00", "00"), // pruned at parse time
	)
	_, ok := target.Glyph(98)
	require.False(t, ok)

	res := quoteConfig("old", "mid").Backport(target, "TamsynA.bdf", sources.resolve)

	require.Equal(t, []rune{'b'}, res.Resolved)
	require.Empty(t, res.Unresolved)

	got, ok := target.Glyph(98)
	require.True(t, ok)
	require.Equal(t, donorGlyph, got)
	require.Contains(t, target.Text(), fmt.Sprintf("\nCHARS %d\n", target.Len()))
}

func TestBackportDeterminism(t *testing.T) {
	sources := srcMap{
		{Rev: "old", File: "Tamsyn5x9r.bdf"}: parseFont(t,
			glyphBlock("b", 98, "00", "80", "C0", "A0"),
			glyphBlock("quoteleft", 8216, "00", "40", "40", "00"),
		),
	}
	cfg := quoteConfig("old")
	cfg.Glyphs = []backport.GlyphRule{{Pattern: regexp.MustCompile(`.`), Chars: "‘b’"}}

	run := func() (backport.Result, string) {
		target := parseFont(t, glyphBlock("A", 65, "00", "40", "A0", "E0"))
		res := cfg.Backport(target, "Tamsyn5x9r.bdf", sources.resolve)
		return res, target.Text()
	}

	res1, text1 := run()
	res2, text2 := run()

	require.Equal(t, []rune{'b', '‘'}, res1.Resolved)
	require.Equal(t, []rune{'’'}, res1.Unresolved)
	require.Equal(t, res1, res2)
	require.Equal(t, text1, text2)
}
