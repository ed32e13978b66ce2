package bdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Format markers. A marker only counts when it starts a line.
const (
	glyphMarker   = "STARTCHAR"
	endFontMarker = "ENDFONT"
	encodingField = "ENCODING"
	bitmapField   = "BITMAP"
	endCharField  = "ENDCHAR"
	bbxField      = "BBX"
	countProp     = "CHARS"
)

// Codepoints that stay meaningful with a blank bitmap: space and no-break
// space. They are never pruned and never replaced.
var protectedCodepoints = map[int]struct{}{
	32:  {},
	160: {},
}

// Parse reads a BDF font description into a Font. The text is split into a
// header (everything before the first STARTCHAR), one raw block per glyph,
// and the trailer starting at ENDFONT. Blank placeholder glyphs are pruned
// before the font is returned, so a present glyph is always a drawable one.
func Parse(text string) (*Font, error) {
	end := markerIndex(text, endFontMarker)
	if end < 0 {
		return nil, ErrNoEndFont
	}
	head := text[:end]

	font := NewFont()
	font.Trailer = text[end:]

	if first := markerIndex(head, glyphMarker); first >= 0 {
		for _, block := range splitGlyphs(head[first:]) {
			cp, err := glyphCodepoint(block)
			if err != nil {
				return nil, err
			}
			font.SetGlyph(cp, block)
		}
		head = head[:first]
	}
	font.Props = parseProps(head)

	if pruned := font.prune(); pruned > 0 {
		logrus.Debugf("pruned %d blank glyphs", pruned)
	}
	return font, nil
}

// markerIndex returns the byte offset of the first line starting with marker.
func markerIndex(s, marker string) int {
	if strings.HasPrefix(s, marker) {
		return 0
	}
	i := strings.Index(s, "\n"+marker)
	if i < 0 {
		return -1
	}
	return i + 1
}

// splitGlyphs cuts a run of glyph blocks at each line-initial STARTCHAR.
// Every block keeps its own trailing newline, so concatenating the blocks
// reproduces the input.
func splitGlyphs(body string) []string {
	var blocks []string
	for {
		next := strings.Index(body, "\n"+glyphMarker)
		if next < 0 {
			return append(blocks, body)
		}
		blocks = append(blocks, body[:next+1])
		body = body[next+1:]
	}
}

// parseProps reads the header as one property per line: the first whitespace
// run separates the key from the raw value. Blank lines are skipped.
func parseProps(head string) []Property {
	var props []Property
	for _, line := range strings.Split(head, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sep := strings.IndexAny(line, " \t")
		if sep < 0 {
			props = append(props, Property{Key: line})
			continue
		}
		props = append(props, Property{
			Key:   line[:sep],
			Value: strings.TrimLeft(line[sep:], " \t"),
		})
	}
	return props
}

// glyphCodepoint extracts the ENCODING value, which names the codepoint the
// glyph is mapped at.
func glyphCodepoint(block string) (int, error) {
	for _, line := range strings.Split(block, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != encodingField {
			continue
		}
		cp, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadEncoding, strings.TrimSpace(line))
		}
		return cp, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrNoEncoding, glyphName(block))
}

// glyphName returns the STARTCHAR name of a block, for diagnostics.
func glyphName(block string) string {
	line, _, _ := strings.Cut(block, "\n")
	if fields := strings.Fields(line); len(fields) >= 2 {
		return fields[1]
	}
	return "?"
}

// prune drops every glyph whose bitmap is entirely blank, except the
// protected whitespace codepoints. A blank glyph in the baseline release
// counts as absent, which is what makes it eligible for backporting.
func (f *Font) prune() int {
	var drop []int
	for _, cp := range f.order {
		if _, ok := protectedCodepoints[cp]; ok {
			continue
		}
		if emptyBitmap(f.glyphs[cp]) {
			drop = append(drop, cp)
		}
	}
	for _, cp := range drop {
		f.DeleteGlyph(cp)
	}
	return len(drop)
}

// emptyBitmap reports whether every bitmap row of a glyph block is
// zero-valued hex. The row count comes from the glyph's own BBX height, not
// from the font bounding box.
func emptyBitmap(block string) bool {
	height := -1
	rows := 0
	inBitmap := false
	for _, line := range strings.Split(block, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch {
		case fields[0] == bbxField:
			if len(fields) >= 3 {
				if h, err := strconv.Atoi(fields[2]); err == nil {
					height = h
				}
			}
		case fields[0] == bitmapField:
			inBitmap = true
			rows = 0
		case fields[0] == endCharField:
			inBitmap = false
		case inBitmap:
			if height >= 0 && rows >= height {
				inBitmap = false
				continue
			}
			rows++
			if strings.Trim(fields[0], "0") != "" {
				return false
			}
		}
	}
	return true
}
