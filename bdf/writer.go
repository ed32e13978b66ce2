package bdf

import (
	"strconv"
	"strings"
)

// Text serializes the font back into BDF text. The CHARS property is
// rewritten to the live glyph count; every other byte comes straight from
// the parsed properties, glyph blocks and trailer, which is what keeps the
// output loadable by the same consumers as the input.
func (f *Font) Text() string {
	f.SetProp(countProp, strconv.Itoa(f.Len()))

	var b strings.Builder
	for _, p := range f.Props {
		b.WriteString(p.Key)
		if p.Value != "" {
			b.WriteByte(' ')
			b.WriteString(p.Value)
		}
		b.WriteByte('\n')
	}
	for _, cp := range f.order {
		b.WriteString(f.glyphs[cp])
	}
	b.WriteString(f.Trailer)
	return b.String()
}
