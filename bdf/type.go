package bdf

// Property is one header line of a BDF file.
type Property struct {
	Key   string // header keyword, e.g. "FAMILY_NAME"
	Value string // raw remainder of the line; empty for bare keywords like ENDPROPERTIES
}

// Font is one parsed BDF font file. Glyph blocks are kept as opaque raw text
// and emitted in the order they were first seen, so an unmodified font
// serializes back byte-for-byte.
type Font struct {
	Props   []Property // header lines in file order; duplicate keys (COMMENT) are kept
	Trailer string     // raw tail from the ENDFONT line onward, copied through verbatim

	order  []int          // codepoints in first-seen order
	glyphs map[int]string // codepoint -> raw STARTCHAR..ENDCHAR block
}

func NewFont() *Font {
	return &Font{glyphs: make(map[int]string)}
}

// Len returns the number of glyphs currently in the font.
func (f *Font) Len() int {
	return len(f.glyphs)
}

// Codepoints returns the glyph codepoints in first-seen order.
func (f *Font) Codepoints() []int {
	cps := make([]int, len(f.order))
	copy(cps, f.order)
	return cps
}

// Glyph returns the raw text block of the glyph mapped at cp.
func (f *Font) Glyph(cp int) (string, bool) {
	raw, ok := f.glyphs[cp]
	return raw, ok
}

// SetGlyph stores a raw glyph block under cp. An existing codepoint keeps its
// position in the emit order; a new one is appended at the end.
func (f *Font) SetGlyph(cp int, raw string) {
	if f.glyphs == nil {
		f.glyphs = make(map[int]string)
	}
	if _, ok := f.glyphs[cp]; !ok {
		f.order = append(f.order, cp)
	}
	f.glyphs[cp] = raw
}

// DeleteGlyph removes the glyph mapped at cp, if present.
func (f *Font) DeleteGlyph(cp int) {
	if _, ok := f.glyphs[cp]; !ok {
		return
	}
	delete(f.glyphs, cp)
	for i, c := range f.order {
		if c == cp {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// GetProp returns the value of the first header property named key.
func (f *Font) GetProp(key string) (string, bool) {
	for i := range f.Props {
		if f.Props[i].Key == key {
			return f.Props[i].Value, true
		}
	}
	return "", false
}

// SetProp overwrites the first header property named key, keeping its
// position, or appends a new one when the key is absent.
func (f *Font) SetProp(key, value string) {
	for i := range f.Props {
		if f.Props[i].Key == key {
			f.Props[i].Value = value
			return
		}
	}
	f.Props = append(f.Props, Property{Key: key, Value: value})
}
