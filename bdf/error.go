package bdf

import "errors"

var (
	ErrNoEndFont   = errors.New("missing ENDFONT marker")     // no end-of-font line, nothing to serialize against
	ErrNoEncoding  = errors.New("glyph has no ENCODING line") // glyph block without a character code
	ErrBadEncoding = errors.New("malformed ENCODING line")    // character code is not an integer
)
