package bdf

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Decode converts raw BDF file bytes into a string. BDF files are ISO 8859-1
// text per the X11 spec; the byte-to-rune mapping is bijective, so
// Encode(Decode(b)) always reproduces b.
func Decode(raw []byte) (string, error) {
	reader := transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode bdf text: %w", err)
	}
	return string(decoded), nil
}

// Encode converts font text back into ISO 8859-1 bytes. Runes outside the
// charmap are an error rather than silently replaced.
func Encode(text string) ([]byte, error) {
	var buf bytes.Buffer
	writer := transform.NewWriter(&buf, charmap.ISO8859_1.NewEncoder())
	if _, err := writer.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("encode bdf text: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("encode bdf text: %w", err)
	}
	return buf.Bytes(), nil
}
