package backport

import (
	"sync"

	"github.com/elee1766/tamzen-font/bdf"
)

// LookupFunc fetches the raw bytes of file as of revision rev. A revision
// or file that does not exist reports ok == false; the error return is
// reserved for failures of the lookup machinery itself.
type LookupFunc func(rev, file string) ([]byte, bool, error)

// Source identifies one historical donor file.
type Source struct {
	Rev  string
	File string
}

// Registry memoizes parsed donor fonts so each historical file is fetched
// and parsed at most once per run. Misses are remembered too. Fetches are
// serialized under one lock, which is fine at donor-file counts.
type Registry struct {
	lookup LookupFunc
	mu     sync.Mutex
	fonts  map[Source]*bdf.Font
}

func NewRegistry(lookup LookupFunc) *Registry {
	return &Registry{
		lookup: lookup,
		fonts:  make(map[Source]*bdf.Font),
	}
}

// Resolve returns the parsed font for file at rev, fetching on first use.
// A donor that cannot be fetched, decoded, or parsed is reported through fn
// once and counts as absent from then on.
func (r *Registry) Resolve(rev, file string, fn CheckErrFn) (*bdf.Font, bool) {
	key := Source{Rev: rev, File: file}

	r.mu.Lock()
	defer r.mu.Unlock()
	if font, ok := r.fonts[key]; ok {
		return font, font != nil
	}

	font := r.fetch(key, fn)
	r.fonts[key] = font
	return font, font != nil
}

func (r *Registry) fetch(key Source, fn CheckErrFn) *bdf.Font {
	raw, ok, err := r.lookup(key.Rev, key.File)
	if err != nil {
		if fn != nil { // warn and continue, the donor just counts as absent
			fn(NewWarningMsg("failed to look up %s:%s: %s", key.Rev, key.File, err))
		}
		return nil
	}
	if !ok {
		return nil
	}

	text, err := bdf.Decode(raw)
	if err != nil {
		if fn != nil {
			fn(NewWarningMsg("failed to decode donor %s:%s: %s", key.Rev, key.File, err))
		}
		return nil
	}
	font, err := bdf.Parse(text)
	if err != nil {
		if fn != nil {
			fn(NewWarningMsg("failed to parse donor %s:%s: %s", key.Rev, key.File, err))
		}
		return nil
	}
	return font
}
