package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/elee1766/tamzen-font/backport"
	"github.com/elee1766/tamzen-font/bdf"
)

// Rename is the family substitution pair. It is a literal text substitution,
// applied to both file names and serialized file contents.
type Rename struct {
	From string
	To   string
}

func (r Rename) Apply(s string) string {
	if r.From == "" {
		return s
	}
	return strings.ReplaceAll(s, r.From, r.To)
}

// LoadFunc fetches the raw bytes of one baseline target file.
type LoadFunc func(file string) ([]byte, error)

// Builder turns baseline font files into renamed, glyph-backfilled BDF
// artifacts under OutDir.
type Builder struct {
	Config   *backport.Config
	Registry *backport.Registry
	Rename   Rename
	OutDir   string
	Load     LoadFunc
}

// FileResult records one target's trip through the pipeline. Err is local
// to the file; other targets in a batch are unaffected.
type FileResult struct {
	File     string // baseline file name
	Out      string // written artifact path, empty when Err is set
	XLFD     string // renamed FONT property of the artifact
	Font     *bdf.Font
	Backport backport.Result
	Err      error
}

// BuildFile runs the whole per-target pipeline: decode, parse (which prunes
// blank glyphs), backport missing glyphs, rename the family, re-encode and
// write. Missing donor coverage is reported through fn and never fails the
// build; the partially backported font is still a valid artifact.
func (b *Builder) BuildFile(file string, fn backport.CheckErrFn) FileResult {
	r := FileResult{File: file}

	raw, err := b.Load(file)
	if err != nil {
		r.Err = fmt.Errorf("failed to load %s: %w", file, err)
		return r
	}
	text, err := bdf.Decode(raw)
	if err != nil {
		r.Err = fmt.Errorf("failed to decode %s: %w", file, err)
		return r
	}
	font, err := bdf.Parse(text)
	if err != nil {
		r.Err = fmt.Errorf("failed to parse %s: %w", file, err)
		return r
	}
	r.Font = font

	r.Backport = b.Config.Backport(font, file, func(rev, donor string) (*bdf.Font, bool) {
		return b.Registry.Resolve(rev, donor, fn)
	})
	if len(r.Backport.Unresolved) > 0 && fn != nil {
		fn(backport.NewErrUnresolvedGlyphs(file, r.Backport.Unresolved))
	}

	out := b.Rename.Apply(font.Text())
	data, err := bdf.Encode(out)
	if err != nil {
		r.Err = fmt.Errorf("failed to encode %s: %w", file, err)
		return r
	}
	if xlfd, ok := font.GetProp("FONT"); ok {
		r.XLFD = b.Rename.Apply(xlfd)
	}

	r.Out = filepath.Join(b.OutDir, b.Rename.Apply(filepath.Base(file)))
	if err := os.WriteFile(r.Out, data, 0644); err != nil {
		r.Out = ""
		r.Err = fmt.Errorf("failed to write artifact for %s: %w", file, err)
		return r
	}

	if fn != nil {
		fn(backport.NewInfoMsg(`"%s" ---> "%s"`, file, r.Out))
	}
	return r
}

// Build processes every target file and returns one result per target,
// ordered by file name. Per-file failures are reported through the
// WithCheckErr callback; returning false from it aborts the batch.
func (b *Builder) Build(files []string, opts ...BuildOption) ([]FileResult, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(files) == 0 {
		return nil, ErrNoTargets
	}
	if err := os.MkdirAll(b.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", b.OutDir, err)
	}

	if cfg.concurrent {
		return b.buildConcurrent(files, cfg.fn), nil
	}
	return b.buildSequential(files, cfg.fn)
}

func (b *Builder) buildSequential(files []string, fn backport.CheckErrFn) ([]FileResult, error) {
	results := make([]FileResult, 0, len(files))
	for _, file := range files {
		r := b.BuildFile(file, fn)
		results = append(results, r)
		if r.Err != nil && fn != nil && !fn(backport.NewWarningMsg("skipping %s: %s", file, r.Err)) {
			return results, r.Err
		}
	}
	sortResults(results)
	return results, nil
}

func (b *Builder) buildConcurrent(files []string, fn backport.CheckErrFn) []FileResult {
	out := make(chan FileResult, len(files))

	var wg sync.WaitGroup
	wg.Add(len(files))
	for _, file := range files {
		go func() {
			defer wg.Done()
			r := b.BuildFile(file, fn)
			if r.Err != nil && fn != nil {
				fn(backport.NewWarningMsg("skipping %s: %s", file, r.Err))
			}
			out <- r
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]FileResult, 0, len(files))
	for r := range out {
		results = append(results, r)
	}
	sortResults(results)
	return results
}

// Batch output order must not depend on worker scheduling.
func sortResults(results []FileResult) {
	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
}
