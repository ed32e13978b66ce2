package build

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/elee1766/tamzen-font/backport"
	"github.com/elee1766/tamzen-font/bdf"
)

// Patcher derives a companion font variant by piping serialized font text
// through an external glyph-patching tool, stdin to stdout, then applying a
// second family rename to the patched result.
type Patcher struct {
	Command []string // argv of the patching tool
	Rename  Rename   // applied to the patched text and the artifact name
}

// DefaultPatcher targets the Powerline symbol patcher in its usual
// pipe-through invocation.
func DefaultPatcher() *Patcher {
	return &Patcher{
		Command: []string{"fontpatcher"},
		Rename:  Rename{From: "Tamzen", To: "TamzenForPowerline"},
	}
}

// Patch runs the tool over one serialized font and returns its output.
func (p *Patcher) Patch(text string) (string, error) {
	if len(p.Command) == 0 {
		return "", ErrNoPatchCommand
	}

	cmd := exec.Command(p.Command[0], p.Command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s: %w", strings.Join(p.Command, " "), strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// Variants derives the patched companion of every successfully built
// artifact. A failed variant is reported through fn and skipped; the plain
// fonts are already on disk and stay valid either way.
func (b *Builder) Variants(results []FileResult, p *Patcher, fn backport.CheckErrFn) []FileResult {
	variants := make([]FileResult, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Out == "" {
			continue
		}
		v := b.variantFile(r, p)
		if v.Err != nil && fn != nil {
			fn(backport.NewWarningMsg("skipping variant of %s: %s", v.File, v.Err))
		} else if fn != nil {
			fn(backport.NewInfoMsg(`"%s" ---> "%s"`, v.File, v.Out))
		}
		variants = append(variants, v)
	}
	return variants
}

func (b *Builder) variantFile(r FileResult, p *Patcher) FileResult {
	name := filepath.Base(r.Out)
	v := FileResult{File: name}

	raw, err := os.ReadFile(r.Out)
	if err != nil {
		v.Err = err
		return v
	}
	text, err := bdf.Decode(raw)
	if err != nil {
		v.Err = err
		return v
	}

	patched, err := p.Patch(text)
	if err != nil {
		v.Err = err
		return v
	}

	// Reparse so the glyphs the patcher added are counted and pruned by the
	// same rules as everything else.
	font, err := bdf.Parse(patched)
	if err != nil {
		v.Err = fmt.Errorf("patched output is not a valid font: %w", err)
		return v
	}
	v.Font = font

	data, err := bdf.Encode(p.Rename.Apply(font.Text()))
	if err != nil {
		v.Err = err
		return v
	}
	if xlfd, ok := font.GetProp("FONT"); ok {
		v.XLFD = p.Rename.Apply(xlfd)
	}

	v.Out = filepath.Join(b.OutDir, p.Rename.Apply(name))
	if err := os.WriteFile(v.Out, data, 0644); err != nil {
		v.Out = ""
		v.Err = err
		return v
	}
	return v
}
