package build

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/elee1766/tamzen-font/backport"
)

// Previewer captures sample renderings of built fonts: a terminal renderer
// is started with the font selected, given a moment to map its window, and
// a screenshot utility grabs the result.
type Previewer struct {
	Render  []string      // renderer argv; {font} and {sample} expand per element
	Capture []string      // screenshot argv; {out} expands per element
	Sample  string        // text shown in the preview
	Delay   time.Duration // wait between starting the renderer and capturing
	OutDir  string
}

const previewWindow = "tamzen-preview"

// DefaultPreviewer renders through xterm and captures its window with
// ImageMagick's import. The fonts must already be registered with the X
// server, since xterm selects them by XLFD name.
func DefaultPreviewer(outDir string) *Previewer {
	return &Previewer{
		Render: []string{
			"xterm", "-T", previewWindow, "-fn", "{font}", "-geometry", "48x8",
			"-e", "sh", "-c", `printf '%s\n' "{sample}"; sleep 5`,
		},
		Capture: []string{"import", "-window", previewWindow, "{out}"},
		Sample:  "The quick brown fox jumps over the lazy dog ‘quoted’ “quoted” 0123456789",
		Delay:   2 * time.Second,
		OutDir:  outDir,
	}
}

// Preview renders one font, identified by its XLFD name, into the image
// file out.
func (p *Previewer) Preview(xlfd, out string) error {
	expand := func(argv []string) []string {
		expanded := make([]string, len(argv))
		for i, a := range argv {
			a = strings.ReplaceAll(a, "{font}", xlfd)
			a = strings.ReplaceAll(a, "{sample}", p.Sample)
			expanded[i] = strings.ReplaceAll(a, "{out}", out)
		}
		return expanded
	}

	render := expand(p.Render)
	r := exec.Command(render[0], render[1:]...)
	if err := r.Start(); err != nil {
		return fmt.Errorf("failed to start renderer: %w", err)
	}
	defer func() {
		r.Process.Kill()
		r.Wait()
	}()

	time.Sleep(p.Delay) // let the renderer map its window

	capture := expand(p.Capture)
	if msg, err := exec.Command(capture[0], capture[1:]...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %s: %w", strings.Join(capture, " "), strings.TrimSpace(string(msg)), err)
	}
	return nil
}

// Previews captures one image per built artifact. Preview failures are
// reported through fn and skipped; they never fail a build.
func (p *Previewer) Previews(results []FileResult, fn backport.CheckErrFn) []string {
	images := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Out == "" || r.XLFD == "" {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(r.Out), filepath.Ext(r.Out)) + ".png"
		out := filepath.Join(p.OutDir, name)
		if err := p.Preview(r.XLFD, out); err != nil {
			if fn != nil {
				fn(backport.NewWarningMsg("skipping preview of %s: %s", filepath.Base(r.Out), err))
			}
			continue
		}
		images = append(images, out)
		if fn != nil {
			fn(backport.NewInfoMsg(`"%s" ---> "%s"`, filepath.Base(r.Out), out))
		}
	}
	return images
}
