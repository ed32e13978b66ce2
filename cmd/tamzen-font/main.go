package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/elee1766/tamzen-font/backport"
	"github.com/elee1766/tamzen-font/build"
	"github.com/elee1766/tamzen-font/vcs"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGreen  = "\033[32m"
)

var (
	repoDir    = flag.String("repo", ".", "Path to the Tamsyn git repository")
	baseline   = flag.String("baseline", "v1.9", "Revision whose font files are the build targets")
	outDir     = flag.String("out", "fonts", "Directory the built fonts are written to")
	configPath = flag.String("config", "", "Path to a JSON backport config, built-in rules are used if not specified")
	pattern    = flag.String("pattern", "Tamsyn*.bdf", "File name pattern selecting the target fonts")
	concurrent = flag.Bool("concurrent", true, "Build target fonts concurrently")
	powerline  = flag.Bool("powerline", false, "Also derive the TamzenForPowerline variant of every font")
	patchCmd   = flag.String("patcher", "", "Glyph patcher command for the powerline variant, use ' ' to split arguments")
	preview    = flag.Bool("preview", false, "Capture a preview image of every built font, requires a running X server")
	install    = flag.Bool("install", false, "Copy the built fonts into the user font directory and register them")
	fontDir    = flag.String("fontdir", "", "Font directory to install into instead of the user default")
	index      = flag.Bool("index", false, "Run the font indexer over the output directory")
	strict     = flag.Bool("strict", false, "Exit non-zero when any font fails or any glyph stays unresolved")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

var useColor = term.IsTerminal(int(os.Stdout.Fd()))

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + ColorReset
}

func logger(err error) bool {
	switch err.(type) {
	case *backport.InfoMsg:
		fmt.Printf("%s %s\n", paint(ColorBlue, "[INFO]"), err.Error())
	case *backport.WarningMsg, *backport.ErrUnresolvedGlyphs:
		fmt.Printf("%s %s\n", paint(ColorYellow, "[WARNING]"), err.Error())
	default:
		fmt.Printf("%s %s\n", paint(ColorRed, "[ERROR]"), err.Error())
	}
	return true
}

func main() {
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := backport.DefaultConfig()
	if *configPath != "" {
		loaded, err := backport.LoadConfig(*configPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	repo := &vcs.Repo{Dir: *repoDir}
	files, err := repo.List(*baseline, *pattern)
	if err != nil {
		panic(err)
	}

	builder := &build.Builder{
		Config:   cfg,
		Registry: backport.NewRegistry(repo.Show),
		Rename:   build.Rename{From: "Tamsyn", To: "Tamzen"},
		OutDir:   *outDir,
		Load: func(file string) ([]byte, error) {
			raw, ok, err := repo.Show(*baseline, file)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("%s is not in %s", file, *baseline)
			}
			return raw, nil
		},
	}

	opts := []build.BuildOption{build.WithCheckErr(logger)}
	if *concurrent {
		opts = append(opts, build.WithConcurrent())
	}
	results, err := builder.Build(files, opts...)
	if err != nil {
		panic(err)
	}

	if *powerline {
		patcher := build.DefaultPatcher()
		if *patchCmd != "" {
			patcher.Command = strings.Fields(*patchCmd)
		}
		results = append(results, builder.Variants(results, patcher, logger)...)
	}

	if *index {
		if err := build.RegisterFonts(builder.OutDir, logger); err != nil {
			logger(err)
		}
	}
	if *install {
		if _, err := build.Install(results, *fontDir, logger); err != nil {
			logger(err)
		}
	}
	if *preview {
		build.DefaultPreviewer(builder.OutDir).Previews(results, logger)
	}

	built, failed, missing := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		default:
			built++
			if len(r.Backport.Unresolved) > 0 {
				missing++
			}
		}
	}
	fmt.Printf("%s built %d fonts (%d failed, %d with missing glyphs)\n",
		paint(ColorGreen, "[DONE]"), built, failed, missing)

	if *strict && (failed > 0 || missing > 0) {
		os.Exit(1)
	}
}
