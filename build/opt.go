package build

import "github.com/elee1766/tamzen-font/backport"

type BuildOption func(*buildConfig)

type buildConfig struct {
	concurrent bool
	fn         backport.CheckErrFn
}

func WithConcurrent() BuildOption {
	return func(c *buildConfig) {
		c.concurrent = true
	}
}

func WithCheckErr(fn backport.CheckErrFn) BuildOption {
	return func(c *buildConfig) {
		c.fn = fn
	}
}
