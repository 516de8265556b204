// Package requirements verifies values and explains failed comparisons with
// line-aligned, optionally colored diffs.
package requirements

import (
	"github.com/kenshaw/requirements/chardiff"
	"github.com/kenshaw/requirements/config"
	"github.com/kenshaw/requirements/message"
	"github.com/kenshaw/requirements/terminal"
)

// Options controls ComputeDiff.
type Options struct {
	AllowDiff   bool
	AllowLegend bool
	Encoding    terminal.Encoding
}

// ComputeDiff returns the sections that explain how actual differs from
// expected.
func ComputeDiff(actual, expected any, actualName, expectedName string, opts Options) ([]message.Section, error) {
	cfg := message.NewDefaultConfig()
	cfg.Encoding = opts.Encoding
	return computeDiff(cfg, actual, expected, actualName, expectedName, opts.AllowDiff, opts.AllowLegend)
}

func computeDiff(cfg *message.Config, actual, expected any, actualName, expectedName string, allowDiff, allowLegend bool) ([]message.Section, error) {
	g, err := message.NewContextGenerator(cfg, actualName, expectedName)
	if err != nil {
		return nil, err
	}
	return g.ActualValue(actual).
		ExpectedValue(expected).
		AllowDiff(allowDiff).
		AllowLegend(allowLegend).
		Build()
}

// Option is a Validators option.
type Option func(*Validators)

// WithEncoding sets the terminal encoding of rendered diffs.
func WithEncoding(enc terminal.Encoding) Option {
	return func(v *Validators) {
		v.cfg.Encoding = enc
	}
}

// WithEngine sets the character diff engine.
func WithEngine(engine *chardiff.Config) Option {
	return func(v *Validators) {
		v.cfg.Engine = engine
	}
}

// WithStringMapper sets the function that converts values to text.
func WithStringMapper(f func(any) string) Option {
	return func(v *Validators) {
		v.cfg.StringMapper = f
	}
}

// WithEqual sets the function that compares values.
func WithEqual(f func(a, b any) bool) Option {
	return func(v *Validators) {
		v.cfg.Equal = f
	}
}

// WithMaxLength disables diffs of values whose text is longer than n bytes.
func WithMaxLength(n int) Option {
	return func(v *Validators) {
		v.cfg.MaxLength = n
	}
}

// WithDiff sets whether failures may include a diff.
func WithDiff(allow bool) Option {
	return func(v *Validators) {
		v.allowDiff = allow
	}
}

// WithLegend sets whether diffs are followed by a legend.
func WithLegend(allow bool) Option {
	return func(v *Validators) {
		v.allowLegend = allow
	}
}

// WithConfig applies options loaded from a file.
func WithConfig(c *config.Config) Option {
	return func(v *Validators) {
		v.cfg.Encoding = c.Encoding
		v.cfg.MaxLength = c.MaxLength
		if c.Engine != nil {
			v.cfg.Engine = c.Engine
		}
		v.allowDiff = c.AllowDiff
		v.allowLegend = c.AllowLegend
	}
}
