// Package chardiff computes character-level edit scripts between an actual
// and an expected string.
package chardiff

import (
	"strings"
	"time"
)

// Sentinel is appended to both inputs of a multi-line comparison so that the
// final lines always end on common ground.
const Sentinel = "\x00"

// Cleanup selects the post-processing pass applied to a raw edit script.
type Cleanup int

// Cleanup values.
const (
	CleanupSemantic Cleanup = iota
	CleanupEfficiency
	CleanupNone
)

// String satisfies the fmt.Stringer interface.
func (c Cleanup) String() string {
	switch c {
	case CleanupSemantic:
		return "semantic"
	case CleanupEfficiency:
		return "efficiency"
	case CleanupNone:
		return "none"
	}
	return "unknown"
}

// Config is the configuration for diff operations.
type Config struct {
	// Timeout is the time to spend mapping a diff before giving up (0 for
	// infinity). A diff that hits the timeout is valid but not minimal.
	Timeout time.Duration
	// EditCost is the cost of an empty edit operation in terms of edit
	// characters, used by CleanupEfficiency.
	EditCost int
	// CheckLines enables the line-level speedup for long inputs.
	CheckLines bool
	// Cleanup is the pass applied by Compute.
	Cleanup Cleanup
}

// NewDefaultConfig creates a new configuration with default parameters.
func NewDefaultConfig() *Config {
	return &Config{
		Timeout:    time.Second,
		EditCost:   4,
		CheckLines: true,
		Cleanup:    CleanupSemantic,
	}
}

// Compute returns the cleaned-up edit script that turns actual into
// expected.
//
// Concatenating the OpKeep and OpDelete texts yields actual, and
// concatenating the OpKeep and OpInsert texts yields expected. No segment is
// empty. Bytes of invalid UTF-8 sequences are diffed one at a time and
// kept as-is.
func (c *Config) Compute(actual, expected string) []Segment {
	invalid := newByteMapping(actual, expected)
	if invalid != nil {
		actual, expected = invalid.encode(actual), invalid.encode(expected)
	}
	multiline := strings.ContainsAny(actual, "\r\n") || strings.ContainsAny(expected, "\r\n")
	if multiline {
		actual += Sentinel
		expected += Sentinel
	}
	diffs := c.Diff(actual, expected, c.CheckLines)
	switch c.Cleanup {
	case CleanupSemantic:
		diffs = c.CleanupSemantic(diffs)
	case CleanupEfficiency:
		diffs = c.CleanupEfficiency(diffs)
	}
	if multiline {
		diffs = trimSentinel(diffs)
	}
	if invalid != nil {
		for i := range diffs {
			diffs[i].Text = invalid.decode(diffs[i].Text)
		}
	}
	return compact(diffs)
}

// Compute returns the edit script between actual and expected using the
// default configuration.
func Compute(actual, expected string) []Segment {
	return NewDefaultConfig().Compute(actual, expected)
}

// trimSentinel removes the sentinel from the end of both reconstructed
// sides.
func trimSentinel(diffs []Segment) []Segment {
	actualDone, expectedDone := false, false
	for i := len(diffs) - 1; i >= 0 && !(actualDone && expectedDone); i-- {
		d := &diffs[i]
		switch {
		case d.Op == OpDelete && !actualDone:
			d.Text = strings.TrimSuffix(d.Text, Sentinel)
			actualDone = true
		case d.Op == OpInsert && !expectedDone:
			d.Text = strings.TrimSuffix(d.Text, Sentinel)
			expectedDone = true
		case d.Op == OpKeep && !actualDone && !expectedDone:
			d.Text = strings.TrimSuffix(d.Text, Sentinel)
			actualDone, expectedDone = true, true
		case d.Op == OpKeep && strings.HasSuffix(d.Text, Sentinel):
			// The keep ends only one side; the other side keeps the character
			// as real content.
			d.Text = strings.TrimSuffix(d.Text, Sentinel)
			op := OpInsert
			if actualDone {
				op = OpDelete
			}
			diffs = splice(diffs, i+1, 0, Segment{op, Sentinel})
			actualDone, expectedDone = true, true
		case d.Op == OpKeep:
			actualDone, expectedDone = true, true
		}
	}
	return diffs
}

// compact drops empty segments.
func compact(diffs []Segment) []Segment {
	out := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text != "" {
			out = append(out, d)
		}
	}
	return out
}
