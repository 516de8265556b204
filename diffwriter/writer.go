// Package diffwriter lays out an edit script as vertically aligned rows of
// actual and expected text.
package diffwriter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Markers substituted for characters that cannot be displayed as-is. Other
// control characters and the bytes of invalid UTF-8 sequences are written
// as \xNN, or \uNNNN for C1 controls.
const (
	NewlineMarker        = `\n`
	CarriageReturnMarker = `\r`
	TabMarker            = `\t`
	EOSMarker            = `\0`
)

var (
	// ErrInvalidState is returned when writing to a flushed Writer, or when
	// reading from one that was not flushed.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidArgument is returned for unusable constructor arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

var newlineRE = regexp.MustCompile(`\r?\n`)

// style is the decoration currently applied to a slot.
type style int

const (
	styleNone style = iota
	styleEqual
	styleDeleted
	styleInserted
	stylePadding
)

// slot is one side of a row.
type slot struct {
	buf  strings.Builder
	line int
	// content is set once anything other than padding is written.
	content bool
	// fresh is set when the row starts a new line for this side.
	fresh bool
	open  style
}

type row struct {
	actual   slot
	expected slot
	diff     strings.Builder
	equal    bool
}

// Writer splits the segments of an edit script into rows.
//
// A newline on one side ends the current row for both sides, but only
// advances that side's line number. A side that receives nothing but
// padding on a row is a placeholder for that row.
type Writer struct {
	dec          Decorator
	padding      string
	rows         []*row
	actualLine   int
	expectedLine int
	flushed      bool
	result       *Result
}

// NewWriter creates a writer that renders with d.
func NewWriter(d Decorator) (*Writer, error) {
	if d == nil {
		return nil, fmt.Errorf("decorator may not be nil: %w", ErrInvalidArgument)
	}
	padding := d.PaddingMarker()
	switch {
	case padding == "":
		return nil, fmt.Errorf("padding marker may not be empty: %w", ErrInvalidArgument)
	case TextWidth(padding) != 1:
		return nil, fmt.Errorf("padding marker %q must be one column wide: %w", padding, ErrInvalidArgument)
	}
	w := &Writer{
		dec:     d,
		padding: padding,
	}
	w.rows = append(w.rows, w.newRow(true, true))
	return w, nil
}

// Keep writes text that is present on both sides.
func (w *Writer) Keep(text string) error {
	if w.flushed {
		return fmt.Errorf("keep after flush: %w", ErrInvalidState)
	}
	w.split(text, func(frag string, eol bool) {
		r := w.current()
		w.put(&r.actual, styleEqual, frag, true)
		w.put(&r.expected, styleEqual, frag, true)
		w.mark(r, EqualMarker, TextWidth(frag))
		if eol {
			w.endRow(true, true)
		}
	})
	return nil
}

// Insert writes text that is present in expected but not in actual.
func (w *Writer) Insert(text string) error {
	if w.flushed {
		return fmt.Errorf("insert after flush: %w", ErrInvalidState)
	}
	w.split(text, func(frag string, eol bool) {
		r := w.current()
		width := TextWidth(frag)
		w.put(&r.actual, stylePadding, strings.Repeat(w.padding, width), false)
		w.put(&r.expected, styleInserted, frag, true)
		w.mark(r, InsertMarker, width)
		r.equal = false
		if eol {
			w.endRow(false, true)
		}
	})
	return nil
}

// Delete writes text that is present in actual but not in expected.
func (w *Writer) Delete(text string) error {
	if w.flushed {
		return fmt.Errorf("delete after flush: %w", ErrInvalidState)
	}
	w.split(text, func(frag string, eol bool) {
		r := w.current()
		width := TextWidth(frag)
		w.put(&r.actual, styleDeleted, frag, true)
		w.put(&r.expected, stylePadding, strings.Repeat(w.padding, width), false)
		w.mark(r, DeleteMarker, width)
		r.equal = false
		if eol {
			w.endRow(true, false)
		}
	})
	return nil
}

// Flush ends the final row and freezes the result. Calling Flush more than
// once has no effect.
func (w *Writer) Flush() {
	if w.flushed {
		return
	}
	w.flushed = true
	r := w.current()
	w.put(&r.actual, styleEqual, EOSMarker, r.actual.fresh)
	w.put(&r.expected, styleEqual, EOSMarker, r.expected.fresh)
	w.mark(r, EqualMarker, TextWidth(EOSMarker))
	w.stop(&r.actual)
	w.stop(&r.expected)

	res := &Result{
		actual:          make([]string, len(w.rows)),
		expected:        make([]string, len(w.rows)),
		equal:           make([]bool, len(w.rows)),
		actualNumbers:   make([]int, len(w.rows)),
		expectedNumbers: make([]int, len(w.rows)),
	}
	if w.dec.DiffMarkers() {
		res.diff = make([]string, len(w.rows))
	}
	for i, r := range w.rows {
		res.actual[i] = r.actual.buf.String()
		res.expected[i] = r.expected.buf.String()
		res.equal[i] = r.equal
		res.actualNumbers[i] = r.actual.number()
		res.expectedNumbers[i] = r.expected.number()
		if res.diff != nil {
			res.diff[i] = r.diff.String()
		}
	}
	w.result, w.rows = res, nil
}

// Result returns the rows written so far. The writer must have been flushed.
func (w *Writer) Result() (*Result, error) {
	if !w.flushed {
		return nil, fmt.Errorf("result before flush: %w", ErrInvalidState)
	}
	return w.result, nil
}

// split breaks text into fragments at each newline, invoking f with the
// displayable form of each fragment and whether it ended a line.
func (w *Writer) split(text string, f func(frag string, eol bool)) {
	lines := newlineRE.Split(text, -1)
	for i, line := range lines {
		frag := Escape(line)
		eol := i < len(lines)-1
		if eol {
			frag += NewlineMarker
		}
		if frag != "" {
			f(frag, eol)
		}
	}
}

// Escape replaces the characters of s that would disturb the layout or the
// terminal with visible escapes. Newlines are kept.
func Escape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&sb, `\x%02x`, s[i])
		case r == '\n':
			sb.WriteByte('\n')
		case r == '\r':
			sb.WriteString(CarriageReturnMarker)
		case r == '\t':
			sb.WriteString(TabMarker)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case unicode.IsControl(r):
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}

func (w *Writer) current() *row {
	return w.rows[len(w.rows)-1]
}

func (w *Writer) newRow(actualFresh, expectedFresh bool) *row {
	r := &row{equal: true}
	r.actual.line, r.actual.fresh = w.actualLine, actualFresh
	r.expected.line, r.expected.fresh = w.expectedLine, expectedFresh
	return r
}

// endRow closes the current row after a newline on either side.
func (w *Writer) endRow(actual, expected bool) {
	r := w.current()
	w.stop(&r.actual)
	w.stop(&r.expected)
	if actual {
		w.actualLine++
	}
	if expected {
		w.expectedLine++
	}
	w.rows = append(w.rows, w.newRow(actual, expected))
}

// put appends text to s, starting a new decoration only when the style
// changes.
func (w *Writer) put(s *slot, st style, text string, content bool) {
	if text == "" {
		return
	}
	if content {
		s.content = true
	}
	if s.open == st {
		s.buf.WriteString(text)
		return
	}
	w.stop(s)
	switch st {
	case styleEqual:
		text = w.dec.DecorateEqualText(text)
	case styleDeleted:
		text = w.dec.DecorateDeletedText(text)
	case styleInserted:
		text = w.dec.DecorateInsertedText(text)
	case stylePadding:
		text = w.dec.DecoratePadding(text)
	}
	s.buf.WriteString(text)
	s.open = st
}

// stop ends the open decoration of s, if any.
func (w *Writer) stop(s *slot) {
	if s.open == styleNone {
		return
	}
	s.buf.WriteString(w.dec.StopDecoration())
	s.open = styleNone
}

func (w *Writer) mark(r *row, marker string, width int) {
	if w.dec.DiffMarkers() {
		r.diff.WriteString(strings.Repeat(marker, width))
	}
}

// number returns the line number of s, or -1 for a placeholder.
func (s *slot) number() int {
	if !s.content {
		return -1
	}
	return s.line
}

var widthCond = func() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true
	return cond
}()

// TextWidth returns the number of terminal columns text occupies. Control
// characters count as one column.
func TextWidth(text string) int {
	n := 0
	for _, r := range text {
		w := widthCond.RuneWidth(r)
		if w == 0 && unicode.IsControl(r) {
			w = 1
		}
		n += w
	}
	return n
}
