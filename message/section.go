// Package message assembles the labeled sections that explain why two values
// differ.
package message

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Section is a part of a failure message: either a StringSection or a
// ContextSection.
type Section interface {
	section()
}

// StringSection is free text, rendered verbatim.
type StringSection string

func (StringSection) section() {}

// Entry is a labeled value.
type Entry struct {
	Key   string
	Value string
}

// ContextSection is an ordered list of labeled values, rendered one per
// line with aligned keys.
type ContextSection []Entry

func (ContextSection) section() {}

// Legend explains the markers used by text-only diffs.
const Legend = `
Legend
------
+           : Add this character to the value
-           : Remove this character from the value
[index]     : Refers to the index of a collection element
@line-number: Refers to the line number of a multiline string`

// Format renders sections, padding the keys of each ContextSection to the
// widest key in that section.
func Format(sections []Section) string {
	return format(sections, -1)
}

// FormatAligned renders sections, padding every key to the widest key in the
// whole message.
func FormatAligned(sections []Section) string {
	return format(sections, KeyWidth(sections))
}

// KeyWidth returns the display width of the widest key in sections.
func KeyWidth(sections []Section) int {
	width := 0
	for _, s := range sections {
		if c, ok := s.(ContextSection); ok {
			for _, e := range c {
				width = max(width, runewidth.StringWidth(e.Key))
			}
		}
	}
	return width
}

func format(sections []Section, width int) string {
	var sb strings.Builder
	for i, s := range sections {
		if i != 0 {
			sb.WriteByte('\n')
		}
		switch s := s.(type) {
		case StringSection:
			sb.WriteString(string(s))
		case ContextSection:
			w := width
			if w < 0 {
				w = KeyWidth([]Section{s})
			}
			for j, e := range s {
				if j != 0 {
					sb.WriteByte('\n')
				}
				sb.WriteString(e.Key)
				sb.WriteString(strings.Repeat(" ", max(0, w-runewidth.StringWidth(e.Key))))
				sb.WriteString(": ")
				sb.WriteString(e.Value)
			}
		}
	}
	return sb.String()
}
