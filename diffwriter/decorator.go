package diffwriter

import (
	"github.com/kenshaw/requirements/terminal"
	"github.com/muesli/termenv"
)

// Decorator renders the fragments of a diff for a particular terminal.
//
// The Decorate methods prefix text with the sequence that starts the
// decoration. The Writer appends StopDecoration once the run ends.
type Decorator interface {
	DecorateEqualText(text string) string
	DecorateDeletedText(text string) string
	DecorateInsertedText(text string) string
	DecoratePadding(text string) string
	// StopDecoration returns the sequence that ends any decoration.
	StopDecoration() string
	// PaddingMarker returns the single-column filler used to align the two
	// sides.
	PaddingMarker() string
	// DiffMarkers reports whether a middle row of =, - and + markers is
	// rendered.
	DiffMarkers() bool
}

// Diff row markers.
const (
	EqualMarker  = "="
	DeleteMarker = "-"
	InsertMarker = "+"
)

// TextOnly renders diffs without escape sequences. Changes are shown by a
// middle row of markers.
type TextOnly struct{}

func (TextOnly) DecorateEqualText(text string) string    { return text }
func (TextOnly) DecorateDeletedText(text string) string  { return text }
func (TextOnly) DecorateInsertedText(text string) string { return text }
func (TextOnly) DecoratePadding(text string) string      { return text }
func (TextOnly) StopDecoration() string                  { return "" }
func (TextOnly) PaddingMarker() string                   { return " " }
func (TextOnly) DiffMarkers() bool                       { return true }

// Style is a foreground and background color pair.
type Style struct {
	Foreground termenv.Color
	Background termenv.Color
}

// Start returns the escape sequence that turns the style on.
func (s Style) Start() string {
	return termenv.CSI + s.Foreground.Sequence(false) + ";" + s.Background.Sequence(true) + "m"
}

// ColorScheme renders diffs using ANSI escape sequences.
type ColorScheme struct {
	Equal    Style
	Deleted  Style
	Inserted Style
	Padding  Style
}

func (c ColorScheme) DecorateEqualText(text string) string    { return c.Equal.Start() + text }
func (c ColorScheme) DecorateDeletedText(text string) string  { return c.Deleted.Start() + text }
func (c ColorScheme) DecorateInsertedText(text string) string { return c.Inserted.Start() + text }
func (c ColorScheme) DecoratePadding(text string) string      { return c.Padding.Start() + text }

// StopDecoration returns the reset sequence.
func (c ColorScheme) StopDecoration() string {
	return termenv.CSI + termenv.ResetSeq + "m"
}

// PaddingMarker returns "/".
func (c ColorScheme) PaddingMarker() string { return "/" }

// DiffMarkers returns false; colors distinguish the changes.
func (c ColorScheme) DiffMarkers() bool { return false }

var schemes = map[terminal.Encoding]ColorScheme{
	terminal.Xterm8: {
		Equal:    Style{termenv.ANSIWhite, termenv.ANSIBlack},
		Deleted:  Style{termenv.ANSIWhite, termenv.ANSIRed},
		Inserted: Style{termenv.ANSIBlack, termenv.ANSIGreen},
		Padding:  Style{termenv.ANSIBlack, termenv.ANSIWhite},
	},
	terminal.Xterm16: {
		Equal:    Style{termenv.ANSIBrightWhite, termenv.ANSIBlack},
		Deleted:  Style{termenv.ANSIBrightWhite, termenv.ANSIRed},
		Inserted: Style{termenv.ANSIBrightWhite, termenv.ANSIGreen},
		Padding:  Style{termenv.ANSIWhite, termenv.ANSIBrightBlack},
	},
	terminal.Xterm256: {
		Equal:    Style{termenv.ANSI256Color(15), termenv.ANSI256Color(0)},
		Deleted:  Style{termenv.ANSI256Color(15), termenv.ANSI256Color(124)},
		Inserted: Style{termenv.ANSI256Color(15), termenv.ANSI256Color(28)},
		Padding:  Style{termenv.ANSI256Color(250), termenv.ANSI256Color(238)},
	},
	terminal.RGB888: {
		Equal:    Style{termenv.RGBColor("#ffffff"), termenv.RGBColor("#000000")},
		Deleted:  Style{termenv.RGBColor("#ffffff"), termenv.RGBColor("#b40000")},
		Inserted: Style{termenv.RGBColor("#ffffff"), termenv.RGBColor("#007800")},
		Padding:  Style{termenv.RGBColor("#bebebe"), termenv.RGBColor("#3c3c3c")},
	},
}

// ForEncoding returns the decorator for an encoding: a ColorScheme for the
// color encodings and TextOnly otherwise. Each call returns a copy, so
// changing a returned scheme does not affect other callers.
func ForEncoding(enc terminal.Encoding) Decorator {
	if s, ok := schemes[enc]; ok {
		return s
	}
	return TextOnly{}
}
