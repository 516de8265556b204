// Package terminal describes the color capabilities of a terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Encoding is the set of colors a terminal can display. Values are ordered by
// increasing color richness.
type Encoding int

// Encoding values.
const (
	None Encoding = iota
	Xterm8
	Xterm16
	Xterm256
	RGB888
)

var encodingNames = [...]string{
	None:     "none",
	Xterm8:   "xterm-8",
	Xterm16:  "xterm-16",
	Xterm256: "xterm-256",
	RGB888:   "rgb-888",
}

// Encodings returns all encodings, from least to most colorful.
func Encodings() []Encoding {
	return []Encoding{None, Xterm8, Xterm16, Xterm256, RGB888}
}

// String satisfies the fmt.Stringer interface.
func (e Encoding) String() string {
	if e < 0 || int(e) >= len(encodingNames) {
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
	return encodingNames[e]
}

// Colors returns the number of colors the encoding can display.
func (e Encoding) Colors() int {
	switch e {
	case Xterm8:
		return 8
	case Xterm16:
		return 16
	case Xterm256:
		return 256
	case RGB888:
		return 1 << 24
	}
	return 0
}

// ParseEncoding returns the encoding named s. Matching is case-insensitive.
func ParseEncoding(s string) (Encoding, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range encodingNames {
		if name == s {
			return Encoding(i), nil
		}
	}
	return None, fmt.Errorf("unknown terminal encoding %q", s)
}

// MarshalText satisfies the encoding.TextMarshaler interface.
func (e Encoding) MarshalText() ([]byte, error) {
	if e < 0 || int(e) >= len(encodingNames) {
		return nil, fmt.Errorf("invalid terminal encoding %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText satisfies the encoding.TextUnmarshaler interface.
func (e *Encoding) UnmarshalText(text []byte) error {
	v, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Detect returns the richest encoding supported by the terminal attached to
// w. Files that are not terminals, and writers that are not files, get None
// unless the environment forces colors.
func Detect(w io.Writer) Encoding {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		if os.Getenv("CLICOLOR_FORCE") == "" {
			return None
		}
	}
	return FromProfile(termenv.NewOutput(w).EnvColorProfile())
}

// FromProfile maps a termenv color profile to an encoding.
func FromProfile(p termenv.Profile) Encoding {
	switch p {
	case termenv.TrueColor:
		return RGB888
	case termenv.ANSI256:
		return Xterm256
	case termenv.ANSI:
		return Xterm16
	}
	return None
}
