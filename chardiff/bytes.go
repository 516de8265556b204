package chardiff

import (
	"strings"
	"unicode/utf8"
)

// Invalid bytes are diffed as code points in a 256-rune window of the
// supplementary private use planes. The window is chosen so that it does not
// occur in either text, which makes the mapping reversible.
const (
	byteWindowFirst = 0xf0000
	byteWindowCount = 0x20000 / 256
)

// byteMapping maps the bytes of invalid UTF-8 sequences to runes and back.
type byteMapping struct {
	base rune
}

// newByteMapping returns a mapping for texts, or nil if every text is valid
// UTF-8 or no free window exists.
func newByteMapping(texts ...string) *byteMapping {
	valid := true
	for _, s := range texts {
		valid = valid && utf8.ValidString(s)
	}
	if valid {
		return nil
	}
	used := make(map[rune]bool)
	for _, s := range texts {
		for _, r := range s {
			if r >= byteWindowFirst {
				used[(r-byteWindowFirst)/256] = true
			}
		}
	}
	for w := rune(0); w < byteWindowCount; w++ {
		if !used[w] {
			return &byteMapping{base: byteWindowFirst + w*256}
		}
	}
	return nil
}

// encode replaces each byte of an invalid sequence in s with its rune.
func (m *byteMapping) encode(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(m.base + rune(s[i]))
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}

// decode reverses encode.
func (m *byteMapping) decode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= m.base && r < m.base+256 {
			sb.WriteByte(byte(r - m.base))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
