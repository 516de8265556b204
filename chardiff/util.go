package chardiff

import (
	"strings"
	"unicode/utf8"
)

// indexOf returns the first index of pattern in s, starting at s[i].
func indexOf(s string, pattern string, i int) int {
	if i > len(s)-1 {
		return -1
	}
	if i <= 0 {
		return strings.Index(s, pattern)
	}
	ind := strings.Index(s[i:], pattern)
	if ind == -1 {
		return -1
	}
	return ind + i
}

// runesIndexOf returns the index of pattern in target, starting at target[i].
func runesIndexOf(target, pattern []rune, i int) int {
	if i > len(target)-1 {
		return -1
	}
	if i <= 0 {
		return runesIndex(target, pattern)
	}
	ind := runesIndex(target[i:], pattern)
	if ind == -1 {
		return -1
	}
	return ind + i
}

func runesEqual(r1, r2 []rune) bool {
	if len(r1) != len(r2) {
		return false
	}
	for i, c := range r1 {
		if c != r2[i] {
			return false
		}
	}
	return true
}

// runesIndex is the equivalent of strings.Index for rune slices.
func runesIndex(r1, r2 []rune) int {
	last := len(r1) - len(r2)
	for i := 0; i <= last; i++ {
		if runesEqual(r1[i:i+len(r2)], r2) {
			return i
		}
	}
	return -1
}

// splice removes amount elements from slice at index index, replacing them
// with elements.
func splice(slice []Segment, index int, amount int, elements ...Segment) []Segment {
	switch {
	case len(elements) == amount:
		copy(slice[index:], elements)
		return slice
	case len(elements) < amount:
		copy(slice[index:], elements)
		// shift the remaining items left
		copy(slice[index+len(elements):], slice[index+amount:])
		end := len(slice) - amount + len(elements)
		// zero stranded elements at the end so that they can be collected
		clear(slice[end:])
		return slice[:end]
	}
	// make room for the new elements, then shift right
	need := len(slice) - amount + len(elements)
	for len(slice) < need {
		slice = append(slice, Segment{})
	}
	copy(slice[index+len(elements):], slice[index+amount:])
	copy(slice[index:], elements)
	return slice
}

// commonPrefixLength returns the length of the common prefix of two rune
// slices.
func commonPrefixLength(text1, text2 []rune) int {
	n := 0
	for ; n < len(text1) && n < len(text2); n++ {
		if text1[n] != text2[n] {
			return n
		}
	}
	return n
}

// commonSuffixLength returns the length of the common suffix of two rune
// slices.
func commonSuffixLength(text1, text2 []rune) int {
	// linear search, see https://github.com/sergi/go-diff/issues/54
	i1, i2 := len(text1), len(text2)
	for n := 0; ; n++ {
		i1--
		i2--
		if i1 < 0 || i2 < 0 || text1[i1] != text2[i2] {
			return n
		}
	}
}

// commonSuffixBytes returns the byte length of the common suffix of two
// strings, never splitting a rune.
func commonSuffixBytes(text1, text2 string) int {
	n := 0
	for len(text1) > n && len(text2) > n {
		_, sz1 := utf8.DecodeLastRuneInString(text1[:len(text1)-n])
		_, sz2 := utf8.DecodeLastRuneInString(text2[:len(text2)-n])
		if sz1 != sz2 || text1[len(text1)-n-sz1:len(text1)-n] != text2[len(text2)-n-sz2:len(text2)-n] {
			break
		}
		n += sz1
	}
	return n
}
