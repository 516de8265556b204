package chardiff

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Op is the kind of an edit operation.
type Op int8

// Op values.
const (
	OpDelete Op = -1
	OpKeep   Op = 0
	OpInsert Op = 1
)

// String satisfies the fmt.Stringer interface.
func (op Op) String() string {
	switch op {
	case OpDelete:
		return "Delete"
	case OpKeep:
		return "Keep"
	case OpInsert:
		return "Insert"
	}
	return "Unknown"
}

// Segment is one operation of an edit script.
type Segment struct {
	Op   Op
	Text string
}

// Diff finds the differences between two texts.
//
// If checklines is false, then don't run a line-level diff first to identify
// the changed areas. If true, then run a faster slightly less optimal diff.
func (c *Config) Diff(text1, text2 string, checklines bool) []Segment {
	return c.DiffRunes([]rune(text1), []rune(text2), checklines)
}

// DiffRunes finds the differences between two rune sequences.
func (c *Config) DiffRunes(text1, text2 []rune, checklines bool) []Segment {
	var deadline time.Time
	if c.Timeout > 0 {
		deadline = time.Now().Add(c.Timeout)
	}
	return c.diffMainRunes(text1, text2, checklines, deadline)
}

func (c *Config) diffMainRunes(text1, text2 []rune, checklines bool, deadline time.Time) []Segment {
	if runesEqual(text1, text2) {
		var diffs []Segment
		if len(text1) > 0 {
			diffs = append(diffs, Segment{OpKeep, string(text1)})
		}
		return diffs
	}
	// trim common prefix
	n := commonPrefixLength(text1, text2)
	prefix := text1[:n]
	text1, text2 = text1[n:], text2[n:]
	// trim common suffix
	n = commonSuffixLength(text1, text2)
	suffix := text1[len(text1)-n:]
	text1, text2 = text1[:len(text1)-n], text2[:len(text2)-n]
	diffs := c.diffCompute(text1, text2, checklines, deadline)
	if len(prefix) != 0 {
		diffs = append([]Segment{{OpKeep, string(prefix)}}, diffs...)
	}
	if len(suffix) != 0 {
		diffs = append(diffs, Segment{OpKeep, string(suffix)})
	}
	return c.CleanupMerge(diffs)
}

// diffCompute finds the differences between two rune slices that are known
// to share no common prefix or suffix.
func (c *Config) diffCompute(text1, text2 []rune, checklines bool, deadline time.Time) []Segment {
	switch {
	case len(text1) == 0:
		return []Segment{{OpInsert, string(text2)}}
	case len(text2) == 0:
		return []Segment{{OpDelete, string(text1)}}
	}
	longtext, shorttext, op := text2, text1, OpInsert
	if len(text1) > len(text2) {
		longtext, shorttext, op = text1, text2, OpDelete
	}
	if i := runesIndex(longtext, shorttext); i != -1 {
		// shorter text is inside the longer text
		return []Segment{
			{op, string(longtext[:i])},
			{OpKeep, string(shorttext)},
			{op, string(longtext[i+len(shorttext):])},
		}
	}
	if len(shorttext) == 1 {
		// single character string, after the previous check the character
		// can't be an equality
		return []Segment{
			{OpDelete, string(text1)},
			{OpInsert, string(text2)},
		}
	}
	if hm := c.diffHalfMatch(text1, text2); hm != nil {
		// a half-match was found, so solve both halves separately
		diffs := c.diffMainRunes(hm[0], hm[2], checklines, deadline)
		diffs = append(diffs, Segment{OpKeep, string(hm[4])})
		return append(diffs, c.diffMainRunes(hm[1], hm[3], checklines, deadline)...)
	}
	if checklines && len(text1) > 100 && len(text2) > 100 {
		return c.diffLineMode(text1, text2, deadline)
	}
	return c.diffBisect(text1, text2, deadline)
}

// diffLineMode does a quick line-level diff on both texts, then rediffs the
// changed parts character by character.
func (c *Config) diffLineMode(text1, text2 []rune, deadline time.Time) []Segment {
	chars1, chars2, lines := c.DiffLinesToRunes(string(text1), string(text2))
	diffs := c.diffMainRunes(chars1, chars2, false, deadline)
	diffs = c.DiffRunesToLines(diffs, lines)
	diffs = c.CleanupSemantic(diffs)
	// rediff any replacement blocks, this time character by character, with
	// a dummy entry at the end
	diffs = append(diffs, Segment{OpKeep, ""})
	var pointer, countDelete, countInsert int
	var textDelete, textInsert strings.Builder
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert.WriteString(diffs[pointer].Text)
		case OpDelete:
			countDelete++
			textDelete.WriteString(diffs[pointer].Text)
		case OpKeep:
			if countDelete >= 1 && countInsert >= 1 {
				// delete the offending records and add the merged ones
				diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert)
				pointer -= countDelete + countInsert
				a := c.diffMainRunes([]rune(textDelete.String()), []rune(textInsert.String()), false, deadline)
				diffs = splice(diffs, pointer, 0, a...)
				pointer += len(a)
			}
			countInsert, countDelete = 0, 0
			textDelete.Reset()
			textInsert.Reset()
		}
		pointer++
	}
	return diffs[:len(diffs)-1]
}

// DiffBisect finds the 'middle snake' of a diff, splits the problem in two
// and returns the recursively constructed diff.
//
// See Myers's 1986 paper: An O(ND) Difference Algorithm and Its Variations.
func (c *Config) DiffBisect(text1, text2 string, deadline time.Time) []Segment {
	return c.diffBisect([]rune(text1), []rune(text2), deadline)
}

func (c *Config) diffBisect(runes1, runes2 []rune, deadline time.Time) []Segment {
	runes1Len, runes2Len := len(runes1), len(runes2)
	maxD := (runes1Len + runes2Len + 1) / 2
	vOffset, vLength := maxD, 2*maxD
	v1, v2 := make([]int, vLength), make([]int, vLength)
	for i := range v1 {
		v1[i], v2[i] = -1, -1
	}
	v1[vOffset+1], v2[vOffset+1] = 0, 0
	delta := runes1Len - runes2Len
	// if the total number of characters is odd, then the front path will
	// collide with the reverse path
	front := delta%2 != 0
	// offsets for start and end of k loop, prevents mapping of space beyond
	// the grid
	var k1start, k1end, k2start, k2end int
	for d := 0; d < maxD; d++ {
		if !deadline.IsZero() && d%16 == 0 && time.Now().After(deadline) {
			break
		}
		// walk the front path one step
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < runes1Len && y1 < runes2Len && runes1[x1] == runes2[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > runes1Len:
				// ran off the right of the graph
				k1end += 2
			case y1 > runes2Len:
				// ran off the bottom of the graph
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// mirror x2 onto top-left coordinate system
					if x1 >= runes1Len-v2[k2Offset] {
						return c.diffBisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
		// walk the reverse path one step
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < runes1Len && y2 < runes2Len && runes1[runes1Len-x2-1] == runes2[runes2Len-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > runes1Len:
				// ran off the left of the graph
				k2end += 2
			case y2 > runes2Len:
				// ran off the top of the graph
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// mirror x2 onto top-left coordinate system
					if x1 >= runes1Len-x2 {
						return c.diffBisectSplit(runes1, runes2, x1, y1, deadline)
					}
				}
			}
		}
	}
	// diff took too long and hit the deadline, or the number of diffs
	// equals the number of characters: no commonality at all
	return []Segment{
		{OpDelete, string(runes1)},
		{OpInsert, string(runes2)},
	}
}

func (c *Config) diffBisectSplit(runes1, runes2 []rune, x, y int, deadline time.Time) []Segment {
	diffs := c.diffMainRunes(runes1[:x], runes2[:y], false, deadline)
	return append(diffs, c.diffMainRunes(runes1[x:], runes2[y:], false, deadline)...)
}

// DiffLinesToRunes splits two texts into a list of runes, where each rune
// represents one line.
func (c *Config) DiffLinesToRunes(text1, text2 string) ([]rune, []rune, []string) {
	// "\x00" is a valid line, so the zero index is reserved for the empty
	// string
	lines := []string{""}
	hash := make(map[string]int)
	chars1 := linesToRunesMunge(text1, &lines, hash)
	chars2 := linesToRunesMunge(text2, &lines, hash)
	return chars1, chars2, lines
}

// DiffRunesToLines rehydrates the text in a diff from runes to lines of
// text.
func (c *Config) DiffRunesToLines(diffs []Segment, lines []string) []Segment {
	hydrated := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		var buf strings.Builder
		for _, r := range d.Text {
			buf.WriteString(lines[runeLine(r)])
		}
		d.Text = buf.String()
		hydrated = append(hydrated, d)
	}
	return hydrated
}

// linesToRunesMunge splits a text into runes, one per line, registering
// unseen lines in lines and hash.
func linesToRunesMunge(text string, lines *[]string, hash map[string]int) []rune {
	var runes []rune
	for start := 0; start < len(text); {
		end := indexOf(text, "\n", start)
		if end == -1 {
			end = len(text) - 1
		}
		line := text[start : end+1]
		start = end + 1
		i, ok := hash[line]
		if !ok {
			*lines = append(*lines, line)
			i = len(*lines) - 1
			hash[line] = i
		}
		runes = append(runes, lineRune(i))
	}
	return runes
}

// lineRune maps a line index to a rune, skipping the surrogate range so that
// the rune survives a round trip through a string.
func lineRune(i int) rune {
	if i >= 0xd800 {
		i += 0x800
	}
	return rune(i)
}

// runeLine is the inverse of lineRune.
func runeLine(r rune) int {
	if r >= 0xe000 {
		r -= 0x800
	}
	return int(r)
}

// CommonPrefix determines the common prefix length of two strings, in
// runes.
func (c *Config) CommonPrefix(text1, text2 string) int {
	return commonPrefixLength([]rune(text1), []rune(text2))
}

// CommonSuffix determines the common suffix length of two strings, in
// runes.
func (c *Config) CommonSuffix(text1, text2 string) int {
	return commonSuffixLength([]rune(text1), []rune(text2))
}

// CommonOverlap determines if the suffix of one string is the prefix of
// another, returning the overlap length in bytes.
func (c *Config) CommonOverlap(text1, text2 string) int {
	len1, len2 := len(text1), len(text2)
	if len1 == 0 || len2 == 0 {
		return 0
	}
	// truncate the longer string
	switch {
	case len1 > len2:
		text1 = text1[len1-len2:]
	case len1 < len2:
		text2 = text2[:len1]
	}
	n := min(len1, len2)
	if text1 == text2 {
		return n
	}
	// start by looking for a single character match and increase length
	// until no match is found
	best, length := 0, 1
	for {
		pattern := text1[n-length:]
		found := strings.Index(text2, pattern)
		if found == -1 {
			break
		}
		length += found
		if found == 0 || text1[n-length:] == text2[:length] {
			best = length
			length++
		}
	}
	return best
}

// DiffHalfMatch checks whether the two texts share a substring which is at
// least half the length of the longer text. This speedup can produce
// non-minimal diffs.
//
// Returns the prefix of text1, the suffix of text1, the prefix of text2, the
// suffix of text2 and the common middle, or nil if there was no match.
func (c *Config) DiffHalfMatch(text1, text2 string) []string {
	hm := c.diffHalfMatch([]rune(text1), []rune(text2))
	if hm == nil {
		return nil
	}
	res := make([]string, len(hm))
	for i, r := range hm {
		res[i] = string(r)
	}
	return res
}

func (c *Config) diffHalfMatch(text1, text2 []rune) [][]rune {
	if c.Timeout <= 0 {
		// don't risk returning a non-optimal diff with unlimited time
		return nil
	}
	longtext, shorttext := text2, text1
	if len(text1) > len(text2) {
		longtext, shorttext = text1, text2
	}
	if len(longtext) < 4 || len(shorttext)*2 < len(longtext) {
		return nil
	}
	// check if the second quarter is the seed for a half-match
	hm1 := diffHalfMatchI(longtext, shorttext, (len(longtext)+3)/4)
	// check again based on the third quarter
	hm2 := diffHalfMatchI(longtext, shorttext, (len(longtext)+1)/2)
	var hm [][]rune
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1[4]) > len(hm2[4]):
		hm = hm1
	default:
		hm = hm2
	}
	if len(text1) > len(text2) {
		return hm
	}
	return [][]rune{hm[2], hm[3], hm[0], hm[1], hm[4]}
}

// diffHalfMatchI checks if a substring of shorttext exists within longtext
// such that the substring is at least half the length of longtext, using the
// quarter-length substring of l starting at i as a seed.
func diffHalfMatchI(l, s []rune, i int) [][]rune {
	var bestCommonA, bestCommonB []rune
	var bestCommonLen int
	var bestLongtextA, bestLongtextB, bestShorttextA, bestShorttextB []rune
	seed := l[i : i+len(l)/4]
	for j := runesIndexOf(s, seed, 0); j != -1; j = runesIndexOf(s, seed, j+1) {
		prefixLength := commonPrefixLength(l[i:], s[j:])
		suffixLength := commonSuffixLength(l[:i], s[:j])
		if bestCommonLen < suffixLength+prefixLength {
			bestCommonA = s[j-suffixLength : j]
			bestCommonB = s[j : j+prefixLength]
			bestCommonLen = len(bestCommonA) + len(bestCommonB)
			bestLongtextA = l[:i-suffixLength]
			bestLongtextB = l[i+prefixLength:]
			bestShorttextA = s[:j-suffixLength]
			bestShorttextB = s[j+prefixLength:]
		}
	}
	if bestCommonLen*2 < len(l) {
		return nil
	}
	common := make([]rune, 0, bestCommonLen)
	common = append(common, bestCommonA...)
	common = append(common, bestCommonB...)
	return [][]rune{
		bestLongtextA,
		bestLongtextB,
		bestShorttextA,
		bestShorttextB,
		common,
	}
}

// CleanupSemantic reduces the number of edits by eliminating semantically
// trivial equalities.
func (c *Config) CleanupSemantic(diffs []Segment) []Segment {
	changes := false
	// stack of indices where equalities are found
	equalities := make([]int, 0, len(diffs))
	var lastequality string
	var pointer int
	// number of characters that changed prior to the equality
	var lengthInsertions1, lengthDeletions1 int
	// number of characters that changed after the equality
	var lengthInsertions2, lengthDeletions2 int
	for pointer < len(diffs) {
		if diffs[pointer].Op == OpKeep {
			equalities = append(equalities, pointer)
			lengthInsertions1, lengthDeletions1 = lengthInsertions2, lengthDeletions2
			lengthInsertions2, lengthDeletions2 = 0, 0
			lastequality = diffs[pointer].Text
		} else {
			if diffs[pointer].Op == OpInsert {
				lengthInsertions2 += utf8.RuneCountInString(diffs[pointer].Text)
			} else {
				lengthDeletions2 += utf8.RuneCountInString(diffs[pointer].Text)
			}
			// eliminate an equality that is smaller or equal to the edits on
			// both sides of it
			difference1 := max(lengthInsertions1, lengthDeletions1)
			difference2 := max(lengthInsertions2, lengthDeletions2)
			n := utf8.RuneCountInString(lastequality)
			if n > 0 && n <= difference1 && n <= difference2 {
				// duplicate record, and change the second copy to an insert
				insPoint := equalities[len(equalities)-1]
				diffs = splice(diffs, insPoint, 0, Segment{OpDelete, lastequality})
				diffs[insPoint+1].Op = OpInsert
				// throw away the equality just deleted, and the previous one
				// which needs to be reevaluated
				equalities = equalities[:len(equalities)-1]
				if len(equalities) > 0 {
					equalities = equalities[:len(equalities)-1]
				}
				pointer = -1
				if len(equalities) > 0 {
					pointer = equalities[len(equalities)-1]
				}
				lengthInsertions1, lengthDeletions1 = 0, 0
				lengthInsertions2, lengthDeletions2 = 0, 0
				lastequality = ""
				changes = true
			}
		}
		pointer++
	}
	if changes {
		diffs = c.CleanupMerge(diffs)
	}
	diffs = c.CleanupSemanticLossless(diffs)
	// find any overlaps between deletions and insertions, only extracting an
	// overlap if it is as big as the edit ahead or behind it:
	//
	//   <del>abcxxx</del><ins>xxxdef</ins> -> <del>abc</del>xxx<ins>def</ins>
	//   <del>xxxabc</del><ins>defxxx</ins> -> <ins>def</ins>xxx<del>abc</del>
	pointer = 1
	for pointer < len(diffs) {
		if diffs[pointer-1].Op == OpDelete && diffs[pointer].Op == OpInsert {
			deletion, insertion := diffs[pointer-1].Text, diffs[pointer].Text
			halfDeletion := float64(utf8.RuneCountInString(deletion)) / 2
			halfInsertion := float64(utf8.RuneCountInString(insertion)) / 2
			overlapLength1 := c.CommonOverlap(deletion, insertion)
			overlapLength2 := c.CommonOverlap(insertion, deletion)
			if overlapLength1 >= overlapLength2 {
				if float64(overlapLength1) >= halfDeletion || float64(overlapLength1) >= halfInsertion {
					// overlap found, insert an equality and trim the
					// surrounding edits
					diffs = splice(diffs, pointer, 0, Segment{OpKeep, insertion[:overlapLength1]})
					diffs[pointer-1].Text = deletion[:len(deletion)-overlapLength1]
					diffs[pointer+1].Text = insertion[overlapLength1:]
					pointer++
				}
			} else if float64(overlapLength2) >= halfDeletion || float64(overlapLength2) >= halfInsertion {
				// reverse overlap found, insert an equality and swap and trim
				// the surrounding edits
				diffs = splice(diffs, pointer, 0, Segment{OpKeep, deletion[:overlapLength2]})
				diffs[pointer-1] = Segment{OpInsert, insertion[:len(insertion)-overlapLength2]}
				diffs[pointer+1] = Segment{OpDelete, deletion[overlapLength2:]}
				pointer++
			}
			pointer++
		}
		pointer++
	}
	return diffs
}

var (
	nonAlphaNumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRegex      = regexp.MustCompile(`\s`)
	linebreakRegex       = regexp.MustCompile(`[\r\n]`)
	blanklineEndRegex    = regexp.MustCompile(`\n\r?\n$`)
	blanklineStartRegex  = regexp.MustCompile(`^\r?\n\r?\n`)
)

// semanticScore scores how well the internal boundary between one and two
// falls on logical boundaries, from 6 (best) to 0 (worst).
func semanticScore(one, two string) int {
	if len(one) == 0 || len(two) == 0 {
		// edges are the best
		return 6
	}
	rune1, _ := utf8.DecodeLastRuneInString(one)
	rune2, _ := utf8.DecodeRuneInString(two)
	char1, char2 := string(rune1), string(rune2)
	nonAlphaNumeric1 := nonAlphaNumericRegex.MatchString(char1)
	nonAlphaNumeric2 := nonAlphaNumericRegex.MatchString(char2)
	whitespace1 := nonAlphaNumeric1 && whitespaceRegex.MatchString(char1)
	whitespace2 := nonAlphaNumeric2 && whitespaceRegex.MatchString(char2)
	lineBreak1 := whitespace1 && linebreakRegex.MatchString(char1)
	lineBreak2 := whitespace2 && linebreakRegex.MatchString(char2)
	blankLine1 := lineBreak1 && blanklineEndRegex.MatchString(one)
	blankLine2 := lineBreak2 && blanklineStartRegex.MatchString(two)
	switch {
	case blankLine1 || blankLine2:
		return 5
	case lineBreak1 || lineBreak2:
		return 4
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		// end of sentence
		return 3
	case whitespace1 || whitespace2:
		return 2
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		return 1
	}
	return 0
}

// CleanupSemanticLossless looks for single edits surrounded on both sides by
// equalities which can be shifted sideways to align the edit to a word
// boundary, e.g: The c<ins>at c</ins>ame. -> The <ins>cat </ins>came.
func (c *Config) CleanupSemanticLossless(diffs []Segment) []Segment {
	// the first and last element don't need checking
	for pointer := 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Op != OpKeep || diffs[pointer+1].Op != OpKeep {
			continue
		}
		equality1 := diffs[pointer-1].Text
		edit := diffs[pointer].Text
		equality2 := diffs[pointer+1].Text
		// shift the edit as far left as possible
		if n := commonSuffixBytes(equality1, edit); n > 0 {
			common := edit[len(edit)-n:]
			equality1 = equality1[:len(equality1)-n]
			edit = common + edit[:len(edit)-n]
			equality2 = common + equality2
		}
		// step character by character right, looking for the best fit
		bestEquality1, bestEdit, bestEquality2 := equality1, edit, equality2
		bestScore := semanticScore(equality1, edit) + semanticScore(edit, equality2)
		for len(edit) != 0 && len(equality2) != 0 {
			_, sz := utf8.DecodeRuneInString(edit)
			if len(equality2) < sz || edit[:sz] != equality2[:sz] {
				break
			}
			equality1 += edit[:sz]
			edit = edit[sz:] + equality2[:sz]
			equality2 = equality2[sz:]
			score := semanticScore(equality1, edit) + semanticScore(edit, equality2)
			// the >= encourages trailing rather than leading whitespace on
			// edits
			if score >= bestScore {
				bestScore = score
				bestEquality1, bestEdit, bestEquality2 = equality1, edit, equality2
			}
		}
		if diffs[pointer-1].Text == bestEquality1 {
			continue
		}
		// an improvement was found, save it back to the diff
		if len(bestEquality1) != 0 {
			diffs[pointer-1].Text = bestEquality1
		} else {
			diffs = splice(diffs, pointer-1, 1)
			pointer--
		}
		diffs[pointer].Text = bestEdit
		if len(bestEquality2) != 0 {
			diffs[pointer+1].Text = bestEquality2
		} else {
			diffs = splice(diffs, pointer+1, 1)
			pointer--
		}
	}
	return diffs
}

// CleanupEfficiency reduces the number of edits by eliminating
// operationally trivial equalities.
func (c *Config) CleanupEfficiency(diffs []Segment) []Segment {
	changes := false
	// stack of indices where candidate equalities are found
	var equalities []int
	lastequality := ""
	// whether there is an insertion/deletion before/after the last equality
	var preIns, preDel, postIns, postDel bool
	for pointer := 0; pointer < len(diffs); pointer++ {
		if diffs[pointer].Op == OpKeep {
			if len(diffs[pointer].Text) < c.EditCost && (postIns || postDel) {
				// candidate found
				equalities = append(equalities, pointer)
				preIns, preDel = postIns, postDel
				lastequality = diffs[pointer].Text
			} else {
				// not a candidate, and can never become one
				equalities = equalities[:0]
				lastequality = ""
			}
			postIns, postDel = false, false
			continue
		}
		if diffs[pointer].Op == OpDelete {
			postDel = true
		} else {
			postIns = true
		}
		// five types to be split:
		//
		//   <ins>A</ins><del>B</del>XY<ins>C</ins><del>D</del>
		//   <ins>A</ins>X<ins>C</ins><del>D</del>
		//   <ins>A</ins><del>B</del>X<ins>C</ins>
		//   <ins>A</del>X<ins>C</ins><del>D</del>
		//   <ins>A</ins><del>B</del>X<del>C</del>
		sumPres := 0
		for _, b := range []bool{preIns, preDel, postIns, postDel} {
			if b {
				sumPres++
			}
		}
		if len(lastequality) == 0 ||
			!((preIns && preDel && postIns && postDel) || (len(lastequality) < c.EditCost/2 && sumPres == 3)) {
			continue
		}
		// duplicate record, and change the second copy to an insert
		insPoint := equalities[len(equalities)-1]
		diffs = splice(diffs, insPoint, 0, Segment{OpDelete, lastequality})
		diffs[insPoint+1].Op = OpInsert
		// throw away the equality just deleted
		equalities = equalities[:len(equalities)-1]
		lastequality = ""
		if preIns && preDel {
			// no changes made which could affect previous entry, keep going
			postIns, postDel = true, true
			equalities = equalities[:0]
		} else {
			// throw away the previous equality
			if len(equalities) > 0 {
				equalities = equalities[:len(equalities)-1]
			}
			pointer = -1
			if len(equalities) > 0 {
				pointer = equalities[len(equalities)-1]
			}
			postIns, postDel = false, false
		}
		changes = true
	}
	if changes {
		diffs = c.CleanupMerge(diffs)
	}
	return diffs
}

// CleanupMerge reorders and merges like edit sections, merging equalities.
// Any edit section can move as long as it doesn't cross an equality.
func (c *Config) CleanupMerge(diffs []Segment) []Segment {
	// add a dummy entry at the end
	diffs = append(diffs, Segment{OpKeep, ""})
	var pointer, countDelete, countInsert int
	var textDelete, textInsert []rune
	for pointer < len(diffs) {
		switch diffs[pointer].Op {
		case OpInsert:
			countInsert++
			textInsert = append(textInsert, []rune(diffs[pointer].Text)...)
			pointer++
		case OpDelete:
			countDelete++
			textDelete = append(textDelete, []rune(diffs[pointer].Text)...)
			pointer++
		case OpKeep:
			// upon reaching an equality, check for prior redundancies
			if countDelete+countInsert > 1 {
				if countDelete != 0 && countInsert != 0 {
					// factor out any common prefix
					if n := commonPrefixLength(textInsert, textDelete); n != 0 {
						x := pointer - countDelete - countInsert
						if x > 0 && diffs[x-1].Op == OpKeep {
							diffs[x-1].Text += string(textInsert[:n])
						} else {
							diffs = append([]Segment{{OpKeep, string(textInsert[:n])}}, diffs...)
							pointer++
						}
						textInsert, textDelete = textInsert[n:], textDelete[n:]
					}
					// factor out any common suffix
					if n := commonSuffixLength(textInsert, textDelete); n != 0 {
						insertIndex := len(textInsert) - n
						deleteIndex := len(textDelete) - n
						diffs[pointer].Text = string(textInsert[insertIndex:]) + diffs[pointer].Text
						textInsert, textDelete = textInsert[:insertIndex], textDelete[:deleteIndex]
					}
				}
				// delete the offending records and add the merged ones
				switch {
				case countDelete == 0:
					diffs = splice(diffs, pointer-countInsert, countInsert,
						Segment{OpInsert, string(textInsert)})
				case countInsert == 0:
					diffs = splice(diffs, pointer-countDelete, countDelete,
						Segment{OpDelete, string(textDelete)})
				default:
					diffs = splice(diffs, pointer-countDelete-countInsert, countDelete+countInsert,
						Segment{OpDelete, string(textDelete)},
						Segment{OpInsert, string(textInsert)})
				}
				pointer = pointer - countDelete - countInsert + 1
				if countDelete != 0 {
					pointer++
				}
				if countInsert != 0 {
					pointer++
				}
			} else if pointer != 0 && diffs[pointer-1].Op == OpKeep {
				// merge this equality with the previous one
				diffs[pointer-1].Text += diffs[pointer].Text
				diffs = splice(diffs, pointer, 1)
			} else {
				pointer++
			}
			countInsert, countDelete = 0, 0
			textDelete, textInsert = nil, nil
		}
	}
	if len(diffs[len(diffs)-1].Text) == 0 {
		// remove the dummy entry at the end
		diffs = diffs[:len(diffs)-1]
	}
	// second pass: look for single edits surrounded on both sides by
	// equalities which can be shifted sideways to eliminate an equality,
	// e.g: A<ins>BA</ins>C -> <ins>AB</ins>AC
	changes := false
	// the first and last element don't need checking
	for pointer = 1; pointer < len(diffs)-1; pointer++ {
		if diffs[pointer-1].Op != OpKeep || diffs[pointer+1].Op != OpKeep {
			continue
		}
		prev, cur, next := diffs[pointer-1].Text, diffs[pointer].Text, diffs[pointer+1].Text
		switch {
		case strings.HasSuffix(cur, prev):
			// shift the edit over the previous equality
			diffs[pointer].Text = prev + cur[:len(cur)-len(prev)]
			diffs[pointer+1].Text = prev + next
			diffs = splice(diffs, pointer-1, 1)
			changes = true
		case strings.HasPrefix(cur, next):
			// shift the edit over the next equality
			diffs[pointer-1].Text += next
			diffs[pointer].Text = cur[len(next):] + next
			diffs = splice(diffs, pointer+1, 1)
			changes = true
		}
	}
	// if shifts were made, the diff needs reordering and another shift sweep
	if changes {
		diffs = c.CleanupMerge(diffs)
	}
	return diffs
}

// ActualText reconstructs the actual text from a diff.
func ActualText(diffs []Segment) string {
	var buf strings.Builder
	for _, d := range diffs {
		if d.Op != OpInsert {
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// ExpectedText reconstructs the expected text from a diff.
func ExpectedText(diffs []Segment) string {
	var buf strings.Builder
	for _, d := range diffs {
		if d.Op != OpDelete {
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// Levenshtein returns the Levenshtein distance of a diff, in runes.
func Levenshtein(diffs []Segment) int {
	var distance, insertions, deletions int
	for _, d := range diffs {
		switch d.Op {
		case OpInsert:
			insertions += utf8.RuneCountInString(d.Text)
		case OpDelete:
			deletions += utf8.RuneCountInString(d.Text)
		case OpKeep:
			// a deletion and an insertion is one substitution
			distance += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return distance + max(insertions, deletions)
}
