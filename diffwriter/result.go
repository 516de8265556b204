package diffwriter

import (
	"slices"

	"github.com/charmbracelet/x/ansi"
)

// Result is the frozen output of a Writer. All of its slices have one entry
// per row.
type Result struct {
	actual          []string
	expected        []string
	diff            []string
	equal           []bool
	actualNumbers   []int
	expectedNumbers []int
	distance        int
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.equal)
}

// ActualLines returns the decorated actual side of each row.
func (r *Result) ActualLines() []string {
	return slices.Clone(r.actual)
}

// ExpectedLines returns the decorated expected side of each row.
func (r *Result) ExpectedLines() []string {
	return slices.Clone(r.expected)
}

// DiffLines returns the marker row of each row. It is empty for decorators
// that do not render diff markers.
func (r *Result) DiffLines() []string {
	return slices.Clone(r.diff)
}

// EqualLines reports, for each row, whether no insert or delete touched it.
func (r *Result) EqualLines() []bool {
	return slices.Clone(r.equal)
}

// ActualLineNumbers returns the line of actual shown on each row, or -1
// where actual has no corresponding line.
func (r *Result) ActualLineNumbers() []int {
	return slices.Clone(r.actualNumbers)
}

// ExpectedLineNumbers returns the line of expected shown on each row, or -1
// where expected has no corresponding line.
func (r *Result) ExpectedLineNumbers() []int {
	return slices.Clone(r.expectedNumbers)
}

// Equal reports whether every row is equal.
func (r *Result) Equal() bool {
	return !slices.Contains(r.equal, false)
}

// Distance returns the Levenshtein distance of the edit script, in runes.
func (r *Result) Distance() int {
	return r.distance
}

// VisibleText strips escape sequences from s.
func VisibleText(s string) string {
	return ansi.Strip(s)
}
