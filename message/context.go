package message

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kenshaw/requirements/diffwriter"
)

// ErrInvalidArgument is returned when a generator is created with an
// unusable name.
var ErrInvalidArgument = errors.New("invalid argument")

// skipMarker replaces a run of equal rows or elements.
const skipMarker = StringSection("\n[...]")

// ContextGenerator explains the difference between an actual and an expected
// value. A generator is used once.
type ContextGenerator struct {
	cfg          *Config
	actualName   string
	expectedName string
	actual       any
	expected     any
	hasActual    bool
	hasExpected  bool
	allowDiff    bool
	allowLegend  bool
}

// NewContextGenerator creates a generator that labels the values with
// actualName and expectedName. A nil cfg uses the default configuration.
func NewContextGenerator(cfg *Config, actualName, expectedName string) (*ContextGenerator, error) {
	if err := CheckName("actualName", actualName); err != nil {
		return nil, err
	}
	if err := CheckName("expectedName", expectedName); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	return &ContextGenerator{
		cfg:          cfg,
		actualName:   actualName,
		expectedName: expectedName,
		allowDiff:    true,
		allowLegend:  true,
	}, nil
}

// CheckName returns ErrInvalidArgument if name cannot label a value. param
// names the argument in the error.
func CheckName(param, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%s may not be blank: %w", param, ErrInvalidArgument)
	case strings.Contains(name, ":"):
		return fmt.Errorf("%s may not contain a colon (%q): %w", param, name, ErrInvalidArgument)
	}
	return nil
}

// ActualValue sets the actual value.
func (g *ContextGenerator) ActualValue(v any) *ContextGenerator {
	g.actual, g.hasActual = v, true
	return g
}

// ExpectedValue sets the expected value.
func (g *ContextGenerator) ExpectedValue(v any) *ContextGenerator {
	g.expected, g.hasExpected = v, true
	return g
}

// AllowDiff sets whether a character diff may be rendered. Defaults to true.
func (g *ContextGenerator) AllowDiff(allow bool) *ContextGenerator {
	g.allowDiff = allow
	return g
}

// AllowLegend sets whether the legend follows a rendered diff. Defaults to
// true.
func (g *ContextGenerator) AllowLegend(allow bool) *ContextGenerator {
	g.allowLegend = allow
	return g
}

// Build returns the sections that describe the difference between the
// values. It panics if neither value was set.
func (g *ContextGenerator) Build() ([]Section, error) {
	if !g.hasActual && !g.hasExpected {
		panic("message: actual and expected values are both undefined")
	}
	if g.hasActual && g.hasExpected && isList(g.actual) && isList(g.expected) {
		a, e := reflect.ValueOf(g.actual), reflect.ValueOf(g.expected)
		if a.Len() != 0 || e.Len() != 0 {
			return g.buildList(a, e)
		}
	}
	return g.buildObjects()
}

// isList reports whether v is a slice or array other than a byte slice.
func isList(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Slice:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

func (g *ContextGenerator) buildList(a, e reflect.Value) ([]Section, error) {
	n := max(a.Len(), e.Len())
	var sections []Section
	skipped, differs := false, false
	for i := 0; i < n; i++ {
		actualName, expectedName := g.actualName, g.expectedName
		var actual, expected any
		hasActual, hasExpected := i < a.Len(), i < e.Len()
		if hasActual {
			actualName += "[" + strconv.Itoa(i) + "]"
			actual = a.Index(i).Interface()
		}
		if hasExpected {
			expectedName += "[" + strconv.Itoa(i) + "]"
			expected = e.Index(i).Interface()
		}
		equal := hasActual && hasExpected &&
			g.cfg.Text(actual) == g.cfg.Text(expected) &&
			g.cfg.Equals(actual, expected)
		differs = differs || !equal
		// first and last elements are always shown
		if equal && i != 0 && i != n-1 {
			skipped = true
			continue
		}
		if skipped {
			sections = append(sections, skipMarker)
			skipped = false
		}
		if len(sections) != 0 {
			sections = append(sections, StringSection(""))
		}
		nested, err := NewContextGenerator(g.cfg, actualName, expectedName)
		if err != nil {
			return nil, err
		}
		nested.AllowDiff(g.allowDiff).AllowLegend(false)
		if hasActual {
			nested.ActualValue(actual)
		}
		if hasExpected {
			nested.ExpectedValue(expected)
		}
		element, err := nested.Build()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		sections = append(sections, element...)
	}
	if !differs {
		sections = append(sections, g.discriminate()...)
	}
	return sections, nil
}

func (g *ContextGenerator) buildObjects() ([]Section, error) {
	var actual, expected string
	if g.hasActual {
		actual = g.cfg.Text(g.actual)
	}
	if g.hasExpected {
		expected = g.cfg.Text(g.expected)
	}
	tooLong := g.cfg.MaxLength > 0 && (len(actual) > g.cfg.MaxLength || len(expected) > g.cfg.MaxLength)
	if !g.allowDiff || tooLong || isBool(g.actual) || isBool(g.expected) {
		sections := []Section{g.diffSection(g.actualName, actual, "", g.expectedName, expected)}
		if actual == expected {
			sections = append(sections, g.discriminate()...)
		}
		return sections, nil
	}
	res, err := diffwriter.Generate(g.cfg.Engine, diffwriter.ForEncoding(g.cfg.Encoding), actual, expected)
	if err != nil {
		return nil, err
	}
	var sections []Section
	if res.Len() == 1 {
		sections = g.singleRow(res)
	} else {
		sections = g.rows(res)
	}
	if res.Equal() {
		sections = append(sections, g.discriminate()...)
	}
	return sections, nil
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (g *ContextGenerator) singleRow(res *diffwriter.Result) []Section {
	var diff string
	if lines := res.DiffLines(); len(lines) != 0 && !res.EqualLines()[0] {
		diff = lines[0]
	}
	return []Section{g.diffSection(g.actualName, res.ActualLines()[0], diff, g.expectedName, res.ExpectedLines()[0])}
}

// rows renders one section per row, collapsing runs of equal rows other than
// the first and last.
func (g *ContextGenerator) rows(res *diffwriter.Result) []Section {
	actual, expected, diff := res.ActualLines(), res.ExpectedLines(), res.DiffLines()
	equal := res.EqualLines()
	actualNumbers, expectedNumbers := res.ActualLineNumbers(), res.ExpectedLineNumbers()
	n := res.Len()

	var sections []Section
	skipped, marked := false, false
	for i := 0; i < n; i++ {
		if equal[i] && i != 0 && i != n-1 {
			skipped = true
			continue
		}
		if skipped {
			sections = append(sections, skipMarker)
			skipped = false
		}
		if len(sections) != 0 {
			sections = append(sections, StringSection(""))
		}
		var d string
		if diff != nil && !equal[i] {
			d, marked = diff[i], true
		}
		sections = append(sections, g.diffSection(
			label(g.actualName, actualNumbers[i]), actual[i],
			d,
			label(g.expectedName, expectedNumbers[i]), expected[i],
		))
	}
	if marked && g.allowLegend {
		sections = append(sections, StringSection(Legend))
	}
	return sections
}

// label returns name@line, or name for a row without a corresponding line.
func label(name string, line int) string {
	if line < 0 {
		return name
	}
	return name + "@" + strconv.Itoa(line)
}

func (g *ContextGenerator) diffSection(actualName, actual, diff, expectedName, expected string) ContextSection {
	section := ContextSection{{actualName, actual}}
	if diff != "" {
		section = append(section, Entry{"diff", diff})
	}
	return append(section, Entry{expectedName, expected})
}
