package message

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/kenshaw/requirements/diffwriter"
	"github.com/kenshaw/requirements/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, cfg *Config, actual, expected any, opts ...func(*ContextGenerator)) []Section {
	t.Helper()
	g, err := NewContextGenerator(cfg, "actual", "expected")
	require.NoError(t, err)
	g.ActualValue(actual).ExpectedValue(expected)
	for _, o := range opts {
		o(g)
	}
	sections, err := g.Build()
	require.NoError(t, err)
	return sections
}

func noLegend(g *ContextGenerator) {
	g.AllowLegend(false)
}

func TestBuildSingleLine(t *testing.T) {
	sections := build(t, nil, "int[6]", "int[5]")
	assert.Equal(t, []Section{
		ContextSection{
			{"actual", `"int[6 ]"\0`},
			{"diff", `=====-+====`},
			{"expected", `"int[ 5]"\0`},
		},
	}, sections)
}

func TestBuildEmptyActual(t *testing.T) {
	sections := build(t, nil, "", "text")
	assert.Equal(t, []Section{
		ContextSection{
			{"actual", `"    "\0`},
			{"diff", `=++++===`},
			{"expected", `"text"\0`},
		},
	}, sections)
}

func TestBuildMultiLine(t *testing.T) {
	sections := build(t, nil, "1\n2\n3\n4\n5", "1\n2\n9\n4\n5", noLegend)
	expected := `actual@0  : "1\n
expected@0: "1\n

[...]

actual@2  : 3 \n
diff      : -+==
expected@2:  9\n

[...]

actual@4  : 5"\0
expected@4: 5"\0`
	assert.Equal(t, expected, FormatAligned(sections))
}

func TestBuildLegend(t *testing.T) {
	sections := build(t, nil, "1\n2\n3\n4\n5", "1\n2\n9\n4\n5")
	require.NotEmpty(t, sections)
	assert.Equal(t, StringSection(Legend), sections[len(sections)-1])

	// colors convey the difference; there are no markers to explain
	cfg := NewDefaultConfig()
	cfg.Encoding = terminal.Xterm256
	sections = build(t, cfg, "1\n2\n3\n4\n5", "1\n2\n9\n4\n5")
	for _, s := range sections {
		assert.NotEqual(t, StringSection(Legend), s)
	}
}

func TestBuildLeadingNewline(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.StringMapper = func(v any) string { return fmt.Sprint(v) }
	sections := build(t, cfg, "\nactual", "expected", noLegend)
	require.NotEmpty(t, sections)
	first := sections[0].(ContextSection)
	assert.Equal(t, "actual@0", first[0].Key)
	// expected has nothing but padding on the first row
	assert.Equal(t, "expected", first[len(first)-1].Key)
	last := sections[len(sections)-1].(ContextSection)
	assert.Equal(t, "actual@1", last[0].Key)
	assert.Equal(t, "expected@0", last[len(last)-1].Key)
}

func TestBuildBoolean(t *testing.T) {
	sections := build(t, nil, true, false)
	assert.Equal(t, []Section{
		ContextSection{
			{"actual", "true"},
			{"expected", "false"},
		},
	}, sections)
}

func TestBuildDiffDisabled(t *testing.T) {
	sections := build(t, nil, "a\nb", "a\nc", func(g *ContextGenerator) { g.AllowDiff(false) })
	assert.Equal(t, []Section{
		ContextSection{
			{"actual", "\"a\nb\""},
			{"expected", "\"a\nc\""},
		},
	}, sections)

	cfg := NewDefaultConfig()
	cfg.MaxLength = 4
	sections = build(t, cfg, "abcdef", "abcxyz")
	assert.Equal(t, []Section{
		ContextSection{
			{"actual", `"abcdef"`},
			{"expected", `"abcxyz"`},
		},
	}, sections)
}

func TestBuildColors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Encoding = terminal.RGB888
	sections := build(t, cfg, "int[6]", "int[5]")
	require.Len(t, sections, 1)
	section := sections[0].(ContextSection)
	require.Len(t, section, 2)
	assert.Equal(t, `"int[6/]"\0`, diffwriter.VisibleText(section[0].Value))
	assert.Equal(t, `"int[/5]"\0`, diffwriter.VisibleText(section[1].Value))
}

func TestBuildList(t *testing.T) {
	sections := build(t, nil, []int{1, 2, 3, 4, 5}, []int{1, 2, 9, 4, 5})
	expected := `actual[0]  : 1\0
expected[0]: 1\0

[...]

actual[2]  : 3 \0
diff       : -+==
expected[2]:  9\0

[...]

actual[4]  : 5\0
expected[4]: 5\0`
	assert.Equal(t, expected, FormatAligned(sections))
}

func TestBuildListIdenticalElements(t *testing.T) {
	sections := build(t, nil, []int{1, 2, 3}, [3]int{1, 2, 3})
	expected := `actual[0]    : 1\0
expected[0]  : 1\0

[...]

actual[2]    : 3\0
expected[2]  : 3\0

actual.type  : []int
expected.type: [3]int`
	assert.Equal(t, expected, FormatAligned(sections))

	sections = build(t, nil, []any{1, 2}, []int{1, 2})
	require.NotEmpty(t, sections)
	assert.Equal(t, ContextSection{{"actual.type", "[]interface {}"}, {"expected.type", "[]int"}}, sections[len(sections)-1])

	// equal lists need no explanation
	sections = build(t, nil, []int{1, 2}, []int{1, 2})
	for _, s := range sections {
		assert.NotEqual(t, StringSection(NotEqualNote), s)
		if c, ok := s.(ContextSection); ok {
			assert.NotContains(t, c[0].Key, ".type")
		}
	}
}

func TestBuildListDifferentLengths(t *testing.T) {
	sections := build(t, nil, []string{"1", "2"}, []string{"1"})
	assert.Equal(t, []Section{
		ContextSection{
			{"actual[0]", `"1"\0`},
			{"expected[0]", `"1"\0`},
		},
		StringSection(""),
		ContextSection{
			{"actual[1]", `"2"\0`},
			{"diff", `---==`},
			{"expected", `   \0`},
		},
	}, sections)
}

type point struct {
	X int
}

func (p *point) String() string {
	return "point"
}

func TestBuildDiscriminators(t *testing.T) {
	tests := []struct {
		Name     string
		Actual   any
		Expected any
		Suffix   string
	}{
		{"Type", int32(5), int64(5), ".type"},
		{"Hash", &point{1}, &point{2}, ".hash"},
		{"Identity", &point{1}, &point{1}, ".identity"},
	}
	for i, test := range tests {
		msg := fmt.Sprintf("Test case #%d, %s", i, test.Name)
		sections := build(t, nil, test.Actual, test.Expected)
		require.Len(t, sections, 3, msg)
		base := sections[0].(ContextSection)
		assert.Len(t, base, 2, msg)
		assert.Equal(t, StringSection(""), sections[1], msg)
		extra := sections[2].(ContextSection)
		require.Len(t, extra, 2, msg)
		assert.Equal(t, "actual"+test.Suffix, extra[0].Key, msg)
		assert.Equal(t, "expected"+test.Suffix, extra[1].Key, msg)
		assert.NotEqual(t, extra[0].Value, extra[1].Value, msg)
	}
	sections := build(t, nil, int32(5), int64(5))
	assert.Equal(t, ContextSection{{"actual.type", "int32"}, {"expected.type", "int64"}}, sections[2])
}

func TestBuildNotEqualNote(t *testing.T) {
	sections := build(t, nil, math.NaN(), math.NaN())
	require.Len(t, sections, 3)
	assert.Equal(t, StringSection(NotEqualNote), sections[2])

	cfg := NewDefaultConfig()
	cfg.Equal = func(a, b any) bool { return false }
	sections = build(t, cfg, "x\ny", "x\ny")
	assert.Equal(t, []Section{
		ContextSection{
			{"actual@0", `"x\n`},
			{"expected@0", `"x\n`},
		},
		StringSection(""),
		ContextSection{
			{"actual@1", `y"\0`},
			{"expected@1", `y"\0`},
		},
		StringSection(""),
		StringSection(NotEqualNote),
	}, sections)
}

func TestBuildEqual(t *testing.T) {
	sections := build(t, nil, 42, 42)
	assert.Equal(t, []Section{
		ContextSection{
			{"actual", `42\0`},
			{"expected", `42\0`},
		},
	}, sections)
}

func TestNewContextGeneratorInvalidNames(t *testing.T) {
	tests := []struct {
		Actual   string
		Expected string
	}{
		{"", "expected"},
		{"   ", "expected"},
		{"actual", ""},
		{"act:ual", "expected"},
		{"actual", "expected:"},
	}
	for i, test := range tests {
		_, err := NewContextGenerator(nil, test.Actual, test.Expected)
		assert.True(t, errors.Is(err, ErrInvalidArgument), fmt.Sprintf("Test case #%d", i))
	}
}

func TestBuildWithoutValuesPanics(t *testing.T) {
	g, err := NewContextGenerator(nil, "actual", "expected")
	require.NoError(t, err)
	assert.Panics(t, func() {
		_, _ = g.Build()
	})
}

func TestFormat(t *testing.T) {
	sections := []Section{
		ContextSection{{"a", "1"}, {"bb", "2"}},
		StringSection("text"),
		ContextSection{{"ccc", "3"}},
	}
	assert.Equal(t, "a : 1\nbb: 2\ntext\nccc: 3", Format(sections))
	assert.Equal(t, "a  : 1\nbb : 2\ntext\nccc: 3", FormatAligned(sections))
	assert.Equal(t, 3, KeyWidth(sections))
	assert.Equal(t, "", Format(nil))
}

func TestDefaultStringMapper(t *testing.T) {
	var nilPoint *point
	tests := []struct {
		Value    any
		Expected string
	}{
		{nil, "nil"},
		{"text", `"text"`},
		{42, "42"},
		{3.5, "3.5"},
		{true, "true"},
		{errors.New("failed"), "failed"},
		{&point{1}, "point"},
		{nilPoint, "*message.point(nil)"},
		{[]int(nil), "[]int(nil)"},
	}
	for i, test := range tests {
		assert.Equal(t, test.Expected, DefaultStringMapper(test.Value), fmt.Sprintf("Test case #%d", i))
	}
}

func TestDefaultEqual(t *testing.T) {
	a, b := &point{1}, &point{1}
	assert.True(t, DefaultEqual(1, 1))
	assert.False(t, DefaultEqual(int32(1), int64(1)))
	assert.True(t, DefaultEqual(a, a))
	assert.False(t, DefaultEqual(a, b))
	assert.True(t, DefaultEqual([]int{1, 2}, []int{1, 2}))
	assert.False(t, DefaultEqual([]int{1, 2}, []int{2, 1}))
	assert.True(t, DefaultEqual(map[string]int{"a": 1}, map[string]int{"a": 1}))
}
