package chardiff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		Name     string
		Actual   string
		Expected string
		Segments []Segment
	}{
		{
			"Equal",
			"abc",
			"abc",
			[]Segment{{OpKeep, "abc"}},
		},
		{
			"Both empty",
			"",
			"",
			[]Segment{},
		},
		{
			"Replace within brackets",
			"int[6]",
			"int[5]",
			[]Segment{
				{OpKeep, "int["},
				{OpDelete, "6"},
				{OpInsert, "5"},
				{OpKeep, "]"},
			},
		},
		{
			"Word boundaries",
			"The dog is brown",
			"The fox is down",
			[]Segment{
				{OpKeep, "The "},
				{OpDelete, "dog"},
				{OpInsert, "fox"},
				{OpKeep, " is "},
				{OpDelete, "br"},
				{OpInsert, "d"},
				{OpKeep, "own"},
			},
		},
		{
			"Multi-line sentinel is removed",
			"1\n2\n3\n4\n5",
			"1\n2\n9\n4\n5",
			[]Segment{
				{OpKeep, "1\n2\n"},
				{OpDelete, "3"},
				{OpInsert, "9"},
				{OpKeep, "\n4\n5"},
			},
		},
		{
			"Insert into empty",
			"",
			"text",
			[]Segment{{OpInsert, "text"}},
		},
	}
	config := NewDefaultConfig()
	for i, test := range tests {
		actual := config.Compute(test.Actual, test.Expected)
		assert.Equal(t, test.Segments, actual, fmt.Sprintf("Test case #%d, %s", i, test.Name))
	}
}

func TestComputeConcatenation(t *testing.T) {
	tests := []struct {
		Name     string
		Actual   string
		Expected string
	}{
		{"Trailing newline", "actualactual\n", "expectedexpected"},
		{"Leading newline", "\nactualactual", "expectedexpected"},
		{"Carriage return", "value\r", "value"},
		{"Windows line endings", "a\r\nb\r\nc", "a\nb\nc"},
		{"Embedded NUL in expected", "x\n", "x\n\x00"},
		{"Embedded NUL in actual", "x\n\x00", "x\n"},
		{"NUL on both sides", "a\x00\nb", "a\x00\nc\x00"},
		{"Unicode", "星球大戰\n新的希望", "star wars\na new hope"},
		{"Invalid UTF-8", "\xe0\xe5\n", "\xe0\n"},
		{"Invalid UTF-8 only", "\xe0", "\xe5"},
		{"Truncated sequence", "caf\xc3", "caf\xc3\xa9"},
		{"Invalid UTF-8 and private use", "\U000f00e0\xe0", "\xe0\U000f00e5"},
		{"Long", strings.Repeat("lorem ipsum\n", 40), strings.Repeat("lorem ipsam\n", 41)},
	}
	for _, cleanup := range []Cleanup{CleanupSemantic, CleanupEfficiency, CleanupNone} {
		config := NewDefaultConfig()
		config.Cleanup = cleanup
		for i, test := range tests {
			msg := fmt.Sprintf("Test case #%d, %s, %s", i, test.Name, cleanup)
			segments := config.Compute(test.Actual, test.Expected)
			for _, s := range segments {
				require.NotEmpty(t, s.Text, msg)
			}
			assert.Equal(t, test.Actual, ActualText(segments), msg)
			assert.Equal(t, test.Expected, ExpectedText(segments), msg)
		}
	}
}

func TestComputeInvalidUTF8(t *testing.T) {
	assert.Equal(t, []Segment{{OpDelete, "\xe0"}, {OpInsert, "\xe5"}}, Compute("\xe0", "\xe5"))
	assert.Equal(t, []Segment{{OpDelete, "\xe0"}, {OpInsert, "\xe5"}, {OpKeep, " long value"}}, Compute("\xe0 long value", "\xe5 long value"))
	assert.Equal(t, []Segment{{OpKeep, "\xff\xfe"}}, Compute("\xff\xfe", "\xff\xfe"))
}

func TestByteMappingWindow(t *testing.T) {
	assert.Nil(t, newByteMapping("valid", "星球"))
	m := newByteMapping("\xe0", "")
	require.NotNil(t, m)
	assert.Equal(t, rune(byteWindowFirst), m.base)
	m = newByteMapping("\U000f0001\xe0", "")
	require.NotNil(t, m)
	assert.Equal(t, rune(byteWindowFirst+256), m.base)
	s := "a\xe0\U000f0001b\xff"
	assert.Equal(t, s, m.decode(m.encode(s)))
}

func TestCleanupString(t *testing.T) {
	assert.Equal(t, "semantic", CleanupSemantic.String())
	assert.Equal(t, "efficiency", CleanupEfficiency.String())
	assert.Equal(t, "none", CleanupNone.String())
	assert.Equal(t, "unknown", Cleanup(42).String())
	assert.Equal(t, "Keep", OpKeep.String())
	assert.Equal(t, "Insert", OpInsert.String())
	assert.Equal(t, "Delete", OpDelete.String())
}
