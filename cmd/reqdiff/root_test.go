package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kenshaw/requirements/diffwriter"
	"github.com/kenshaw/requirements/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootEqual(t *testing.T) {
	stdout, _, err := execute(t, "--encoding", "none", "--string", "same", "same")
	require.NoError(t, err)
	assert.Equal(t, "values are equal\n", stdout)
}

func TestRootStrings(t *testing.T) {
	stdout, _, err := execute(t, "--encoding", "none", "--string", "int[6]", "int[5]")
	assert.ErrorIs(t, err, errDiffer)
	expected := `actual  : int[6 ]\0
diff    : ====-+===
expected: int[ 5]\0
values differ (edit distance 1)
`
	assert.Equal(t, expected, stdout)
}

func TestRootFiles(t *testing.T) {
	actual := writeFile(t, "actual.txt", "1\n2\n3")
	expected := writeFile(t, "expected.txt", "1\n9\n3")
	stdout, _, err := execute(t, "--encoding", "none", actual, expected)
	assert.ErrorIs(t, err, errDiffer)
	assert.Contains(t, stdout, message.Legend)
	assert.Contains(t, stdout, "actual@1  : 2 \\n")

	stdout, _, err = execute(t, "--encoding", "none", "--legend=false", actual, expected)
	assert.ErrorIs(t, err, errDiffer)
	assert.NotContains(t, stdout, "Legend")
}

func TestRootNoDiff(t *testing.T) {
	stdout, _, err := execute(t, "--encoding", "none", "--no-diff", "--string", "abc", "abd")
	assert.ErrorIs(t, err, errDiffer)
	assert.Equal(t, "actual  : abc\nexpected: abd\nvalues differ (edit distance 1)\n", stdout)
}

func TestRootRaw(t *testing.T) {
	stdout, _, err := execute(t, "--encoding", "none", "--raw", "--string", "abc", "abd")
	assert.ErrorIs(t, err, errDiffer)
	assert.Equal(t, "ab[-c-]{+d+}\nvalues differ (edit distance 1)\n", stdout)
}

func TestRootConfig(t *testing.T) {
	path := writeFile(t, "reqdiff.toml", "[diff]\nencoding = \"none\"\nallow_diff = false\n")
	stdout, _, err := execute(t, "--config", path, "--string", "abc", "abd")
	assert.ErrorIs(t, err, errDiffer)
	assert.Equal(t, "actual  : abc\nexpected: abd\nvalues differ (edit distance 1)\n", stdout)
}

func TestRootLogging(t *testing.T) {
	_, stderr, err := execute(t, "--encoding", "none", "--log-level", "debug", "--string", "a", "a")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "read inputs")
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", []string{"--string", "a"}},
		{"bad encoding", []string{"--encoding", "cga", "--string", "a", "b"}},
		{"bad log level", []string{"--log-level", "loud", "--string", "a", "b"}},
		{"negative max length", []string{"--max-length", "-1", "--string", "a", "b"}},
		{"missing file", []string{"--encoding", "none", filepath.Join(t.TempDir(), "nope"), "b"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "nope.toml"), "--string", "a", "b"}},
	}
	for _, test := range tests {
		_, _, err := execute(t, test.args...)
		assert.Error(t, err, test.name)
		assert.NotErrorIs(t, err, errDiffer, test.name)
	}
}

func TestRootRawColors(t *testing.T) {
	stdout, _, err := execute(t, "--encoding", "xterm-16", "--raw", "--string", "abc", "abd")
	assert.ErrorIs(t, err, errDiffer)
	assert.Contains(t, stdout, "\x1b[")
	assert.NotContains(t, stdout, "[-")
	assert.Contains(t, diffwriter.VisibleText(stdout), "abcd\n")
}
