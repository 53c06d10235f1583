package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	header = []string{"TASK", "COMPOSITION"}
	rows   = [][]string{
		{"lint", "parallel(sassLint, scriptsLint)"},
		{"vendors", "vendors"},
	}
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"table": TableFormat, "t": TableFormat,
		"yaml": YamlFormat, "y": YamlFormat} {
		got, ok := ParseFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseFormat("lua")
	assert.False(t, ok)
	assert.Equal(t, "yaml", YamlFormat.String())
}

func TestParseTableDialect(t *testing.T) {
	dialect, ok := ParseTableDialect("markdown")
	assert.True(t, ok)
	assert.Equal(t, MarkdownTableDialect, dialect)
	assert.Equal(t, "markdown", dialect.String())
	_, ok = ParseTableDialect("jira")
	assert.False(t, ok)
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(header, rows, Opts{})
	assert.Contains(t, out, "TASK")
	assert.Contains(t, out, "parallel(sassLint, scriptsLint)")
	assert.NotContains(t, out, "|")
	assert.NotContains(t, out, "+")

	out = RenderTable(header, rows, Opts{Graphics: true})
	assert.Contains(t, out, "|")

	out = RenderTable(header, rows, Opts{TableDialect: MarkdownTableDialect})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "| TASK"))
	assert.Contains(t, lines[1], "---")
}

func TestRenderTableColumnWidth(t *testing.T) {
	out := RenderTable(header, rows, Opts{ColumnWidthMax: 10})
	assert.NotContains(t, out, "parallel(sassLint, scriptsLint)")
	assert.Contains(t, out, "+")
}

func TestMakeOutputYaml(t *testing.T) {
	out, err := MakeOutput(header, rows, YamlFormat, Opts{})
	require.NoError(t, err)
	assert.Equal(t, `- TASK: lint
  COMPOSITION: parallel(sassLint, scriptsLint)
- TASK: vendors
  COMPOSITION: vendors
`, out)
}
