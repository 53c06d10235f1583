package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `/* base */
a, b { color: red; margin: 0 auto }
@import url(print.css);
@media (min-width: 48em) {
  .menu { display: flex }
}
`

func TestParse(t *testing.T) {
	sheet, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, sheet.Nodes, 4)

	assert.Equal(t, CommentNode, sheet.Nodes[0].Kind)

	rule := sheet.Nodes[1]
	require.Equal(t, RulesetNode, rule.Kind)
	assert.Equal(t, []string{"a", "b"}, rule.Selectors)
	require.Len(t, rule.Children, 2)
	assert.Equal(t, "color", rule.Children[0].Name)
	assert.Equal(t, "red", rule.Children[0].Prelude)
	assert.Equal(t, "0 auto", rule.Children[1].Prelude)
	assert.Equal(t, "a,b{color:red;margin:0 auto}", rule.String())

	imp := sheet.Nodes[2]
	assert.Equal(t, AtRuleNode, imp.Kind)
	assert.Equal(t, "@import", imp.Name)
	assert.False(t, imp.Block)

	media := sheet.Nodes[3]
	assert.Equal(t, "@media", media.Name)
	assert.True(t, media.Block)
	require.Len(t, media.Children, 1)
	assert.Equal(t, []string{".menu"}, media.Children[0].Selectors)
}

func TestParseEmpty(t *testing.T) {
	sheet, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, sheet.Nodes)
	assert.Empty(t, sheet.Bytes())
}

func TestParseKeepsStringContent(t *testing.T) {
	src := `.q::before { content: "a    b" }
.quote::after { content: "\201C  " }
.grid {
  grid-template-areas:   "a  b"
                         "c  d";
}
:root { --label: "x  y" }
`
	sheet, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, sheet.Nodes, 4)

	assert.Equal(t, `"a    b"`, sheet.Nodes[0].Children[0].Prelude)
	assert.Equal(t, `"\201C  "`, sheet.Nodes[1].Children[0].Prelude)
	assert.Equal(t, `"a  b" "c  d"`, sheet.Nodes[2].Children[0].Prelude)
	assert.Contains(t, sheet.Nodes[3].Children[0].Prelude, `"x  y"`)

	out := sheet.Bytes()
	for _, literal := range []string{`"a    b"`, `"\201C  "`, `"a  b" "c  d"`, `"x  y"`} {
		assert.Contains(t, string(out), literal)
	}

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again.Bytes()))

	minified, err := Minify(out)
	require.NoError(t, err)
	assert.Contains(t, string(minified), `"a    b"`)
	assert.Contains(t, string(minified), `"a  b"`)
	assert.Contains(t, string(minified), `"c  d"`)
}
