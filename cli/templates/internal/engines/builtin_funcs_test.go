package engines

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestMachineName(t *testing.T) {
	cases := map[string]string{
		"Rustique Commerce": "rustique_commerce",
		"rustique-commerce": "rustique_commerce",
		"my.site (dev)":     "my_site_dev",
		"2024 site":         "theme_2024_site",
		"":                  "",
	}
	for in, expected := range cases {
		assert.Equal(t, expected, machineName(in), "input %q", in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Rustique Commerce", title("rustique_commerce"))
	assert.Equal(t, "Rustique Commerce", title("rustique-commerce"))
	assert.Equal(t, "", title(""))

	for in, expected := range map[string]string{
		"éles_kés":  "Éles Kés",
		"über-shop": "Über Shop",
	} {
		out := title(in)
		assert.True(t, utf8.ValidString(out), "input %q", in)
		assert.Equal(t, expected, out)
	}
}

func TestYamlString(t *testing.T) {
	for _, in := range []string{
		"Drupal's theme",
		"key: value",
		"'quoted' and \"double\"",
		"# not a comment",
		"plain",
	} {
		out, err := yamlString(in)
		require.NoError(t, err)

		var doc map[string]string
		require.NoError(t, yaml.Unmarshal([]byte("description: "+out+"\n"), &doc), "input %q", in)
		assert.Equal(t, in, doc["description"])
	}
}

func TestJsonString(t *testing.T) {
	in := `Theme "Rustique" \ by Ádám <adam@example.com>`
	out, err := jsonString(in)
	require.NoError(t, err)
	assert.Contains(t, out, "<adam@example.com>")

	var decoded string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, in, decoded)
}

func TestBuiltinFuncsCase(t *testing.T) {
	funcs := builtinFuncs()
	snake := funcs["snake"].(func(string) string)
	kebab := funcs["kebab"].(func(string) string)
	assert.Equal(t, "rustique_commerce", snake("RustiqueCommerce"))
	assert.Equal(t, "rustique-commerce", kebab("rustique_commerce"))
}
