package engines

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v2"
)

var nonMachineNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// machineName converts a human readable name to a Drupal machine name:
// lower snake case, starting with a letter.
func machineName(in string) string {
	name := nonMachineNameChars.ReplaceAllString(strcase.ToSnake(in), "_")
	name = strings.Trim(name, "_")
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "theme_" + name
	}
	return name
}

// title upper-cases the first letter of every word of a snake, kebab or
// space separated name.
func title(in string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(in))
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}

// yamlString renders in as a YAML scalar, quoting it when needed.
func yamlString(in string) (string, error) {
	out, err := yaml.Marshal(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// jsonString renders in as a JSON string literal, quotes included.
func jsonString(in string) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(in); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// builtinFuncs returns the functions available in every template.
func builtinFuncs() map[string]interface{} {
	return map[string]interface{}{
		"snake":       strcase.ToSnake,
		"kebab":       strcase.ToKebab,
		"camel":       strcase.ToCamel,
		"lowerCamel":  strcase.ToLowerCamel,
		"machineName": machineName,
		"upper":       strings.ToUpper,
		"lower":       strings.ToLower,
		"title":       title,
		"yaml":        yamlString,
		"json":        jsonString,
	}
}
