package emit

import (
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// CommonPrefix returns the longest byte prefix shared by all keys.
func CommonPrefix(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	prefix := keys[0]
	for _, key := range keys[1:] {
		i := 0
		for i < len(prefix) && i < len(key) && prefix[i] == key[i] {
			i++
		}
		prefix = prefix[:i]
	}
	return prefix
}

// StrippablePrefix returns the common prefix of names, shortened so that
// stripping it leaves every name a valid identifier: non-empty and not
// starting with a digit. It backs off one '_' boundary at a time and returns
// "" when no boundary works.
func StrippablePrefix(names []string) string {
	prefix := CommonPrefix(names)
	for prefix != "" {
		if strippable(names, prefix) {
			return prefix
		}
		i := strings.LastIndexByte(prefix[:len(prefix)-1], '_')
		if i < 0 {
			break
		}
		prefix = prefix[:i+1]
	}
	return ""
}

func strippable(names []string, prefix string) bool {
	for _, name := range names {
		rest := name[len(prefix):]
		if rest == "" || (rest[0] >= '0' && rest[0] <= '9') {
			return false
		}
	}
	return true
}

// SnakeToPascal converts UPPER_SNAKE_CASE or lower_snake_case to PascalCase,
// e.g. SCISSOR_START to ScissorStart.
func SnakeToPascal(s string) string {
	return strcase.ToCamel(strings.ToLower(s))
}

// Substitute replaces every {{name}} marker in template with sections[name].
// Markers without a section are left in place.
func Substitute(template string, sections map[string]string) string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{{"+name+"}}", sections[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
