package format

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/parser"
)

// aliases maps keywords the formatter rewrites to the spelling it writes.
var aliases = map[string]string{
	"FULLTEXT": "SEARCH",
	"COLUMNS":  "FIELDS",
	"FROM":     "IN",
	"TO":       "OUT",
	"NS":       "NAMESPACE",
	"DB":       "DATABASE",
}

// covers reports whether every token of source occurs in rendered at least as
// often. Words compare case-insensitively and through aliases, quoted
// identifiers by their name, numbers without digit separators and string
// literals by their content. Tokens the formatter adds (TABLE after ON,
// commas, the terminator) are allowed.
func covers(source, rendered string) bool {
	counts := make(map[string]int)
	for _, lexeme := range parser.Lexemes(rendered) {
		counts[lexemeKey(lexeme)]++
	}

	for _, lexeme := range parser.Lexemes(source) {
		key := lexemeKey(lexeme)
		if counts[key] == 0 {
			return false
		}
		counts[key]--
	}

	return true
}

func lexemeKey(lexeme string) string {
	switch {
	case lexeme == "":
		return lexeme
	case lexeme[0] == '"' || lexeme[0] == '\'':
		return "'" + literalContent(lexeme)
	case lexeme[0] == '`':
		return strings.ToUpper(strings.ReplaceAll(strings.Trim(lexeme, "`"), "\\`", "`"))
	case strings.HasPrefix(lexeme, "⟨"):
		return strings.ToUpper(strings.TrimSuffix(strings.TrimPrefix(lexeme, "⟨"), "⟩"))
	case lexeme[0] >= '0' && lexeme[0] <= '9':
		return strings.ReplaceAll(lexeme, "_", "")
	}

	upper := strings.ToUpper(lexeme)
	if alias, ok := aliases[upper]; ok {
		return alias
	}
	return upper
}

// literalContent strips the quotes of a string literal and resolves escaped
// quotes only, so `'it\'s'` and `"it's"` match while `"a\nb"` and `"a\\nb"`
// do not.
func literalContent(lexeme string) string {
	inner := lexeme[1 : len(lexeme)-1]

	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			if next := inner[i+1]; next == '"' || next == '\'' {
				b.WriteByte(next)
			} else {
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i++
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
