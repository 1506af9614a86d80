package utils

import (
	"regexp"
	"strings"
)

// plainIdentifier matches names that can be written without quoting,
// including paths such as `address.city`, `tags[*]` and `mod::tax`.
var plainIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:\[\]*]*$`)

// IsPlainIdentifier reports whether name can be written without backticks.
//
// Examples:
//   - "user" -> true
//   - "address.city" -> true
//   - "mod::tax" -> true
//   - "user-data" -> false
//   - "1st" -> false
//   - "" -> false
func IsPlainIdentifier(name string) bool {
	return plainIdentifier.MatchString(name)
}

// QuoteIdentifier wraps name in backticks unless it is a plain identifier.
// Backticks inside the name are escaped.
//
// Examples:
//   - "user" -> "user"
//   - "user-data" -> "`user-data`"
//   - "odd`name" -> "`odd\`name`"
//   - "" -> "``"
func QuoteIdentifier(name string) string {
	if IsPlainIdentifier(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "\\`") + "`"
}

// QuoteString writes value as a double quoted literal, escaping backslashes
// and double quotes.
//
// Examples:
//   - `hello` -> `"hello"`
//   - `say "hi"` -> `"say \"hi\""`
//   - `C:\tmp` -> `"C:\\tmp"`
func QuoteString(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
