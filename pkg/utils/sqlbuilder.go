package utils

import (
	"strings"
)

// SQLBuilder provides a fluent interface for building DEFINE statements.
// The statement head (DEFINE, kind, modifiers, name and ON target) and each
// clause are kept apart, so a statement can be written on one line or with
// one clause per line.
//
// Example usage:
//
//	sql := utils.NewSQLBuilder().
//		Define("FIELD").
//		IfNotExists(true).
//		Name("email").
//		On("TABLE", "user").
//		Clause("TYPE", utils.Ptr("string")).
//		Flag("READONLY", true).
//		Comment(utils.Ptr("primary address")).
//		String()
//	// Output: DEFINE FIELD IF NOT EXISTS email ON TABLE user TYPE string READONLY COMMENT "primary address";
type SQLBuilder struct {
	lower   bool
	head    []string
	clauses [][]string
}

// NewSQLBuilder creates a new SQLBuilder instance.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{
		head: make([]string, 0, 8),
	}
}

// Lowercase makes the builder write keywords in lower case.
func (b *SQLBuilder) Lowercase(lower bool) *SQLBuilder {
	b.lower = lower
	return b
}

// Keyword returns kw in the builder's keyword case.
func (b *SQLBuilder) Keyword(kw string) string {
	if b.lower {
		return strings.ToLower(kw)
	}
	return strings.ToUpper(kw)
}

// Define starts the statement with DEFINE and the kind keyword.
//
// Example:
//
//	builder.Define("TABLE")  // DEFINE TABLE
func (b *SQLBuilder) Define(kind string) *SQLBuilder {
	b.head = append(b.head, b.Keyword("DEFINE"), b.Keyword(kind))
	return b
}

// Overwrite adds OVERWRITE when set.
func (b *SQLBuilder) Overwrite(set bool) *SQLBuilder {
	if set {
		b.head = append(b.head, b.Keyword("OVERWRITE"))
	}
	return b
}

// IfNotExists adds IF NOT EXISTS when set.
func (b *SQLBuilder) IfNotExists(set bool) *SQLBuilder {
	if set {
		b.head = append(b.head, b.Keyword("IF NOT EXISTS"))
	}
	return b
}

// Name adds the statement name, quoting it when needed.
//
// Example:
//
//	builder.Name("user")       // user
//	builder.Name("user-data")  // `user-data`
func (b *SQLBuilder) Name(name string) *SQLBuilder {
	b.head = append(b.head, QuoteIdentifier(name))
	return b
}

// Head adds text to the statement head as is.
//
// Example:
//
//	builder.Head("$api_key")  // $api_key
func (b *SQLBuilder) Head(text string) *SQLBuilder {
	if text != "" {
		b.head = append(b.head, text)
	}
	return b
}

// On adds an ON target. The kind may be empty.
//
// Example:
//
//	builder.On("TABLE", "user")  // ON TABLE user
//	builder.On("", "ROOT")       // ON ROOT
func (b *SQLBuilder) On(kind, target string) *SQLBuilder {
	if target == "" {
		return b
	}

	b.head = append(b.head, b.Keyword("ON"))
	if kind != "" {
		b.head = append(b.head, b.Keyword(kind))
	}
	b.head = append(b.head, target)
	return b
}

// Clause adds a keyword followed by a value written as is. Nothing is added
// when value is nil.
//
// Example:
//
//	builder.Clause("ASSERT", utils.Ptr("$value > 0"))  // ASSERT $value > 0
func (b *SQLBuilder) Clause(kw string, value *string) *SQLBuilder {
	if value != nil {
		b.clauses = append(b.clauses, []string{b.Keyword(kw), *value})
	}
	return b
}

// ClauseOrFlag is Clause, except that an empty value writes the keyword alone.
//
// Example:
//
//	builder.ClauseOrFlag("REFERENCE", utils.Ptr(""))  // REFERENCE
func (b *SQLBuilder) ClauseOrFlag(kw string, value *string) *SQLBuilder {
	if value != nil && *value == "" {
		return b.Flag(kw, true)
	}
	return b.Clause(kw, value)
}

// Quoted adds a keyword followed by a double quoted string.
//
// Example:
//
//	builder.Quoted("BACKEND", utils.Ptr("memory"))  // BACKEND "memory"
func (b *SQLBuilder) Quoted(kw string, value *string) *SQLBuilder {
	if value != nil {
		b.clauses = append(b.clauses, []string{b.Keyword(kw), QuoteString(*value)})
	}
	return b
}

// Value adds a keyword followed by a value that was either a string literal
// (quoted) or an expression written as is.
//
// Example:
//
//	builder.Value("VALUE", utils.Ptr("EUR"), true)   // VALUE "EUR"
//	builder.Value("VALUE", utils.Ptr("true"), true)  // VALUE "true"
//	builder.Value("VALUE", utils.Ptr("18"), false)   // VALUE 18
func (b *SQLBuilder) Value(kw string, value *string, quoted bool) *SQLBuilder {
	if value == nil {
		return b
	}
	if quoted {
		return b.Quoted(kw, value)
	}
	return b.Clause(kw, value)
}

// Flag adds a keyword on its own when set.
func (b *SQLBuilder) Flag(kw string, set bool) *SQLBuilder {
	if set {
		b.clauses = append(b.clauses, []string{b.Keyword(kw)})
	}
	return b
}

// List adds a keyword followed by comma separated items. Nothing is added for
// an empty list.
//
// Example:
//
//	builder.List("FIELDS", []string{"a", "b"})  // FIELDS a, b
func (b *SQLBuilder) List(kw string, items []string) *SQLBuilder {
	if len(items) > 0 {
		b.clauses = append(b.clauses, []string{b.Keyword(kw), strings.Join(items, ", ")})
	}
	return b
}

// Comment adds a COMMENT clause with the comment quoted and escaped.
//
// Example:
//
//	builder.Comment(utils.Ptr(`the "main" table`))  // COMMENT "the \"main\" table"
func (b *SQLBuilder) Comment(comment *string) *SQLBuilder {
	return b.Quoted("COMMENT", comment)
}

// Raw adds a clause made of text written as is.
//
// Example:
//
//	builder.Raw("SCHEMAFULL")  // SCHEMAFULL
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.clauses = append(b.clauses, []string{sql})
	}
	return b
}

// String builds and returns the statement on one line with a semicolon.
//
// Example:
//
//	sql := builder.Define("TABLE").Name("user").String()
//	// Returns: "DEFINE TABLE user;"
func (b *SQLBuilder) String() string {
	sql := b.StringWithoutSemicolon()
	if sql == "" {
		return ""
	}
	return sql + ";"
}

// StringWithoutSemicolon builds and returns the statement on one line without
// a semicolon.
func (b *SQLBuilder) StringWithoutSemicolon() string {
	parts := make([]string, 0, len(b.head)+2*len(b.clauses))
	parts = append(parts, b.head...)
	for _, clause := range b.clauses {
		parts = append(parts, clause...)
	}
	return strings.Join(parts, " ")
}

// Multiline builds the statement with the head on the first line and every
// clause on its own line, indented by indent.
//
// Example:
//
//	sql := builder.Define("TABLE").Name("user").Raw("SCHEMAFULL").Multiline("    ")
//	// Returns: "DEFINE TABLE user\n    SCHEMAFULL;"
func (b *SQLBuilder) Multiline(indent string) string {
	if len(b.head) == 0 && len(b.clauses) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(b.head, " "))
	for _, clause := range b.clauses {
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString(indentContinuation(strings.Join(clause, " "), indent))
	}
	sb.WriteString(";")

	return sb.String()
}

// indentContinuation indents every line of s after the first.
func indentContinuation(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}
