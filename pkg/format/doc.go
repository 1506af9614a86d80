// Package format renders parsed definitions as canonical DEFINE statements.
//
// The formatter takes definitions produced by the parser package and writes
// them back with consistent keyword casing, quoting and clause order. It does
// not validate anything: whatever the parser extracted is written out.
//
// Key features:
//   - Keywords upper or lower case
//   - Comments and string values written as double quoted literals
//   - Identifiers quoted with backticks only when needed
//   - Statements longer than MaxLineLength split into one clause per line
//   - Multi-line blocks (event THEN, function bodies) re-indented
//   - A blank line before every table so each table reads as a block
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//
//	// Object-oriented API with custom options
//	formatter := format.New(format.FormatterOptions{
//		IndentSize:        2,
//		MaxLineLength:     80,
//		UppercaseKeywords: false,
//	})
//
//	var buf bytes.Buffer
//	err := formatter.Format(&buf, sql.Statements...)
//
//	// Functional API
//	err := format.Format(&buf, format.Defaults, sql.Statements...)
//
// Some clauses are normalised: FULLTEXT indexes are written with SEARCH,
// COLUMNS with FIELDS, and relation tables with IN and OUT. Definitions the
// formatter has no renderer for, such as those created through
// parser.GenericExtractor, are written from their original text.
package format
