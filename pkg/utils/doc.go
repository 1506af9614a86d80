// Package utils provides small helpers shared by the parser, schema and
// formatter packages.
//
// # Identifiers and Strings (identifier.go)
//
// Names are only quoted when they need to be:
//
//	utils.QuoteIdentifier("user")       // user
//	utils.QuoteIdentifier("user-data")  // `user-data`
//	utils.QuoteString(`say "hi"`)       // "say \"hi\""
//
// # Statement Builder (sqlbuilder.go)
//
// SQLBuilder assembles DEFINE statements clause by clause. Nil values and
// unset flags are skipped, so callers pass definition fields straight in:
//
//	sql := utils.NewSQLBuilder().
//		Define("TABLE").
//		Name(table.Name).
//		Flag("DROP", table.Drop).
//		Clause("PERMISSIONS", table.Permissions).
//		Comment(table.Comment).
//		String()
//
// Multiline renders the same statement with one clause per line.
package utils
