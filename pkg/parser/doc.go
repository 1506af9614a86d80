// Package parser turns schema scripts made of DEFINE statements into typed
// definitions.
//
// Parsing happens in three stages. Comments are stripped from the whole
// script, the remaining text is split into statements on `;` while keeping
// `{ ... }` bodies intact, and each statement is dispatched on the keyword
// after DEFINE to an extractor registered for it.
//
// Supported statement kinds:
//   - TABLE, FIELD, EVENT, INDEX
//   - PARAM, FUNCTION, ANALYZER, SEQUENCE
//   - USER, ACCESS
//   - BUCKET, MODULE
//
// Extraction is deliberately lenient. Only the statement header is validated;
// inside a statement, clauses that are not recognised are ignored and missing
// clauses stay nil. Expressions (ASSERT, VALUE, PERMISSIONS, function bodies
// and so on) are kept as the raw source text.
//
// Basic usage:
//
//	sql, err := parser.ParseString(`
//	    DEFINE TABLE user SCHEMAFULL;
//	    DEFINE FIELD email ON TABLE user TYPE string;
//	    DEFINE INDEX email_idx ON TABLE user FIELDS email UNIQUE;
//	`)
//
//	// Parse from file
//	sql, err := parser.ParseFile("schema/main.surql")
//
// Failures never abort a script. ParseString returns every definition it could
// extract along with a ParseErrors value describing each statement that was
// rejected, either as invalid syntax or as an unknown statement kind.
//
// New statement kinds are added by registering an Extractor on a Registry and
// passing it to New with WithRegistry.
package parser
