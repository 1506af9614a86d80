// Package schema aggregates parsed definitions into a Schema and compares
// schemas with each other.
//
// A Schema holds one ordered collection per statement kind. Tables, params,
// functions and the other top-level kinds are keyed by name; fields, events
// and indexes belong to a table and are keyed by `<table>.<name>`, with
// FieldsOf, EventsOf and IndexesOf listing them per table. Aggregation is last
// write wins: redefining a key replaces the earlier definition and keeps its
// position.
//
// Schemas can span several files. Compile inlines `-- definer:import <path>`
// directives, resolving each path relative to the importing file, and
// ParseFile compiles before parsing.
//
// Usage:
//
//	s, err := schema.ParseFile("schema/main.surql")
//	if err != nil {
//		var perrs parser.ParseErrors
//		if !errors.As(err, &perrs) {
//			log.Fatal(err)
//		}
//		// s still holds every statement that parsed
//	}
//
//	for _, table := range s.Tables.All() {
//		fmt.Println(table.Name, len(s.FieldsOf(table.Name)))
//	}
//
// Diff reports what changed between two schemas as ADDED, REMOVED, MODIFIED
// or RENAMED entries. A rename is a definition that disappeared under one name
// and reappeared, otherwise identical, under another.
package schema
