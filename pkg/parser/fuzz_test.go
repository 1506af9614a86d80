package parser_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/definer/pkg/parser"
)

var fuzzSeeds = []string{
	"DEFINE TABLE user SCHEMAFULL;",
	"DEFINE FIELD email ON TABLE user TYPE string ASSERT string::is::email($value);",
	"DEFINE FUNCTION fn::a($x: int) -> int { IF $x { RETURN 1; }; RETURN 0; } COMMENT 'x';",
	`DEFINE PARAM $p VALUE "a;b\"c" PERMISSIONS FULL;`,
	"DEFINE ACCESS a ON DB TYPE RECORD SIGNIN (SELECT * FROM user) DURATION FOR SESSION 1h;",
	"DEFINE INDEX i ON t FIELDS a, b SEARCH ANALYZER x BM25;",
	"DEFINE USER u ON ROOT PASSWORD 'p' ROLES OWNER;",
	// Truncated / malformed
	"DEFINE",
	"DEFINE TABLE",
	"DEFINE FUNCTION fn::a( {",
	"DEFINE FUNCTION fn::a() -> ",
	"}}}; {{{",
	`"unterminated`,
	"/* open comment",
	"DEFINE ACCESS a ON",
	"",
}

func FuzzSplitStatements(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		for _, stmt := range SplitStatements(input) {
			if stmt == "" || stmt != strings.TrimSpace(stmt) {
				t.Fatalf("SplitStatements(%q) produced untrimmed statement %q", input, stmt)
			}
		}
	})
}

func FuzzParseString(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Parsing must never panic, and every statement yields exactly one
		// definition or one error.
		sql, _ := New(WithCommentStripper(NoComments)).ParseString(input)
		if got, want := len(sql.Statements)+len(sql.Errors), len(SplitStatements(input)); got != want {
			t.Fatalf("ParseString(%q) accounted for %d of %d statements", input, got, want)
		}

		_, _ = ParseString(input)
		_ = StripCommentsSafe(input)
	})
}
