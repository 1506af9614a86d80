package format_test

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/definer/pkg/format"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestDefinition(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected string
	}{
		{
			name:     "quoted table name",
			sql:      "DEFINE TABLE `user-data` SCHEMALESS",
			expected: "DEFINE TABLE `user-data` SCHEMALESS;",
		},
		{
			name:     "field on quoted table",
			sql:      "DEFINE FIELD name ON `user-data` TYPE string",
			expected: "DEFINE FIELD name ON TABLE `user-data` TYPE string;",
		},
		{
			name:     "table drop and normal type",
			sql:      "DEFINE TABLE tmp DROP TYPE NORMAL",
			expected: "DEFINE TABLE tmp DROP TYPE NORMAL;",
		},
		{
			name:     "table view",
			sql:      "DEFINE TABLE stats AS SELECT count() FROM user GROUP ALL",
			expected: "DEFINE TABLE stats AS SELECT count() FROM user GROUP ALL;",
		},
		{
			name:     "flexible field",
			sql:      "DEFINE FIELD meta ON TABLE user FLEXIBLE TYPE object",
			expected: "DEFINE FIELD meta ON TABLE user FLEXIBLE TYPE object;",
		},
		{
			name:     "default always",
			sql:      "DEFINE FIELD updated ON TABLE user DEFAULT ALWAYS time::now()",
			expected: "DEFINE FIELD updated ON TABLE user DEFAULT ALWAYS time::now();",
		},
		{
			name:     "bare reference",
			sql:      "DEFINE FIELD author ON TABLE post TYPE record<user> REFERENCE",
			expected: "DEFINE FIELD author ON TABLE post TYPE record<user> REFERENCE;",
		},
		{
			name:     "reference with options",
			sql:      "DEFINE FIELD author ON TABLE post TYPE record<user> REFERENCE ON DELETE CASCADE",
			expected: "DEFINE FIELD author ON TABLE post TYPE record<user> REFERENCE ON DELETE CASCADE;",
		},
		{
			name:     "hnsw index",
			sql:      "DEFINE INDEX vec ON TABLE doc FIELDS embedding HNSW DIMENSION 4 DIST COSINE",
			expected: "DEFINE INDEX vec ON TABLE doc FIELDS embedding HNSW DIMENSION 4 DIST COSINE;",
		},
		{
			name:     "count index",
			sql:      "DEFINE INDEX total ON TABLE user COUNT",
			expected: "DEFINE INDEX total ON TABLE user COUNT;",
		},
		{
			name:     "bearer access with grant duration",
			sql:      "DEFINE ACCESS api ON DATABASE TYPE BEARER FOR USER DURATION FOR GRANT 30d",
			expected: "DEFINE ACCESS api ON DATABASE TYPE BEARER FOR USER DURATION FOR GRANT 30d;",
		},
		{
			name:     "function without arguments",
			sql:      "DEFINE FUNCTION fn::now() { RETURN time::now(); }",
			expected: "DEFINE FUNCTION fn::now() { RETURN time::now(); };",
		},
		{
			name:     "function argument without type",
			sql:      "DEFINE FUNCTION fn::id($x) { RETURN $x; }",
			expected: "DEFINE FUNCTION fn::id($x) { RETURN $x; };",
		},
		{
			name:     "comment escaping",
			sql:      `DEFINE TABLE quotes COMMENT 'the "best" ones'`,
			expected: `DEFINE TABLE quotes COMMENT "the \"best\" ones";`,
		},
		{
			name:     "string default stays a string",
			sql:      `DEFINE FIELD active ON user TYPE string DEFAULT "true"`,
			expected: `DEFINE FIELD active ON TABLE user TYPE string DEFAULT "true";`,
		},
		{
			name:     "literal default stays a literal",
			sql:      `DEFINE FIELD active ON user TYPE bool DEFAULT true`,
			expected: `DEFINE FIELD active ON TABLE user TYPE bool DEFAULT true;`,
		},
		{
			name:     "numeric string default",
			sql:      `DEFINE FIELD code ON user DEFAULT '007'`,
			expected: `DEFINE FIELD code ON TABLE user DEFAULT "007";`,
		},
		{
			name:     "string value that looks like a call",
			sql:      `DEFINE PARAM $clock VALUE "time::now()"`,
			expected: `DEFINE PARAM $clock VALUE "time::now()";`,
		},
		{
			name:     "view with repeated AS",
			sql:      "DEFINE TABLE stats AS SELECT count() AS total, city FROM user GROUP BY city",
			expected: "DEFINE TABLE stats AS SELECT count() AS total, city FROM user GROUP BY city;",
		},
		{
			name:     "permissions with keyword operand",
			sql:      `DEFINE FIELD title ON post PERMISSIONS FOR select WHERE type = "public"`,
			expected: `DEFINE FIELD title ON TABLE post PERMISSIONS FOR select WHERE type = "public";`,
		},
		{
			name:     "unrepresentable clause keeps the source",
			sql:      "DEFINE SEQUENCE s BATCH lots START 1",
			expected: "DEFINE SEQUENCE s BATCH lots START 1;",
		},
		{
			name:     "escape sequence keeps the source",
			sql:      `DEFINE PARAM $sep VALUE "a\nb"`,
			expected: `DEFINE PARAM $sep VALUE "a\nb";`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := parser.ParseStatement(tt.sql)
			require.NoError(t, err)
			require.Equal(t, tt.expected, Definition(def))

			// The output parses back to an equal definition.
			again, err := parser.ParseStatement(tt.expected)
			require.NoError(t, err)
			require.True(t, def.Equal(again), "round trip changed %s", tt.expected)
		})
	}
}

func TestFormatter_Options(t *testing.T) {
	t.Run("lowercase keywords", func(t *testing.T) {
		def, err := parser.ParseStatement("DEFINE TABLE user SCHEMAFULL COMMENT 'Users'")
		require.NoError(t, err)

		options := FormatterOptions{IndentSize: 4, UppercaseKeywords: false}
		require.Equal(t, `define table user schemafull comment "Users";`, New(options).Definition(def))
	})

	t.Run("custom indent and line length", func(t *testing.T) {
		def, err := parser.ParseStatement("DEFINE FIELD email ON TABLE user TYPE string ASSERT $value != NONE")
		require.NoError(t, err)

		options := FormatterOptions{IndentSize: 2, MaxLineLength: 40, UppercaseKeywords: true}
		expected := "DEFINE FIELD email ON TABLE user\n" +
			"  TYPE string\n" +
			"  ASSERT $value != NONE;"
		require.Equal(t, expected, New(options).Definition(def))
	})

	t.Run("no line limit", func(t *testing.T) {
		sql := "DEFINE FIELD status ON TABLE user TYPE string ASSERT $value INSIDE ['active', 'suspended', 'deleted', 'pending']"
		def, err := parser.ParseStatement(sql)
		require.NoError(t, err)

		options := FormatterOptions{IndentSize: 4, UppercaseKeywords: true}
		require.Equal(t, sql+";", New(options).Definition(def))
	})
}

func TestFormatter_Generic(t *testing.T) {
	t.Run("raw text", func(t *testing.T) {
		r := parser.DefaultRegistry().
			Register("DATABASE", parser.GenericExtractor("database", "CHANGEFEED", "STRICT", "COMMENT"))

		def, err := parser.New(parser.WithRegistry(r)).ParseStatement("define database app strict;")
		require.NoError(t, err)
		require.Equal(t, "define database app strict;", Definition(def))
	})

	t.Run("built in code", func(t *testing.T) {
		def := &parser.GenericDef{
			Common:  parser.Common{Name: "app", Comment: utils.Ptr("main")},
			DefKind: "database",
			Clauses: map[string]string{"STRICT": "", "CHANGEFEED": "1d"},
		}
		require.Equal(t, `DEFINE DATABASE app CHANGEFEED 1d STRICT COMMENT "main";`, Definition(def))
	})
}

type customDef struct {
	parser.Common
}

func (c *customDef) Kind() parser.Kind                  { return "custom" }
func (c *customDef) Equal(other parser.Definition) bool { return false }

func TestFormatter_UnknownDefinition(t *testing.T) {
	def := &customDef{Common: parser.Common{Name: "x", Raw: "DEFINE CUSTOM x"}}
	require.Equal(t, "DEFINE CUSTOM x;", Definition(def))

	require.Empty(t, Definition(&customDef{}))
}

func TestFormat(t *testing.T) {
	sql, err := parser.ParseString(`
		DEFINE PARAM $a VALUE 1;
		DEFINE TABLE user;
		DEFINE FIELD name ON user TYPE string;
		DEFINE TABLE post;
	`)
	require.NoError(t, err)

	defs := append([]parser.Definition{nil}, sql.Statements...)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, Defaults, defs...))

	expected := "DEFINE PARAM $a VALUE 1;\n" +
		"\n" +
		"DEFINE TABLE user;\n" +
		"DEFINE FIELD name ON TABLE user TYPE string;\n" +
		"\n" +
		"DEFINE TABLE post;\n"
	require.Equal(t, expected, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFormat_WriteError(t *testing.T) {
	def, err := parser.ParseStatement("DEFINE TABLE user")
	require.NoError(t, err)

	err = Format(failingWriter{}, Defaults, def)
	require.EqualError(t, err, "failed to write table user: disk full")
}
