package parser_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/definer/pkg/parser"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatement(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		def, err := ParseStatement("DEFINE TABLE user SCHEMAFULL")
		require.NoError(t, err)
		require.Equal(t, KindTable, def.Kind())

		table := def.(*TableDef)
		require.Equal(t, "user", table.Name)
		require.Equal(t, "schemafull", *table.SchemaMode)
	})

	t.Run("event", func(t *testing.T) {
		t.Parallel()

		def, err := ParseStatement("DEFINE EVENT user_created ON user")
		require.NoError(t, err)
		require.Equal(t, KindEvent, def.Kind())

		event := def.(*EventDef)
		require.Equal(t, "user_created", event.Name)
		require.Equal(t, "user", event.TableName())
	})

	t.Run("param", func(t *testing.T) {
		t.Parallel()

		def, err := ParseStatement("DEFINE PARAM $api_key")
		require.NoError(t, err)

		param := def.(*ParamDef)
		require.Equal(t, "api_key", param.Name)
		require.Nil(t, param.Value)
	})

	t.Run("keywords are case insensitive", func(t *testing.T) {
		t.Parallel()

		for _, sql := range []string{"define table User", "DEFINE TABLE User", "Define Table User", "DEFINE\n\ttable   User"} {
			def, err := ParseStatement(sql)
			require.NoError(t, err, sql)
			require.Equal(t, KindTable, def.Kind())
			require.Equal(t, "User", def.Base().Name)
		}
	})

	t.Run("raw keeps layout", func(t *testing.T) {
		t.Parallel()

		def, err := ParseStatement("  DEFINE FIELD a\n  ON t TYPE int;  ")
		require.NoError(t, err)
		require.Equal(t, "DEFINE FIELD a\n  ON t TYPE int", def.Base().Raw)
	})
}

func TestParseStatementErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sql     string
		kind    ErrorKind
		keyword string
		message string
	}{
		{name: "empty", sql: "", kind: InvalidSyntax, message: "invalid syntax: empty statement"},
		{name: "whitespace", sql: " \n ", kind: InvalidSyntax, message: "invalid syntax: empty statement"},
		{name: "not a define", sql: "SELECT * FROM user", kind: InvalidSyntax, message: "invalid syntax: SELECT * FROM user"},
		{name: "missing kind", sql: "DEFINE", kind: InvalidSyntax, message: "invalid syntax: DEFINE"},
		{name: "missing rest", sql: "DEFINE TABLE;", kind: InvalidSyntax, message: "invalid syntax: DEFINE TABLE"},
		{name: "unknown kind", sql: "DEFINE INVALID user", kind: UnknownStatement, keyword: "INVALID", message: "unknown statement DEFINE INVALID: DEFINE INVALID user"},
		{name: "unknown kind lowercase", sql: "define widget\n  w", kind: UnknownStatement, keyword: "widget", message: "unknown statement DEFINE WIDGET: define widget w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def, err := ParseStatement(tt.sql)
			require.Nil(t, def)
			require.Error(t, err)
			require.EqualError(t, err, tt.message)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			require.Equal(t, tt.kind, perr.Kind)
			require.Equal(t, tt.keyword, perr.Keyword)

			switch tt.kind {
			case InvalidSyntax:
				require.ErrorIs(t, err, ErrInvalidSyntax)
			case UnknownStatement:
				require.ErrorIs(t, err, ErrUnknownStatement)
			}
		})
	}

	t.Run("long statements are shortened", func(t *testing.T) {
		t.Parallel()

		_, err := ParseStatement("DEFINE NOPE " + strings.Repeat("x", 100))
		require.Error(t, err)
		require.True(t, strings.HasSuffix(err.Error(), "..."))
	})
}

func TestParseString(t *testing.T) {
	t.Parallel()

	t.Run("function body with semicolons", func(t *testing.T) {
		t.Parallel()

		sql, err := ParseString("DEFINE FUNCTION fn::test() { RETURN true; }; DEFINE TABLE user")
		require.NoError(t, err)
		require.Len(t, sql.Statements, 2)

		fn := sql.Statements[0].(*FunctionDef)
		require.Equal(t, "DEFINE FUNCTION fn::test() { RETURN true; }", fn.Raw)
		require.Equal(t, "RETURN true;", *fn.Body)
		require.Equal(t, KindTable, sql.Statements[1].Kind())
	})

	t.Run("comments", func(t *testing.T) {
		t.Parallel()

		sql, err := ParseString(`
-- users
DEFINE TABLE user SCHEMAFULL; /* the email */
DEFINE FIELD email ON user TYPE string; -- required
`)
		require.NoError(t, err)
		require.Len(t, sql.Statements, 2)
		require.Equal(t, "user", sql.Statements[0].Base().Name)
		require.Equal(t, "string", *sql.Statements[1].(*FieldDef).Type)
	})

	t.Run("failures are collected", func(t *testing.T) {
		t.Parallel()

		sql, err := ParseString("DEFINE TABLE a; DEFINE NOPE x; ; garbage; DEFINE FIELD f ON a")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrUnknownStatement)
		require.ErrorIs(t, err, ErrInvalidSyntax)

		require.Len(t, sql.Statements, 2)
		require.Equal(t, KindTable, sql.Statements[0].Kind())
		require.Equal(t, KindField, sql.Statements[1].Kind())

		require.Len(t, sql.Errors, 2)
		require.Equal(t, UnknownStatement, sql.Errors[0].Kind)
		require.Equal(t, "DEFINE NOPE x", sql.Errors[0].Statement)
		require.Equal(t, InvalidSyntax, sql.Errors[1].Kind)
		require.Equal(t, "garbage", sql.Errors[1].Statement)

		var perrs ParseErrors
		require.True(t, errors.As(err, &perrs))
		require.Len(t, perrs, 2)
		require.Contains(t, err.Error(), "2 statements failed to parse")
	})

	t.Run("empty script", func(t *testing.T) {
		t.Parallel()

		sql, err := ParseString("  -- nothing here\n")
		require.NoError(t, err)
		require.Empty(t, sql.Statements)
		require.Empty(t, sql.Errors)
	})

	t.Run("modifiers are exclusive", func(t *testing.T) {
		t.Parallel()

		sql, err := ParseString(`
DEFINE TABLE OVERWRITE a;
DEFINE TABLE IF NOT EXISTS b;
DEFINE TABLE OVERWRITE IF NOT EXISTS c;
DEFINE FIELD IF NOT EXISTS OVERWRITE d ON a;
DEFINE PARAM OVERWRITE $e;
DEFINE INDEX IF NOT EXISTS f ON a FIELDS x;
DEFINE FUNCTION OVERWRITE fn::g() { RETURN 1; };
`)
		require.NoError(t, err)
		require.Len(t, sql.Statements, 7)

		for _, def := range sql.Statements {
			base := def.Base()
			require.False(t, base.Overwrite && base.IfNotExists, base.Raw)
		}

		require.True(t, sql.Statements[0].Base().Overwrite)
		require.True(t, sql.Statements[1].Base().IfNotExists)
		require.True(t, sql.Statements[2].Base().Overwrite)
		require.True(t, sql.Statements[3].Base().IfNotExists)
	})
}

func TestParse(t *testing.T) {
	t.Parallel()

	sql, err := Parse(strings.NewReader("DEFINE TABLE a; DEFINE TABLE b;"))
	require.NoError(t, err)
	require.Len(t, sql.Statements, 2)

	_, err = Parse(failingReader{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read schema")
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schema.surql")
	require.NoError(t, os.WriteFile(path, []byte("DEFINE TABLE user;\nDEFINE FIELD name ON user TYPE string;\n"), 0o600))

	sql, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sql.Statements, 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.surql"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to open file")
	require.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestParserOptions(t *testing.T) {
	t.Parallel()

	t.Run("custom registry", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry().Register("namespace", GenericExtractor("namespace", "COMMENT"))
		p := New(WithRegistry(r))
		require.Same(t, r, p.Registry())

		def, err := p.ParseStatement("DEFINE NAMESPACE app COMMENT 'main'")
		require.NoError(t, err)
		require.Equal(t, Kind("namespace"), def.Kind())
		require.Equal(t, "app", def.Base().Name)
		require.Equal(t, "main", *def.Base().Comment)

		_, err = p.ParseStatement("DEFINE TABLE user")
		require.ErrorIs(t, err, ErrUnknownStatement)
	})

	t.Run("safe comment stripping", func(t *testing.T) {
		t.Parallel()

		script := `DEFINE PARAM $u VALUE "a--b"; -- trailing`

		sql, err := New(WithCommentStripper(StripCommentsSafe)).ParseString(script)
		require.NoError(t, err)
		require.Equal(t, "a--b", *sql.Statements[0].(*ParamDef).Value)

		sql, err = ParseString(script)
		require.NoError(t, err)
		require.Equal(t, `"a`, *sql.Statements[0].(*ParamDef).Value)
	})

	t.Run("no comment stripping", func(t *testing.T) {
		t.Parallel()

		sql, err := New(WithCommentStripper(NoComments)).ParseString("-- header\nDEFINE TABLE a")
		require.Error(t, err)
		require.Empty(t, sql.Statements)
		require.Equal(t, InvalidSyntax, sql.Errors[0].Kind)
	})

	t.Run("logger", func(t *testing.T) {
		t.Parallel()

		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		_, err := New(WithLogger(logger)).ParseStatement("DEFINE TABLE user")
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, "parsed definition", entry.Message)
		require.Equal(t, KindTable, entry.Data["kind"])
		require.Equal(t, "user", entry.Data["name"])
	})
}

func TestParserConcurrentUse(t *testing.T) {
	t.Parallel()

	p := New()
	script := "DEFINE TABLE user; DEFINE FUNCTION fn::a() { RETURN 1; }; DEFINE INDEX i ON user FIELDS a"

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			sql, err := p.ParseString(script)
			assert.NoError(t, err)
			assert.Len(t, sql.Statements, 3)
		}()
	}
	wg.Wait()
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}
