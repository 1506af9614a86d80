package schema_test

import (
	"testing"

	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/schema"
	"github.com/stretchr/testify/require"
)

func TestDetectRenames(t *testing.T) {
	current := mustParse(t, `
DEFINE TABLE users SCHEMAFULL COMMENT "people";
DEFINE TABLE logs SCHEMALESS;
DEFINE TABLE keep;
`)
	target := mustParse(t, `
DEFINE TABLE keep;
DEFINE TABLE people SCHEMAFULL COMMENT "people";
DEFINE TABLE events SCHEMAFULL;
`)

	renames, removed, added := schema.DetectRenames(current.Tables, target.Tables)
	require.Equal(t, []schema.RenamePair{{OldKey: "users", NewKey: "people"}}, renames)
	require.Equal(t, []string{"logs"}, removed)
	require.Equal(t, []string{"events"}, added)
}

func TestPropertiesMatch(t *testing.T) {
	parse := func(sql string) parser.Definition {
		def, err := parser.ParseStatement(sql)
		require.NoError(t, err)
		return def
	}

	a := parse("DEFINE FIELD a ON user TYPE string")
	require.True(t, schema.PropertiesMatch(a, parse("DEFINE FIELD b ON user TYPE string")))
	require.False(t, schema.PropertiesMatch(a, parse("DEFINE FIELD b ON user TYPE int")))
	require.False(t, schema.PropertiesMatch(a, parse("DEFINE INDEX a ON user FIELDS x")))

	// The original is left untouched.
	require.Equal(t, "a", a.Base().Name)
}
