package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/definer/pkg/cmd/testutil"
	"github.com/pseudomuto/definer/pkg/config"
	"github.com/pseudomuto/definer/pkg/consts"
	"github.com/stretchr/testify/require"
)

const unformattedSchema = "define table user schemafull;define field name on user type string;DEFINE TABLE post;"

func TestFmtCommand_SingleFile(t *testing.T) {
	project := testutil.TestProject(t).WithSchema(unformattedSchema)

	out, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{project.GetMainSchemaPath()})
	require.NoError(t, err)
	require.Equal(t, `DEFINE TABLE user SCHEMAFULL;
DEFINE FIELD name ON TABLE user TYPE string;

DEFINE TABLE post;
`, out)

	// stdout mode leaves the file alone
	testutil.RequireFileExists(t, project.GetMainSchemaPath(), testutil.RequireFileContains(t, unformattedSchema))
}

func TestFmtCommand_SingleFileWriteBack(t *testing.T) {
	project := testutil.TestProject(t).WithSchema(unformattedSchema)
	path := project.GetMainSchemaPath()

	out, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{"-w", path})
	require.NoError(t, err)
	require.Empty(t, out)

	testutil.RequireFileExists(t, path,
		testutil.RequireFileContains(t, "DEFINE FIELD name ON TABLE user TYPE string;\n"),
		testutil.RequireFileNotContains(t, "define table"),
	)

	formatted, err := os.ReadFile(path)
	require.NoError(t, err)
	testutil.RequireSchemaEqual(t, unformattedSchema, string(formatted))
}

func TestFmtCommand_KeepsImports(t *testing.T) {
	project := testutil.TestProject(t).WithSchema("-- definer:import tables/user.surql\n-- users\ndefine table post;\n")

	out, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{project.GetMainSchemaPath()})
	require.NoError(t, err)
	require.Equal(t, "-- definer:import tables/user.surql\n\nDEFINE TABLE post;\n", out)
}

func TestFmtCommand_Directory(t *testing.T) {
	project := testutil.TestProject(t).
		WithSchema("define table a;").
		WithSchemaFiles(map[string]string{
			"nested/b.surql": "define table b;",
			"notes.txt":      "not a schema",
		})

	_, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{"--write", project.GetSchemasDir()})
	require.NoError(t, err)

	testutil.RequireFileExists(t, project.GetMainSchemaPath(), testutil.RequireFileContains(t, "DEFINE TABLE a;\n"))
	testutil.RequireFileExists(t, filepath.Join(project.GetSchemasDir(), "nested", "b.surql"),
		testutil.RequireFileContains(t, "DEFINE TABLE b;\n"))
	testutil.RequireFileExists(t, filepath.Join(project.GetSchemasDir(), "notes.txt"),
		testutil.RequireFileContains(t, "not a schema"))
}

func TestFmtCommand_Entrypoint(t *testing.T) {
	project := testutil.TestProject(t).WithSchema("define param $limit value 10;")
	t.Chdir(project.Dir)

	out, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), nil)
	require.NoError(t, err)
	require.Equal(t, "DEFINE PARAM $limit VALUE 10;\n", out)
}

func TestFmtCommand_Errors(t *testing.T) {
	t.Run("parse failure", func(t *testing.T) {
		project := testutil.TestProject(t).WithSchema("DEFINE TABLE user; DEFINE WIDGET x;")

		_, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{project.GetMainSchemaPath()})
		testutil.RequireError(t, err, "failed to parse file", "unknown statement DEFINE WIDGET")
	})

	t.Run("empty directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("#"), consts.ModeFile))

		_, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{dir})
		testutil.RequireError(t, err, "no schema files found in directory")
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{"missing.surql"})
		testutil.RequireError(t, err, "failed to access path: missing.surql")
	})

	t.Run("too many paths", func(t *testing.T) {
		_, err := testutil.RunCommand(t, newApp(config.Default()).fmtCmd(), []string{"a.surql", "b.surql"})
		testutil.RequireError(t, err, "at most one path argument is allowed")
	})
}
