package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/definer/pkg/config"
	"github.com/pseudomuto/definer/pkg/consts"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ProjectFixture represents a test project: a temp directory holding a
// definer.yaml and the schema files it points at.
type ProjectFixture struct {
	Dir    string
	Config *config.Config
	t      *testing.T
}

// TestProject creates an isolated temp directory with a default
// configuration and an empty entrypoint schema.
func TestProject(t *testing.T) *ProjectFixture {
	t.Helper()

	fixture := &ProjectFixture{
		Dir:    t.TempDir(),
		Config: DefaultConfig(),
		t:      t,
	}

	require.NoError(t, fixture.writeConfig(), "Failed to write config file")
	return fixture.WithSchema("")
}

// WithConfig replaces the project configuration and writes it to disk.
func (p *ProjectFixture) WithConfig(cfg *config.Config) *ProjectFixture {
	p.t.Helper()

	p.Config = cfg
	require.NoError(p.t, p.writeConfig(), "Failed to write updated config")
	return p
}

// WithSchema sets the main schema content
func (p *ProjectFixture) WithSchema(schemaSQL string) *ProjectFixture {
	p.t.Helper()

	p.writeFile(p.Config.Entrypoint, schemaSQL)
	return p
}

// WithSchemaFiles adds additional schema files next to the entrypoint. Keys
// are paths relative to the entrypoint's directory.
func (p *ProjectFixture) WithSchemaFiles(files map[string]string) *ProjectFixture {
	p.t.Helper()

	base := filepath.Dir(p.Config.Entrypoint)
	for path, content := range files {
		p.writeFile(filepath.Join(base, path), content)
	}

	return p
}

// GetConfigPath returns the path to the definer.yaml file
func (p *ProjectFixture) GetConfigPath() string {
	return filepath.Join(p.Dir, consts.ConfigFile)
}

// GetMainSchemaPath returns the path to the main schema file
func (p *ProjectFixture) GetMainSchemaPath() string {
	return filepath.Join(p.Dir, p.Config.Entrypoint)
}

// GetSchemasDir returns the directory holding the main schema file
func (p *ProjectFixture) GetSchemasDir() string {
	return filepath.Dir(p.GetMainSchemaPath())
}

// DefaultConfig returns a default configuration for testing
func DefaultConfig() *config.Config {
	return config.Default()
}

func (p *ProjectFixture) writeFile(rel, content string) {
	p.t.Helper()

	path := filepath.Join(p.Dir, rel)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir), "Failed to create directory for %s", rel)
	require.NoError(p.t, os.WriteFile(path, []byte(content), consts.ModeFile), "Failed to write file: %s", rel)
}

// writeConfig writes the configuration to a file
func (p *ProjectFixture) writeConfig() error {
	file, err := os.Create(p.GetConfigPath())
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	return encoder.Encode(p.Config)
}
