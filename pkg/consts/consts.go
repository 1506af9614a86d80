package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the project configuration file looked up by the CLI
	ConfigFile = "definer.yaml"

	// ConfigEnvVar overrides the configuration file path
	ConfigEnvVar = "DEFINER_CONFIG"

	// ImportDirective marks a line that inlines another schema file
	ImportDirective = "-- definer:import"

	// DefaultEntrypoint is the schema file compiled when none is configured
	DefaultEntrypoint = "schema/main.surql"

	// DefaultCommentMode selects the regex based comment stripper
	DefaultCommentMode = "lenient"

	// DefaultOutput is the encoding used when printing a parsed schema
	DefaultOutput = "yaml"
)
