// Package cmd provides the CLI commands for the definer tool.
//
// Every command reads schema scripts made of DEFINE statements. Imports are
// inlined first, then comments are stripped with the configured mode, then
// the script is split and parsed. Statements that fail to parse never stop a
// command; they are logged as warnings, except by check, which reports them
// and fails.
//
// # Available Commands
//
//   - split: Print the statements of a file as the splitter sees them
//   - parse: Print the aggregated schema as YAML or JSON
//   - check: Report statements that fail to parse
//   - fmt: Format schema files to stdout or in place
//   - diff: List the changes between two schema files
//   - watch: Check a schema again whenever its files change
//   - repl: Parse statements interactively
//
// # Global Options
//
//   - --config, -c: Project configuration file (defaults to definer.yaml)
//   - --comments: lenient or safe comment stripping
//   - --verbose, -v: Debug logging on stderr
//
// # Example Usage
//
//	definer check                                 # Check the configured entrypoint
//	definer parse -o json schema/main.surql       # Print definitions as JSON
//	definer fmt -w schema/                        # Format every .surql file in place
//	definer diff --exit-code old.surql new.surql  # Fail when the schemas differ
package cmd
