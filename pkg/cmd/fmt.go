package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/consts"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/urfave/cli/v3"
)

// schemaExt is the extension fmt looks for when given a directory.
const schemaExt = ".surql"

// fmtCmd creates a CLI command for formatting schema files, allowing users to
// format individual files or entire directory trees recursively.
//
// The command supports two output modes:
//   - Stdout mode (default): Formatted statements are written to standard output
//   - Write mode (-w flag): Files are modified in-place with formatted content
//
// Path handling:
//   - File paths: Format the specified file directly
//   - Directory paths: Recursively find and format all .surql files
//   - No path: Format the configured entrypoint
//
// Import directives are kept at the top of each file; files are formatted on
// their own, never with their imports inlined. Files with statements that
// fail to parse are left untouched and reported as errors.
//
// Examples:
//
//	# Format single file to stdout
//	definer fmt schema.surql
//
//	# Format all schema files in directory tree in-place
//	definer fmt -w schema/
func (a *app) fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format schema files",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("at most one path argument is allowed")
			}

			return a.formatPath(a.schemaPath(cmd), cmd.Bool("write"), cmd.Root().Writer)
		},
	}
}

// formatPath handles formatting of either a single file or directory recursively.
func (a *app) formatPath(path string, writeBack bool, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return a.formatDirectory(path, writeBack, writer)
	}

	return a.formatFile(path, writeBack, writer)
}

// formatDirectory recursively walks through a directory and formats all
// schema files in lexicographical order.
func (a *app) formatDirectory(dir string, writeBack bool, writer io.Writer) error {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), schemaExt) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(files) == 0 {
		return errors.Errorf("no schema files found in directory: %s", dir)
	}

	for _, file := range files {
		if err := a.formatFile(file, writeBack, writer); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", file)
		}
	}

	return nil
}

// formatFile formats a single file and either writes to stdout or back to the file.
func (a *app) formatFile(path string, writeBack bool, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	sql, err := parser.New(a.parserOptions()...).ParseString(string(content))
	if err != nil {
		return errors.Wrapf(err, "failed to parse file: %s", path)
	}

	var buf strings.Builder
	if imports := importLines(string(content)); len(imports) > 0 {
		buf.WriteString(strings.Join(imports, "\n") + "\n")
		if len(sql.Statements) > 0 {
			buf.WriteString("\n")
		}
	}

	if err := a.cfg.Formatter().Format(&buf, sql.Statements...); err != nil {
		return errors.Wrapf(err, "failed to format file: %s", path)
	}

	formatted := buf.String()
	a.log.WithField("file", path).Debugf("formatted %d statements", len(sql.Statements))

	if writeBack {
		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
		return nil
	}

	if _, err := fmt.Fprint(writer, formatted); err != nil {
		return errors.Wrapf(err, "failed to write formatted content to output")
	}

	return nil
}

// importLines returns the import directives of a file, trimmed, in order.
func importLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); strings.HasPrefix(line, consts.ImportDirective) {
			lines = append(lines, line)
		}
	}
	return lines
}
