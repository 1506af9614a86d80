package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/schema"
	"github.com/urfave/cli/v3"
)

// splitCmd prints the statements of a schema file, one per block, after
// imports are inlined and comments stripped. It shows how the splitter sees
// the script without parsing anything.
//
// Examples:
//
//	# Split the configured entrypoint
//	definer split
//
//	# Split a specific file
//	definer split schema/users.surql
func (a *app) splitCmd() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "Print the statements of a schema file",
		ArgsUsage: "[file]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.split(a.schemaPath(cmd), cmd.Root().Writer)
		},
	}
}

func (a *app) split(path string, w io.Writer) error {
	var buf bytes.Buffer
	if err := schema.Compile(path, &buf); err != nil {
		return err
	}

	stmts := parser.SplitStatements(a.cfg.CommentStripper()(buf.String()))
	a.log.WithField("file", path).Debugf("split %d statements", len(stmts))

	for i, stmt := range stmts {
		sep := ""
		if i > 0 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s;\n", sep, stmt); err != nil {
			return errors.Wrap(err, "failed to write statement")
		}
	}

	return nil
}
