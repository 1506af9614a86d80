package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/schema"
	"github.com/urfave/cli/v3"
)

// errCheckFailed is returned by check when statements fail to parse, after
// they have been printed.
var errCheckFailed = errors.New("schema has statements that failed to parse")

// checkCmd parses a schema file and prints every statement that could not be
// parsed. The command fails when there is at least one.
//
// Examples:
//
//	definer check
//	definer check schema/main.surql
func (a *app) checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report statements that fail to parse",
		ArgsUsage: "[file]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.check(a.schemaPath(cmd), cmd.Root().Writer)
		},
	}
}

func (a *app) check(path string, w io.Writer) error {
	s, err := schema.ParseFile(path, a.parserOptions()...)
	if s == nil {
		return err
	}

	var perrs parser.ParseErrors
	if err != nil && !errors.As(err, &perrs) {
		return err
	}

	for _, perr := range perrs {
		if _, err := fmt.Fprintf(w, "%s: %s\n", path, perr); err != nil {
			return errors.Wrap(err, "failed to write report")
		}
	}
	if len(perrs) > 0 {
		return errors.Wrapf(errCheckFailed, "%d failed", len(perrs))
	}

	_, err = fmt.Fprintf(w, "%s: ok, %d definitions\n", path, s.Len())
	return errors.Wrap(err, "failed to write report")
}
