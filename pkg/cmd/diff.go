package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/schema"
	"github.com/urfave/cli/v3"
)

// errSchemasDiffer is returned by diff --exit-code when there are changes.
var errSchemasDiffer = errors.New("schemas differ")

// diffCmd compares two schema files and lists the changes needed to turn the
// first into the second: renamed, added, modified and removed definitions.
//
// Flags:
//   - --exit-code: Fail when the schemas differ
//
// Examples:
//
//	definer diff old.surql new.surql
//	definer diff --exit-code schema/main.surql build/main.surql
func (a *app) diffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "List the changes between two schema files",
		ArgsUsage: "<from> <to>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "exit-code",
				Usage: "exit with an error when the schemas differ",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("exactly two schema files are required")
			}

			return a.diff(cmd.Args().Get(0), cmd.Args().Get(1), cmd.Bool("exit-code"), cmd.Root().Writer)
		},
	}
}

func (a *app) diff(from, to string, exitCode bool, w io.Writer) error {
	current, err := a.loadSchema(from)
	if err != nil {
		return err
	}

	target, err := a.loadSchema(to)
	if err != nil {
		return err
	}

	changes := schema.Diff(current, target)
	a.log.Debugf("found %d changes", len(changes))

	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, "no changes")
		return errors.Wrap(err, "failed to write changes")
	}

	for _, change := range changes {
		if _, err := fmt.Fprintln(w, change); err != nil {
			return errors.Wrap(err, "failed to write changes")
		}
	}

	if exitCode {
		return errSchemasDiffer
	}
	return nil
}

// loadSchema parses a schema file, logging statements that fail.
func (a *app) loadSchema(path string) (*schema.Schema, error) {
	s, err := schema.ParseFile(path, a.parserOptions()...)
	if s == nil {
		return nil, err
	}
	if err := a.logParseErrors(path, err); err != nil {
		return nil, err
	}
	return s, nil
}
