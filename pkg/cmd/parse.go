package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/config"
	"github.com/pseudomuto/definer/pkg/schema"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// parseCmd prints the aggregated schema of a file as YAML or JSON.
// Statements that fail to parse are logged as warnings and left out.
//
// Flags:
//   - --output, -o: yaml or json (defaults to the configured output)
//
// Examples:
//
//	definer parse schema/main.surql
//	definer parse --output json schema/main.surql
func (a *app) parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the definitions of a schema file",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output encoding: yaml or json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			output := cmd.String("output")
			if output == "" {
				output = a.cfg.Output
			}

			return a.parse(a.schemaPath(cmd), output, cmd.Root().Writer)
		},
	}
}

func (a *app) parse(path, output string, w io.Writer) error {
	s, err := a.loadSchema(path)
	if err != nil {
		return err
	}

	a.log.WithField("file", path).Debugf("parsed %d definitions", s.Len())
	return encodeSchema(w, s, output)
}

func encodeSchema(w io.Writer, s *schema.Schema, output string) error {
	switch output {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(s), "failed to encode schema as json")
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "failed to encode schema as yaml")
		}
		return errors.Wrap(enc.Close(), "failed to encode schema as yaml")
	default:
		return errors.Errorf("unknown output %q: must be %s or %s", output, config.OutputYAML, config.OutputJSON)
	}
}
