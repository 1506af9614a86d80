package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/config"
	"github.com/pseudomuto/definer/pkg/consts"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type (
	// Version describes the build being run.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// app is the state shared by every command: the loaded configuration and
	// the logger. It is filled in by the root command's Before hook.
	app struct {
		cfg *config.Config
		log *logrus.Logger
	}
)

func newApp(cfg *config.Config) *app {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return &app{cfg: cfg, log: log}
}

// New creates the definer CLI application.
//
// Global Flags:
//   - --config, -c: Project configuration file (env DEFINER_CONFIG)
//   - --comments: Override the configured comment stripping mode
//   - --verbose, -v: Log debug output to stderr
//
// A missing configuration file is not an error; defaults are used, so every
// command that takes a file argument works outside a project.
//
// Example usage:
//
//	err := cmd.New(cmd.Version{Version: "v1.0.0"}).Run(ctx, []string{"definer", "check", "schema.surql"})
func New(v Version) *cli.Command {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", v.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", v.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", v.Timestamp)
	}

	a := newApp(config.Default())

	return &cli.Command{
		Name:  "definer",
		Usage: "A tool for parsing DEFINE statement schemas",
		Description: `definer reads schema scripts made of DEFINE statements, reports the
statements it cannot understand, and prints, formats or compares the
definitions it extracts.`,
		Version: v.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the definer config file",
				Sources: cli.EnvVars(consts.ConfigEnvVar),
				Value:   consts.ConfigFile,
			},
			&cli.StringFlag{
				Name:  "comments",
				Usage: "comment stripping mode: lenient or safe",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, a.setup(cmd)
		},
		Commands: a.commands(),
	}
}

// Run creates the application and runs it with args.
func Run(ctx context.Context, v Version, args []string) error {
	return New(v).Run(ctx, args)
}

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		a.splitCmd(),
		a.parseCmd(),
		a.checkCmd(),
		a.fmtCmd(),
		a.diffCmd(),
		a.watchCmd(),
		a.replCmd(),
	}
}

// setup loads the configuration and applies the global flags.
func (a *app) setup(cmd *cli.Command) error {
	cfg, err := config.Find(cmd.String("config"))
	if err != nil {
		return err
	}

	if mode := cmd.String("comments"); mode != "" {
		cfg.Comments = mode
		if err := cfg.Validate(); err != nil {
			return errors.Wrap(err, "invalid --comments flag")
		}
	}
	a.cfg = cfg

	a.log.SetOutput(cmd.Root().ErrWriter)
	if cmd.Bool("verbose") {
		a.log.SetLevel(logrus.DebugLevel)
	}

	a.log.WithFields(logrus.Fields{
		"entrypoint": cfg.Entrypoint,
		"comments":   cfg.Comments,
	}).Debug("loaded configuration")

	return nil
}

func (a *app) parserOptions() []parser.Option {
	return append(a.cfg.ParserOptions(), parser.WithLogger(a.log))
}

// schemaPath returns the first argument, or the configured entrypoint when
// there is none.
func (a *app) schemaPath(cmd *cli.Command) string {
	if cmd.Args().Len() > 0 {
		return cmd.Args().First()
	}
	return a.cfg.Entrypoint
}

// logParseErrors reports the statements that failed as warnings. Any other
// error is returned.
func (a *app) logParseErrors(path string, err error) error {
	if err == nil {
		return nil
	}

	var perrs parser.ParseErrors
	if !errors.As(err, &perrs) {
		return err
	}

	for _, perr := range perrs {
		a.log.WithFields(logrus.Fields{
			"file": path,
			"kind": perr.Kind,
		}).Warn(perr.Error())
	}
	return nil
}
