package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	replPrompt       = "definer> "
	replContinuation = "     ... "
	replHistoryFile  = ".definer_history"
)

// replMode selects how parsed definitions are printed.
type replMode string

const (
	replFormat replMode = "format"
	replYAML   replMode = "yaml"
	replJSON   replMode = "json"
)

// clauseWords are offered by tab completion next to the statement keywords.
var clauseWords = []string{
	"DEFINE", "OVERWRITE", "IF", "NOT", "EXISTS", "ON", "TYPE", "COMMENT", "PERMISSIONS",
	"SCHEMAFULL", "SCHEMALESS", "RELATION", "FIELDS", "UNIQUE", "SEARCH", "VALUE", "ASSERT",
	"DEFAULT", "READONLY", "WHEN", "THEN", "ROOT", "NAMESPACE", "DATABASE",
}

// prompter reads lines of input. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// replCmd starts an interactive session that parses statements as they are
// typed. Input is collected until it ends with `;` outside any brackets, so
// function and event bodies can span lines.
//
// Session commands:
//   - :format, :yaml, :json: choose how definitions are printed
//   - :kinds: list the statement kinds the parser knows
//   - :help: show the commands
//   - exit, quit or Ctrl+D: leave
func (a *app) replCmd() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Parse statements interactively",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			line := liner.NewLiner()
			defer func() { _ = line.Close() }()

			line.SetCtrlCAborts(true)
			line.SetCompleter(a.complete)

			historyFile := filepath.Join(os.TempDir(), replHistoryFile)
			if f, err := os.Open(historyFile); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}
			defer func() {
				if f, err := os.Create(historyFile); err == nil {
					_, _ = line.WriteHistory(f)
					_ = f.Close()
				}
			}()

			return a.repl(line, cmd.Root().Writer)
		},
	}
}

func (a *app) repl(p prompter, w io.Writer) error {
	fmt.Fprintln(w, "Enter DEFINE statements ending with ';'. Type :help for commands.")

	var (
		buf  strings.Builder
		mode = replFormat
	)

	for {
		prompt := replPrompt
		if buf.Len() > 0 {
			prompt = replContinuation
		}

		input, err := p.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				buf.Reset()
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "failed to read input")
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 {
			switch {
			case trimmed == "":
				continue
			case trimmed == "exit" || trimmed == "quit":
				return nil
			case strings.HasPrefix(trimmed, ":"):
				mode = a.replCommand(trimmed, mode, w)
				continue
			}
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(input)

		text := buf.String()
		if needsMoreInput(a.cfg.CommentStripper()(text)) {
			continue
		}

		buf.Reset()
		p.AppendHistory(text)
		a.evaluate(text, mode, w)
	}
}

func (a *app) replCommand(command string, mode replMode, w io.Writer) replMode {
	switch command {
	case ":help":
		fmt.Fprintln(w, "  :format   print definitions as formatted statements")
		fmt.Fprintln(w, "  :yaml     print definitions as YAML")
		fmt.Fprintln(w, "  :json     print definitions as JSON")
		fmt.Fprintln(w, "  :kinds    list the statement kinds")
		fmt.Fprintln(w, "  exit      leave the session")
	case ":format", ":yaml", ":json":
		mode = replMode(strings.TrimPrefix(command, ":"))
		fmt.Fprintf(w, "output: %s\n", mode)
	case ":kinds":
		fmt.Fprintln(w, strings.Join(parser.New(a.parserOptions()...).Registry().Keywords(), " "))
	default:
		fmt.Fprintf(w, "unknown command %s (try :help)\n", command)
	}

	return mode
}

// evaluate parses text and prints each definition and error.
func (a *app) evaluate(text string, mode replMode, w io.Writer) {
	sql, err := parser.New(a.parserOptions()...).ParseString(text)
	if sql == nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	for _, def := range sql.Statements {
		out, err := a.render(def, mode)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(w, out)
	}

	for _, perr := range sql.Errors {
		fmt.Fprintf(w, "error: %s\n", perr)
	}
}

func (a *app) render(def parser.Definition, mode replMode) (string, error) {
	switch mode {
	case replYAML:
		data, err := yaml.Marshal(def)
		if err != nil {
			return "", errors.Wrap(err, "failed to encode definition")
		}
		return fmt.Sprintf("# %s %s\n%s", def.Kind(), def.Base().Name, strings.TrimSuffix(string(data), "\n")), nil
	case replJSON:
		data, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "failed to encode definition")
		}
		return string(data), nil
	default:
		return a.cfg.Formatter().Definition(def), nil
	}
}

// complete offers keywords matching the word under the cursor.
func (a *app) complete(line string) []string {
	start := strings.LastIndexAny(line, " \t") + 1
	prefix, word := line[:start], strings.ToUpper(line[start:])
	if word == "" {
		return nil
	}

	words := append(parser.New(a.parserOptions()...).Registry().Keywords(), clauseWords...)
	sort.Strings(words)

	var matches []string
	seen := make(map[string]bool)
	for _, kw := range words {
		if strings.HasPrefix(kw, word) && !seen[kw] {
			seen[kw] = true
			matches = append(matches, prefix+kw)
		}
	}
	return matches
}

// needsMoreInput reports whether text is an unfinished statement: it does
// not end with `;`, or a bracket or string literal is still open.
func needsMoreInput(text string) bool {
	var (
		depth int
		quote byte
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch ch {
		case '"', '\'', '`':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		default:
			// Quotes inside ⟨...⟩ identifiers are part of the name.
			if rest, ok := strings.CutPrefix(text[i:], "⟨"); ok {
				if end := strings.Index(rest, "⟩"); end >= 0 {
					i += len("⟨") + end + len("⟩") - 1
				}
			}
		}
	}

	return quote != 0 || depth > 0 || !strings.HasSuffix(strings.TrimSpace(text), ";")
}
