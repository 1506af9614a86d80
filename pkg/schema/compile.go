package schema

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/consts"
)

// Compile recursively compiles a schema file and its imports. It processes import directives (lines
// starting with "-- definer:import") and includes the referenced files' contents in the output.
// Import paths are resolved relative to the current file's directory. A file importing itself,
// directly or through other files, is an error.
//
// Example:
//
//	var buf bytes.Buffer
//	err := schema.Compile("schema/main.surql", &buf)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Parse the compiled schema
//	sql, err := parser.ParseString(buf.String())
func Compile(path string, w io.Writer) error {
	return compile(path, w, nil)
}

func compile(path string, w io.Writer, stack []string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}
	if slices.Contains(stack, abs) {
		return errors.Errorf("import cycle: %s", strings.Join(append(stack, abs), " -> "))
	}
	stack = append(stack, abs)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file %s", path)
	}
	defer func() { _ = f.Close() }()

	// Lines are read whole, with no cap on their length.
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return errors.Wrapf(readErr, "failed reading %s", path)
		}
		if readErr != nil && line == "" {
			return nil
		}

		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if err := compileLine(path, line, w, stack); err != nil {
			return err
		}

		if readErr != nil {
			return nil
		}
	}
}

func compileLine(path, line string, w io.Writer, stack []string) error {
	if importPath, ok := importDirective(line); ok {
		// Resolve import path relative to current file's directory
		if !filepath.IsAbs(importPath) {
			importPath = filepath.Join(filepath.Dir(path), importPath)
		}

		return compile(importPath, w, stack)
	}

	if _, err := fmt.Fprintln(w, line); err != nil {
		return errors.Wrap(err, "failed to write compiled schema")
	}
	return nil
}

func importDirective(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), consts.ImportDirective)
	if !ok {
		return "", false
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}
