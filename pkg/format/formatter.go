package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/utils"
)

type (
	// FormatterOptions controls formatting behavior
	FormatterOptions struct {
		// IndentSize specifies the number of spaces clauses are indented by when
		// a statement is split over several lines
		IndentSize int
		// MaxLineLength is the longest single-line statement before clauses are
		// moved onto their own lines (0 = no limit)
		MaxLineLength int
		// UppercaseKeywords whether to uppercase keywords
		UppercaseKeywords bool
	}

	// Formatter renders definitions as canonical DEFINE statements.
	Formatter struct {
		options FormatterOptions
	}
)

// Defaults are the standard formatting options.
var Defaults = FormatterOptions{
	IndentSize:        4,
	MaxLineLength:     100,
	UppercaseKeywords: true,
}

// New creates a new Formatter with the specified options
func New(options FormatterOptions) *Formatter {
	return &Formatter{options: options}
}

// Format writes every definition followed by a newline. A blank line is
// written before each table other than the first statement, so a table and
// the fields, events and indexes that follow it read as one block.
func (f *Formatter) Format(w io.Writer, defs ...parser.Definition) error {
	for i, def := range defs {
		if def == nil {
			continue
		}

		if _, isTable := def.(*parser.TableDef); isTable && i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return errors.Wrap(err, "failed to write separator")
			}
		}

		if _, err := io.WriteString(w, f.Definition(def)+"\n"); err != nil {
			return errors.Wrapf(err, "failed to write %s %s", def.Kind(), def.Base().Name)
		}
	}

	return nil
}

// Definition formats a single definition.
//
// Definitions without a dedicated renderer, such as those produced by
// parser.GenericExtractor, are written from their Raw text. So is any parsed
// definition whose rendering would lose part of its source: a clause the
// extractor ignored, an unparsable number, an escape the quoting would change.
func (f *Formatter) Definition(def parser.Definition) string {
	var b *utils.SQLBuilder

	switch d := def.(type) {
	case *parser.TableDef:
		b = f.table(d)
	case *parser.FieldDef:
		b = f.field(d)
	case *parser.EventDef:
		b = f.event(d)
	case *parser.IndexDef:
		b = f.index(d)
	case *parser.ParamDef:
		b = f.param(d)
	case *parser.FunctionDef:
		b = f.function(d)
	case *parser.AnalyzerDef:
		b = f.analyzer(d)
	case *parser.SequenceDef:
		b = f.sequence(d)
	case *parser.UserDef:
		b = f.user(d)
	case *parser.AccessDef:
		b = f.access(d)
	case *parser.BucketDef:
		b = f.bucket(d)
	case *parser.ModuleDef:
		b = f.module(d)
	case *parser.GenericDef:
		return f.generic(d)
	default:
		return raw(def)
	}

	out := f.render(b)
	if src := def.Base().Raw; src != "" && !covers(src, out) {
		return raw(def)
	}
	return out
}

// render picks the single-line form unless it is too long or one of the
// clauses spans several lines.
func (f *Formatter) render(b *utils.SQLBuilder) string {
	line := b.String()
	tooLong := f.options.MaxLineLength > 0 && len(line) > f.options.MaxLineLength
	if !tooLong && !strings.Contains(line, "\n") {
		return line
	}

	return b.Multiline(f.indent(1))
}

// builder starts a statement: DEFINE, the kind and any modifiers.
func (f *Formatter) builder(kind parser.Kind, common *parser.Common) *utils.SQLBuilder {
	return utils.NewSQLBuilder().
		Lowercase(!f.options.UppercaseKeywords).
		Define(kind.Keyword()).
		Overwrite(common.Overwrite).
		IfNotExists(common.IfNotExists)
}

// keyword formats a keyword according to the formatter options
func (f *Formatter) keyword(kw string) string {
	if f.options.UppercaseKeywords {
		return strings.ToUpper(kw)
	}
	return strings.ToLower(kw)
}

// indent returns the specified number of indent levels as spaces
func (f *Formatter) indent(level int) string {
	return strings.Repeat(" ", level*f.options.IndentSize)
}

// Format writes the definitions using the given options.
//
// Example:
//
//	sql, _ := parser.ParseString(schemaText)
//
//	var buf bytes.Buffer
//	if err := format.Format(&buf, format.Defaults, sql.Statements...); err != nil {
//		log.Fatal(err)
//	}
func Format(w io.Writer, opts FormatterOptions, defs ...parser.Definition) error {
	return New(opts).Format(w, defs...)
}

// Definition formats a single definition with the default options
// (convenience function)
func Definition(def parser.Definition) string {
	return New(Defaults).Definition(def)
}

func raw(def parser.Definition) string {
	text := strings.TrimSpace(def.Base().Raw)
	if text == "" {
		return ""
	}
	return strings.TrimSuffix(text, ";") + ";"
}

// dedent strips the indentation shared by every line after the first. The
// first line of a clause value starts right after its keyword, so it never
// carries source indentation.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) == 1 {
		return s
	}

	prefix := ""
	first := true
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = lead, false
			continue
		}
		prefix = commonPrefix(prefix, lead)
	}

	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimRight(strings.TrimPrefix(lines[i], prefix), " \t")
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// block returns a clause value with its continuation lines dedented.
func block(v *string) *string {
	if v == nil {
		return nil
	}
	d := dedent(*v)
	return &d
}

// blockValue is block for VALUE clauses; string literals are kept as is.
func blockValue(v *string, quoted bool) *string {
	if quoted {
		return v
	}
	return block(v)
}
