package format

import (
	"strconv"
	"strings"

	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/utils"
)

func (f *Formatter) param(p *parser.ParamDef) *utils.SQLBuilder {
	return f.builder(parser.KindParam, &p.Common).
		Head("$"+p.Name).
		Value("VALUE", blockValue(p.Value, p.ValueQuoted), p.ValueQuoted).
		Clause("PERMISSIONS", block(p.Permissions)).
		Comment(p.Comment)
}

// function writes every part in the statement head so PERMISSIONS and
// COMMENT follow the closing brace of a multi-line body.
func (f *Formatter) function(fn *parser.FunctionDef) *utils.SQLBuilder {
	args := make([]string, 0, len(fn.Args))
	for _, arg := range fn.Args {
		if arg.Type == "" {
			args = append(args, "$"+arg.Name)
			continue
		}
		args = append(args, "$"+arg.Name+": "+arg.Type)
	}

	b := f.builder(parser.KindFunction, &fn.Common).
		Head("fn::" + fn.Name + "(" + strings.Join(args, ", ") + ")")

	if fn.Returns != nil {
		b.Head("->").Head(*fn.Returns)
	}

	b.Head(f.body(fn.Body))
	if fn.Permissions != nil {
		b.Head(b.Keyword("PERMISSIONS")).Head(dedent(*fn.Permissions))
	}
	if fn.Comment != nil {
		b.Head(b.Keyword("COMMENT")).Head(utils.QuoteString(*fn.Comment))
	}

	return b
}

// body renders `{ stmt }` for one-line bodies, otherwise a block with each
// line indented one level.
func (f *Formatter) body(body *string) string {
	switch {
	case body == nil:
		return ""
	case *body == "":
		return "{}"
	}
	if !strings.Contains(*body, "\n") {
		return "{ " + *body + " }"
	}

	lines := strings.Split(dedent(*body), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = f.indent(1) + line
		}
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

func (f *Formatter) analyzer(a *parser.AnalyzerDef) *utils.SQLBuilder {
	return f.builder(parser.KindAnalyzer, &a.Common).
		Name(a.Name).
		Clause("FUNCTION", a.Function).
		List("TOKENIZERS", a.Tokenizers).
		List("FILTERS", a.Filters).
		Comment(a.Comment)
}

func (f *Formatter) sequence(s *parser.SequenceDef) *utils.SQLBuilder {
	return f.builder(parser.KindSequence, &s.Common).
		Name(s.Name).
		Clause("BATCH", formatInt(s.Batch)).
		Clause("START", formatInt(s.Start)).
		Clause("TIMEOUT", s.Timeout).
		Comment(s.Comment)
}

func formatInt(n *int64) *string {
	if n == nil {
		return nil
	}
	return utils.Ptr(strconv.FormatInt(*n, 10))
}
