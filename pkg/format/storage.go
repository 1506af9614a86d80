package format

import (
	"sort"

	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/utils"
)

func (f *Formatter) bucket(b *parser.BucketDef) *utils.SQLBuilder {
	return f.builder(parser.KindBucket, &b.Common).
		Name(b.Name).
		Quoted("BACKEND", b.Backend).
		Flag("READONLY", b.Readonly).
		Clause("PERMISSIONS", block(b.Permissions)).
		Comment(b.Comment)
}

// module writes the file as an f-string: `AS f"path"`.
func (f *Formatter) module(m *parser.ModuleDef) *utils.SQLBuilder {
	b := f.builder(parser.KindModule, &m.Common).Name(m.Name)
	if m.File != nil {
		b.Clause("AS", utils.Ptr("f"+utils.QuoteString(*m.File)))
	}

	return b.
		Clause("PERMISSIONS", block(m.Permissions)).
		Comment(m.Comment)
}

// generic writes the Raw text when there is one. Definitions built in code
// have no Raw text and are rendered from their clauses in keyword order.
func (f *Formatter) generic(g *parser.GenericDef) string {
	if text := raw(g); text != "" {
		return text
	}

	keywords := make([]string, 0, len(g.Clauses))
	for kw := range g.Clauses {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	b := f.builder(g.DefKind, &g.Common).Name(g.Name)
	for _, kw := range keywords {
		b.ClauseOrFlag(kw, utils.Ptr(g.Clauses[kw]))
	}

	return f.render(b.Comment(g.Comment))
}
