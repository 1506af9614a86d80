package parser

import "github.com/pseudomuto/definer/pkg/compare"

// AnalyzerDef represents DEFINE ANALYZER statements
// Syntax: DEFINE ANALYZER [OVERWRITE | IF NOT EXISTS] name
//
//	[FUNCTION fn::name] [TOKENIZERS t, ...] [FILTERS f, ...] [COMMENT "text"]
type AnalyzerDef struct {
	Common `yaml:",inline"`

	Function   *string  `json:"function,omitempty" yaml:"function,omitempty"`
	Tokenizers []string `json:"tokenizers,omitempty" yaml:"tokenizers,omitempty"`
	Filters    []string `json:"filters,omitempty" yaml:"filters,omitempty"`
}

var analyzerClauses = []string{"FUNCTION", "TOKENIZERS", "FILTERS", "COMMENT"}

func (a *AnalyzerDef) Kind() Kind { return KindAnalyzer }

func (a *AnalyzerDef) Equal(other Definition) bool {
	o, ok := other.(*AnalyzerDef)
	return ok && a.equalCommon(&o.Common) &&
		compare.Pointers(a.Function, o.Function) &&
		compare.Strings(a.Tokenizers, o.Tokenizers) &&
		compare.Strings(a.Filters, o.Filters)
}

func extractAnalyzer(rest string) Definition {
	c := newCursor(rest)
	def := &AnalyzerDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()

	clauses := c.clauses(analyzerClauses...)
	def.Function = clauses.raw("FUNCTION")
	def.Tokenizers = clauses.list("TOKENIZERS")
	def.Filters = clauses.list("FILTERS")
	def.Comment = clauses.value("COMMENT")

	return def
}
