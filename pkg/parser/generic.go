package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// GenericDef is produced by GenericExtractor for statement kinds without a
// dedicated type. Clauses maps each clause keyword found to its raw value;
// flag clauses map to "".
type GenericDef struct {
	Common `yaml:",inline"`

	DefKind Kind              `json:"kind" yaml:"kind"`
	Clauses map[string]string `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

func (g *GenericDef) Kind() Kind { return g.DefKind }

func (g *GenericDef) Equal(other Definition) bool {
	o, ok := other.(*GenericDef)
	return ok && g.equalCommon(&o.Common) &&
		g.DefKind == o.DefKind &&
		compare.Maps(g.Clauses, o.Clauses)
}

// GenericExtractor returns an Extractor that reads the common modifiers and
// name, then indexes the given clause keywords. COMMENT, when listed, fills
// Common.Comment instead of Clauses.
//
// Example:
//
//	r := parser.DefaultRegistry().
//		Register("NAMESPACE", parser.GenericExtractor("namespace", "COMMENT")).
//		Register("DATABASE", parser.GenericExtractor("database", "CHANGEFEED", "STRICT", "COMMENT"))
func GenericExtractor(kind Kind, keywords ...string) Extractor {
	upper := make([]string, len(keywords))
	for i, kw := range keywords {
		upper[i] = strings.ToUpper(kw)
	}

	return func(rest string) Definition {
		c := newCursor(rest)
		def := &GenericDef{DefKind: kind}
		def.Overwrite, def.IfNotExists = c.modifiers()
		def.Name = c.name()

		clauses := c.clauses(upper...)
		for _, kw := range upper {
			if !clauses.has(kw) {
				continue
			}
			if kw == "COMMENT" {
				def.Comment = clauses.value(kw)
				continue
			}

			if def.Clauses == nil {
				def.Clauses = make(map[string]string)
			}
			if v := clauses.raw(kw); v != nil {
				def.Clauses[kw] = *v
			} else {
				def.Clauses[kw] = ""
			}
		}

		return def
	}
}
