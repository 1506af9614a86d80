package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// ParamDef represents DEFINE PARAM statements
// Syntax: DEFINE PARAM [OVERWRITE | IF NOT EXISTS] $name
//
//	[VALUE expr] [PERMISSIONS ...] [COMMENT "text"]
//
// Name is stored without the leading `$`. ValueQuoted records that VALUE was a
// string literal.
type ParamDef struct {
	Common `yaml:",inline"`

	Value       *string `json:"value,omitempty" yaml:"value,omitempty"`
	ValueQuoted bool    `json:"valueQuoted,omitempty" yaml:"valueQuoted,omitempty"`
	Permissions *string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

var paramClauses = []string{"VALUE", "PERMISSIONS", "COMMENT"}

func (p *ParamDef) Kind() Kind { return KindParam }

func (p *ParamDef) Equal(other Definition) bool {
	o, ok := other.(*ParamDef)
	return ok && p.equalCommon(&o.Common) &&
		compare.Pointers(p.Value, o.Value) &&
		p.ValueQuoted == o.ValueQuoted &&
		compare.Pointers(p.Permissions, o.Permissions)
}

func extractParam(rest string) Definition {
	c := newCursor(rest)
	def := &ParamDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = strings.TrimPrefix(c.name(), "$")

	clauses := c.clauses(paramClauses...)
	def.Value, def.ValueQuoted = clauses.literal("VALUE")
	def.Permissions = clauses.raw("PERMISSIONS")
	def.Comment = clauses.value("COMMENT")

	return def
}
