package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// ModuleDef represents DEFINE MODULE statements
// Syntax: DEFINE MODULE [OVERWRITE | IF NOT EXISTS] mod::name
//
//	AS f"bucket:/path" [PERMISSIONS ...] [COMMENT "text"]
type ModuleDef struct {
	Common `yaml:",inline"`

	File        *string `json:"file,omitempty" yaml:"file,omitempty"`
	Permissions *string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

var moduleClauses = []string{"AS", "PERMISSIONS", "COMMENT"}

func (m *ModuleDef) Kind() Kind { return KindModule }

func (m *ModuleDef) Equal(other Definition) bool {
	o, ok := other.(*ModuleDef)
	return ok && m.equalCommon(&o.Common) &&
		compare.Pointers(m.File, o.File) &&
		compare.Pointers(m.Permissions, o.Permissions)
}

func extractModule(rest string) Definition {
	c := newCursor(rest)
	def := &ModuleDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()

	clauses := c.clauses(moduleClauses...)
	if as := clauses.raw("AS"); as != nil {
		file := *as
		if strings.HasPrefix(file, `f"`) || strings.HasPrefix(file, `f'`) {
			file = file[1:]
		}
		file = unquote(file)
		def.File = &file
	}
	def.Permissions = clauses.raw("PERMISSIONS")
	def.Comment = clauses.value("COMMENT")

	return def
}
