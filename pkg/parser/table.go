package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// TableDef represents DEFINE TABLE statements
// Syntax: DEFINE TABLE [OVERWRITE | IF NOT EXISTS] name
//
//	[DROP] [SCHEMAFULL | SCHEMALESS]
//	[TYPE ANY | NORMAL | RELATION [IN | FROM a] [OUT | TO b] [ENFORCED]]
//	[AS SELECT ...] [CHANGEFEED duration [INCLUDE ORIGINAL]]
//	[PERMISSIONS ...] [COMMENT "text"]
type TableDef struct {
	Common `yaml:",inline"`

	Drop        bool     `json:"drop,omitempty" yaml:"drop,omitempty"`
	SchemaMode  *string  `json:"schemaMode,omitempty" yaml:"schemaMode,omitempty"`
	TableType   *string  `json:"tableType,omitempty" yaml:"tableType,omitempty"`
	RelationIn  []string `json:"relationIn,omitempty" yaml:"relationIn,omitempty"`
	RelationOut []string `json:"relationOut,omitempty" yaml:"relationOut,omitempty"`
	Enforced    bool     `json:"enforced,omitempty" yaml:"enforced,omitempty"`
	View        *string  `json:"view,omitempty" yaml:"view,omitempty"`
	Changefeed  *string  `json:"changefeed,omitempty" yaml:"changefeed,omitempty"`
	Permissions *string  `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

var tableClauses = []string{
	"DROP", "SCHEMAFULL", "SCHEMALESS", "TYPE", "AS", "CHANGEFEED", "PERMISSIONS", "COMMENT",
}

func (t *TableDef) Kind() Kind { return KindTable }

func (t *TableDef) Equal(other Definition) bool {
	o, ok := other.(*TableDef)
	return ok && t.equalCommon(&o.Common) &&
		t.Drop == o.Drop &&
		compare.Pointers(t.SchemaMode, o.SchemaMode) &&
		compare.Pointers(t.TableType, o.TableType) &&
		compare.Strings(t.RelationIn, o.RelationIn) &&
		compare.Strings(t.RelationOut, o.RelationOut) &&
		t.Enforced == o.Enforced &&
		compare.Pointers(t.View, o.View) &&
		compare.Pointers(t.Changefeed, o.Changefeed) &&
		compare.Pointers(t.Permissions, o.Permissions)
}

func extractTable(rest string) Definition {
	c := newCursor(rest)
	def := &TableDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()

	clauses := c.clauses(tableClauses...)
	def.Drop = clauses.has("DROP")
	if mode := clauses.first("SCHEMAFULL", "SCHEMALESS"); mode != "" {
		lowered := strings.ToLower(mode)
		def.SchemaMode = &lowered
	}
	if typ := clauses.raw("TYPE"); typ != nil {
		def.applyType(*typ)
	}
	def.View = clauses.raw("AS")
	def.Changefeed = clauses.raw("CHANGEFEED")
	def.Permissions = clauses.raw("PERMISSIONS")
	def.Comment = clauses.value("COMMENT")

	return def
}

// applyType splits `RELATION IN a|b OUT c ENFORCED` into its parts.
func (t *TableDef) applyType(value string) {
	c := newCursor(value)
	head, ok := c.peek()
	if !ok {
		return
	}
	c.pos++

	typ := strings.ToLower(head.value)
	t.TableType = &typ
	if typ != "relation" {
		return
	}

	rel := c.clauses("IN", "FROM", "OUT", "TO", "ENFORCED")
	t.RelationIn = relationTables(rel, "IN", "FROM")
	t.RelationOut = relationTables(rel, "OUT", "TO")
	t.Enforced = rel.has("ENFORCED")
}

func relationTables(rel *clauseSet, keywords ...string) []string {
	kw := rel.first(keywords...)
	if kw == "" {
		return nil
	}

	v := rel.raw(kw)
	if v == nil {
		return nil
	}

	var tables []string
	for _, part := range strings.Split(*v, "|") {
		if part = strings.TrimSpace(part); part != "" {
			tables = append(tables, part)
		}
	}
	return tables
}
