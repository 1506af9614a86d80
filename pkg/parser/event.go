package parser

import "github.com/pseudomuto/definer/pkg/compare"

// EventDef represents DEFINE EVENT statements
// Syntax: DEFINE EVENT [OVERWRITE | IF NOT EXISTS] name ON [TABLE] table
//
//	[WHEN condition] THEN action [COMMENT "text"]
//
// WHEN and THEN are kept as written, including any braces or parentheses.
type EventDef struct {
	Common `yaml:",inline"`

	Table string  `json:"table" yaml:"table"`
	When  *string `json:"when,omitempty" yaml:"when,omitempty"`
	Then  *string `json:"then,omitempty" yaml:"then,omitempty"`
}

var eventClauses = []string{"WHEN", "THEN", "COMMENT"}

func (e *EventDef) Kind() Kind { return KindEvent }

// TableName returns the owning table.
func (e *EventDef) TableName() string { return e.Table }

func (e *EventDef) Equal(other Definition) bool {
	o, ok := other.(*EventDef)
	return ok && e.equalCommon(&o.Common) &&
		e.Table == o.Table &&
		compare.Pointers(e.When, o.When) &&
		compare.Pointers(e.Then, o.Then)
}

func extractEvent(rest string) Definition {
	c := newCursor(rest)
	def := &EventDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()
	def.Table = c.onTable()

	clauses := c.clauses(eventClauses...)
	def.When = clauses.raw("WHEN")
	def.Then = clauses.raw("THEN")
	def.Comment = clauses.value("COMMENT")

	return def
}
