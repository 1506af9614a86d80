package parser

import "github.com/pseudomuto/definer/pkg/compare"

// SequenceDef represents DEFINE SEQUENCE statements
// Syntax: DEFINE SEQUENCE [OVERWRITE | IF NOT EXISTS] name
//
//	[BATCH n] [START n] [TIMEOUT duration] [COMMENT "text"]
//
// Batch and Start are nil when the clause is missing or its value is not an
// integer that fits in an int64, e.g. `BATCH lots` or
// `BATCH 99999999999999999999`. Digit separators (`1_000`) are allowed.
type SequenceDef struct {
	Common `yaml:",inline"`

	Batch   *int64  `json:"batch,omitempty" yaml:"batch,omitempty"`
	Start   *int64  `json:"start,omitempty" yaml:"start,omitempty"`
	Timeout *string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

var sequenceClauses = []string{"BATCH", "START", "TIMEOUT", "COMMENT"}

func (s *SequenceDef) Kind() Kind { return KindSequence }

func (s *SequenceDef) Equal(other Definition) bool {
	o, ok := other.(*SequenceDef)
	return ok && s.equalCommon(&o.Common) &&
		compare.Pointers(s.Batch, o.Batch) &&
		compare.Pointers(s.Start, o.Start) &&
		compare.Pointers(s.Timeout, o.Timeout)
}

func extractSequence(rest string) Definition {
	c := newCursor(rest)
	def := &SequenceDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()

	clauses := c.clauses(sequenceClauses...)
	def.Batch = clauses.integer("BATCH")
	def.Start = clauses.integer("START")
	def.Timeout = clauses.raw("TIMEOUT")
	def.Comment = clauses.value("COMMENT")

	return def
}
