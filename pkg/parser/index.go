package parser

import "github.com/pseudomuto/definer/pkg/compare"

// IndexDef represents DEFINE INDEX statements
// Syntax: DEFINE INDEX [OVERWRITE | IF NOT EXISTS] name ON [TABLE] table
//
//	FIELDS | COLUMNS a, b [UNIQUE | COUNT | SEARCH ... | FULLTEXT ... | MTREE ... | HNSW ...]
//	[CONCURRENTLY] [COMMENT "text"]
//
// SEARCH and FULLTEXT are synonyms; their options land in Search.
type IndexDef struct {
	Common `yaml:",inline"`

	Table        string   `json:"table" yaml:"table"`
	Fields       []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Unique       bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Count        bool     `json:"count,omitempty" yaml:"count,omitempty"`
	Search       *string  `json:"search,omitempty" yaml:"search,omitempty"`
	MTree        *string  `json:"mtree,omitempty" yaml:"mtree,omitempty"`
	HNSW         *string  `json:"hnsw,omitempty" yaml:"hnsw,omitempty"`
	Concurrently bool     `json:"concurrently,omitempty" yaml:"concurrently,omitempty"`
}

var indexClauses = []string{
	"FIELDS", "COLUMNS", "UNIQUE", "COUNT", "SEARCH", "FULLTEXT", "MTREE", "HNSW", "CONCURRENTLY", "COMMENT",
}

func (i *IndexDef) Kind() Kind { return KindIndex }

// TableName returns the indexed table.
func (i *IndexDef) TableName() string { return i.Table }

func (i *IndexDef) Equal(other Definition) bool {
	o, ok := other.(*IndexDef)
	return ok && i.equalCommon(&o.Common) &&
		i.Table == o.Table &&
		compare.Strings(i.Fields, o.Fields) &&
		i.Unique == o.Unique &&
		i.Count == o.Count &&
		compare.Pointers(i.Search, o.Search) &&
		compare.Pointers(i.MTree, o.MTree) &&
		compare.Pointers(i.HNSW, o.HNSW) &&
		i.Concurrently == o.Concurrently
}

func extractIndex(rest string) Definition {
	c := newCursor(rest)
	def := &IndexDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()
	def.Table = c.onTable()

	clauses := c.clauses(indexClauses...)
	if kw := clauses.first("FIELDS", "COLUMNS"); kw != "" {
		def.Fields = clauses.list(kw)
	}
	def.Unique = clauses.has("UNIQUE")
	def.Count = clauses.has("COUNT")
	if kw := clauses.first("SEARCH", "FULLTEXT"); kw != "" {
		def.Search = clauses.raw(kw)
		if def.Search == nil {
			empty := ""
			def.Search = &empty
		}
	}
	def.MTree = clauses.raw("MTREE")
	def.HNSW = clauses.raw("HNSW")
	def.Concurrently = clauses.has("CONCURRENTLY")
	def.Comment = clauses.value("COMMENT")

	return def
}
