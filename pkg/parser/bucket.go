package parser

import "github.com/pseudomuto/definer/pkg/compare"

// BucketDef represents DEFINE BUCKET statements
// Syntax: DEFINE BUCKET [OVERWRITE | IF NOT EXISTS] name
//
//	[READONLY] [BACKEND "url"] [PERMISSIONS ...] [COMMENT "text"]
type BucketDef struct {
	Common `yaml:",inline"`

	Backend     *string `json:"backend,omitempty" yaml:"backend,omitempty"`
	Readonly    bool    `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Permissions *string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

var bucketClauses = []string{"BACKEND", "READONLY", "PERMISSIONS", "COMMENT"}

func (b *BucketDef) Kind() Kind { return KindBucket }

func (b *BucketDef) Equal(other Definition) bool {
	o, ok := other.(*BucketDef)
	return ok && b.equalCommon(&o.Common) &&
		compare.Pointers(b.Backend, o.Backend) &&
		b.Readonly == o.Readonly &&
		compare.Pointers(b.Permissions, o.Permissions)
}

func extractBucket(rest string) Definition {
	c := newCursor(rest)
	def := &BucketDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()

	clauses := c.clauses(bucketClauses...)
	def.Backend = clauses.value("BACKEND")
	def.Readonly = clauses.has("READONLY")
	def.Permissions = clauses.raw("PERMISSIONS")
	def.Comment = clauses.value("COMMENT")

	return def
}
