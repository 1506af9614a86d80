package parser

import "github.com/pseudomuto/definer/pkg/compare"

// FieldDef represents DEFINE FIELD statements. DefaultQuoted and ValueQuoted
// record that the clause was a string literal.
// Syntax: DEFINE FIELD [OVERWRITE | IF NOT EXISTS] name ON [TABLE] table
//
//	[FLEXIBLE] [TYPE type] [DEFAULT [ALWAYS] expr] [VALUE expr]
//	[ASSERT expr] [READONLY] [REFERENCE [ON DELETE ...]]
//	[PERMISSIONS ...] [COMMENT "text"]
type FieldDef struct {
	Common `yaml:",inline"`

	Table         string  `json:"table" yaml:"table"`
	Type          *string `json:"type,omitempty" yaml:"type,omitempty"`
	Flexible      bool    `json:"flexible,omitempty" yaml:"flexible,omitempty"`
	Default       *string `json:"default,omitempty" yaml:"default,omitempty"`
	DefaultAlways bool    `json:"defaultAlways,omitempty" yaml:"defaultAlways,omitempty"`
	DefaultQuoted bool    `json:"defaultQuoted,omitempty" yaml:"defaultQuoted,omitempty"`
	Value         *string `json:"value,omitempty" yaml:"value,omitempty"`
	ValueQuoted   bool    `json:"valueQuoted,omitempty" yaml:"valueQuoted,omitempty"`
	Assert        *string `json:"assert,omitempty" yaml:"assert,omitempty"`
	Readonly      bool    `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Reference     *string `json:"reference,omitempty" yaml:"reference,omitempty"`
	Permissions   *string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

var fieldClauses = []string{
	"TYPE", "FLEXIBLE", "DEFAULT", "VALUE", "ASSERT", "READONLY", "REFERENCE", "PERMISSIONS", "COMMENT",
}

func (f *FieldDef) Kind() Kind { return KindField }

// TableName returns the owning table.
func (f *FieldDef) TableName() string { return f.Table }

func (f *FieldDef) Equal(other Definition) bool {
	o, ok := other.(*FieldDef)
	return ok && f.equalCommon(&o.Common) &&
		f.Table == o.Table &&
		compare.Pointers(f.Type, o.Type) &&
		f.Flexible == o.Flexible &&
		compare.Pointers(f.Default, o.Default) &&
		f.DefaultAlways == o.DefaultAlways &&
		f.DefaultQuoted == o.DefaultQuoted &&
		compare.Pointers(f.Value, o.Value) &&
		f.ValueQuoted == o.ValueQuoted &&
		compare.Pointers(f.Assert, o.Assert) &&
		f.Readonly == o.Readonly &&
		compare.Pointers(f.Reference, o.Reference) &&
		compare.Pointers(f.Permissions, o.Permissions)
}

func extractField(rest string) Definition {
	c := newCursor(rest)
	def := &FieldDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()
	def.Table = c.onTable()

	clauses := c.clauses(fieldClauses...)
	def.Type = clauses.raw("TYPE")
	def.Flexible = clauses.has("FLEXIBLE")
	if d := clauses.raw("DEFAULT"); d != nil {
		def.Default, def.DefaultAlways, def.DefaultQuoted = defaultValue(*d)
	}
	def.Value, def.ValueQuoted = clauses.literal("VALUE")
	def.Assert = clauses.raw("ASSERT")
	def.Readonly = clauses.has("READONLY")
	def.Reference = referenceValue(clauses)
	def.Permissions = clauses.raw("PERMISSIONS")
	def.Comment = clauses.value("COMMENT")

	return def
}

// defaultValue separates the ALWAYS marker from the default expression and
// reports whether the expression is a string literal.
func defaultValue(raw string) (value *string, always, quoted bool) {
	c := newCursor(raw)
	if c.accept("ALWAYS") {
		if c.done() {
			return nil, true, false
		}
		raw, always = c.rest(), true
	}

	v, quoted := unquoteLiteral(raw)
	return &v, always, quoted
}

// referenceValue returns the REFERENCE options. A bare REFERENCE yields an
// empty string so its presence is still visible.
func referenceValue(clauses *clauseSet) *string {
	if v := clauses.raw("REFERENCE"); v != nil {
		return v
	}
	if clauses.has("REFERENCE") {
		empty := ""
		return &empty
	}
	return nil
}
