package schema

import (
	"bytes"
	"io"
	"slices"

	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/parser"
	"gopkg.in/yaml.v3"
)

type (
	// Schema is the aggregate of a parsed script: one collection per statement
	// kind. Fields, events and indexes are keyed by `<table>.<name>`, every
	// other kind by name. Definitions of kinds added through a custom registry
	// land in Others.
	Schema struct {
		Tables    *Collection[*parser.TableDef]
		Fields    *Collection[*parser.FieldDef]
		Events    *Collection[*parser.EventDef]
		Params    *Collection[*parser.ParamDef]
		Buckets   *Collection[*parser.BucketDef]
		Modules   *Collection[*parser.ModuleDef]
		Sequences *Collection[*parser.SequenceDef]
		Analyzers *Collection[*parser.AnalyzerDef]
		Users     *Collection[*parser.UserDef]
		Accesses  *Collection[*parser.AccessDef]
		Functions *Collection[*parser.FunctionDef]
		Indexes   *Collection[*parser.IndexDef]
		Others    map[parser.Kind]*Collection[parser.Definition]
	}

	// Section pairs a collection with the kind it holds and its name in
	// serialised output.
	Section struct {
		Kind parser.Kind
		Name string
		Defs Definitions
	}
)

// New returns an empty schema.
func New() *Schema {
	return &Schema{
		Tables:    NewCollection[*parser.TableDef](),
		Fields:    NewCollection[*parser.FieldDef](),
		Events:    NewCollection[*parser.EventDef](),
		Params:    NewCollection[*parser.ParamDef](),
		Buckets:   NewCollection[*parser.BucketDef](),
		Modules:   NewCollection[*parser.ModuleDef](),
		Sequences: NewCollection[*parser.SequenceDef](),
		Analyzers: NewCollection[*parser.AnalyzerDef](),
		Users:     NewCollection[*parser.UserDef](),
		Accesses:  NewCollection[*parser.AccessDef](),
		Functions: NewCollection[*parser.FunctionDef](),
		Indexes:   NewCollection[*parser.IndexDef](),
		Others:    make(map[parser.Kind]*Collection[parser.Definition]),
	}
}

// Build folds defs into a new schema in order. A later definition with the
// same kind and key replaces the earlier one; OVERWRITE and IF NOT EXISTS are
// kept on the definitions but not acted upon.
//
// Example:
//
//	sql, _ := parser.ParseString(script)
//	s := schema.Build(sql.Statements)
//
//	for _, field := range s.FieldsOf("user") {
//		fmt.Println(field.Name, *field.Type)
//	}
func Build(defs []parser.Definition) *Schema {
	s := New()
	for _, def := range defs {
		s.Add(def)
	}
	return s
}

// Key returns the key def is stored under.
func Key(def parser.Definition) string {
	if scoped, ok := def.(parser.TableScoped); ok {
		return scoped.TableName() + "." + def.Base().Name
	}
	return def.Base().Name
}

// Add stores def, replacing any definition with the same kind and key.
func (s *Schema) Add(def parser.Definition) {
	key := Key(def)

	switch d := def.(type) {
	case *parser.TableDef:
		s.Tables.Put(key, d)
	case *parser.FieldDef:
		s.Fields.Put(key, d)
	case *parser.EventDef:
		s.Events.Put(key, d)
	case *parser.ParamDef:
		s.Params.Put(key, d)
	case *parser.BucketDef:
		s.Buckets.Put(key, d)
	case *parser.ModuleDef:
		s.Modules.Put(key, d)
	case *parser.SequenceDef:
		s.Sequences.Put(key, d)
	case *parser.AnalyzerDef:
		s.Analyzers.Put(key, d)
	case *parser.UserDef:
		s.Users.Put(key, d)
	case *parser.AccessDef:
		s.Accesses.Put(key, d)
	case *parser.FunctionDef:
		s.Functions.Put(key, d)
	case *parser.IndexDef:
		s.Indexes.Put(key, d)
	default:
		others, ok := s.Others[def.Kind()]
		if !ok {
			others = NewCollection[parser.Definition]()
			s.Others[def.Kind()] = others
		}
		others.Put(key, def)
	}
}

// FieldsOf returns the fields defined on table in declaration order.
func (s *Schema) FieldsOf(table string) []*parser.FieldDef {
	return ownedBy(s.Fields, table)
}

// EventsOf returns the events defined on table in declaration order.
func (s *Schema) EventsOf(table string) []*parser.EventDef {
	return ownedBy(s.Events, table)
}

// IndexesOf returns the indexes defined on table in declaration order.
func (s *Schema) IndexesOf(table string) []*parser.IndexDef {
	return ownedBy(s.Indexes, table)
}

func ownedBy[T parser.TableScoped](c *Collection[T], table string) []T {
	var defs []T
	for _, def := range c.All() {
		if def.TableName() == table {
			defs = append(defs, def)
		}
	}
	return defs
}

// Sections returns every collection in a fixed order: the built-in kinds
// first, then Others sorted by kind.
func (s *Schema) Sections() []Section {
	sections := []Section{
		{Kind: parser.KindTable, Name: "tables", Defs: s.Tables},
		{Kind: parser.KindField, Name: "fields", Defs: s.Fields},
		{Kind: parser.KindEvent, Name: "events", Defs: s.Events},
		{Kind: parser.KindParam, Name: "params", Defs: s.Params},
		{Kind: parser.KindBucket, Name: "buckets", Defs: s.Buckets},
		{Kind: parser.KindModule, Name: "modules", Defs: s.Modules},
		{Kind: parser.KindSequence, Name: "sequences", Defs: s.Sequences},
		{Kind: parser.KindAnalyzer, Name: "analyzers", Defs: s.Analyzers},
		{Kind: parser.KindUser, Name: "users", Defs: s.Users},
		{Kind: parser.KindAccess, Name: "accesses", Defs: s.Accesses},
		{Kind: parser.KindFunction, Name: "functions", Defs: s.Functions},
		{Kind: parser.KindIndex, Name: "indexes", Defs: s.Indexes},
	}

	kinds := make([]parser.Kind, 0, len(s.Others))
	for kind := range s.Others {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	for _, kind := range kinds {
		sections = append(sections, Section{Kind: kind, Name: string(kind), Defs: s.Others[kind]})
	}

	return sections
}

// Lookup finds a definition by kind and key.
func (s *Schema) Lookup(kind parser.Kind, key string) (parser.Definition, bool) {
	for _, sec := range s.Sections() {
		if sec.Kind == kind {
			if def, ok := sec.Defs.Definition(key); ok {
				return def, true
			}
		}
	}
	return nil, false
}

// Definitions returns every definition, section by section, each section in
// declaration order.
func (s *Schema) Definitions() []parser.Definition {
	var defs []parser.Definition
	for _, sec := range s.Sections() {
		for _, key := range sec.Defs.Keys() {
			def, _ := sec.Defs.Definition(key)
			defs = append(defs, def)
		}
	}
	return defs
}

// Len returns the number of definitions across all sections.
func (s *Schema) Len() int {
	n := 0
	for _, sec := range s.Sections() {
		n += sec.Defs.Len()
	}
	return n
}

// MarshalJSON writes the non-empty sections in Sections order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	for _, sec := range s.Sections() {
		if sec.Defs.Len() == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		if err := writeJSONMember(&buf, sec.Name, sec.Defs); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML writes the non-empty sections in Sections order.
func (s *Schema) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range s.Sections() {
		if sec.Defs.Len() == 0 {
			continue
		}
		if err := appendYAMLEntry(node, sec.Name, sec.Defs); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ParseString parses text and aggregates the result. When some statements
// fail, the schema holds every definition that parsed and the error is a
// parser.ParseErrors.
func ParseString(text string, opts ...parser.Option) (*Schema, error) {
	sql, err := parser.New(opts...).ParseString(text)
	if sql == nil {
		return nil, err
	}
	return Build(sql.Statements), err
}

// Parse reads r fully and parses it with ParseString.
func Parse(r io.Reader, opts ...parser.Option) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read schema")
	}
	return ParseString(string(data), opts...)
}

// ParseFile compiles the file at path, inlining its imports, and parses the
// result.
func ParseFile(path string, opts ...parser.Option) (*Schema, error) {
	var buf bytes.Buffer
	if err := Compile(path, &buf); err != nil {
		return nil, err
	}
	return ParseString(buf.String(), opts...)
}
