package format

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/utils"
)

func (f *Formatter) table(t *parser.TableDef) *utils.SQLBuilder {
	b := f.builder(parser.KindTable, &t.Common).
		Name(t.Name).
		Flag("DROP", t.Drop)

	if t.SchemaMode != nil {
		b.Raw(f.keyword(*t.SchemaMode))
	}
	if t.TableType != nil {
		b.Clause("TYPE", utils.Ptr(f.tableType(t)))
	}

	return b.
		Clause("AS", block(t.View)).
		Clause("CHANGEFEED", t.Changefeed).
		Clause("PERMISSIONS", block(t.Permissions)).
		Comment(t.Comment)
}

// tableType renders `RELATION IN a|b OUT c ENFORCED`. FROM and TO are
// written as IN and OUT.
func (f *Formatter) tableType(t *parser.TableDef) string {
	parts := []string{f.keyword(*t.TableType)}
	if *t.TableType != "relation" {
		return parts[0]
	}

	if len(t.RelationIn) > 0 {
		parts = append(parts, f.keyword("IN"), strings.Join(t.RelationIn, "|"))
	}
	if len(t.RelationOut) > 0 {
		parts = append(parts, f.keyword("OUT"), strings.Join(t.RelationOut, "|"))
	}
	if t.Enforced {
		parts = append(parts, f.keyword("ENFORCED"))
	}

	return strings.Join(parts, " ")
}

func (f *Formatter) field(d *parser.FieldDef) *utils.SQLBuilder {
	b := f.builder(parser.KindField, &d.Common).
		Name(d.Name).
		On("TABLE", utils.QuoteIdentifier(d.Table)).
		Flag("FLEXIBLE", d.Flexible).
		Clause("TYPE", d.Type)

	switch {
	case d.DefaultAlways && d.Default == nil:
		b.Flag("DEFAULT ALWAYS", true)
	case d.DefaultAlways:
		b.Value("DEFAULT ALWAYS", d.Default, d.DefaultQuoted)
	default:
		b.Value("DEFAULT", d.Default, d.DefaultQuoted)
	}

	return b.
		Value("VALUE", blockValue(d.Value, d.ValueQuoted), d.ValueQuoted).
		Clause("ASSERT", block(d.Assert)).
		Flag("READONLY", d.Readonly).
		ClauseOrFlag("REFERENCE", d.Reference).
		Clause("PERMISSIONS", block(d.Permissions)).
		Comment(d.Comment)
}

func (f *Formatter) event(e *parser.EventDef) *utils.SQLBuilder {
	return f.builder(parser.KindEvent, &e.Common).
		Name(e.Name).
		On("TABLE", utils.QuoteIdentifier(e.Table)).
		Clause("WHEN", block(e.When)).
		Clause("THEN", block(e.Then)).
		Comment(e.Comment)
}

// index writes COLUMNS as FIELDS and FULLTEXT as SEARCH.
func (f *Formatter) index(i *parser.IndexDef) *utils.SQLBuilder {
	return f.builder(parser.KindIndex, &i.Common).
		Name(i.Name).
		On("TABLE", utils.QuoteIdentifier(i.Table)).
		List("FIELDS", i.Fields).
		Flag("UNIQUE", i.Unique).
		Flag("COUNT", i.Count).
		ClauseOrFlag("SEARCH", i.Search).
		Clause("MTREE", i.MTree).
		Clause("HNSW", i.HNSW).
		Flag("CONCURRENTLY", i.Concurrently).
		Comment(i.Comment)
}
