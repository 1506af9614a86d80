package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// Kind identifies the statement family of a parsed definition. Values are the
// lowercase form of the keyword following DEFINE.
type Kind string

const (
	KindTable    Kind = "table"
	KindField    Kind = "field"
	KindEvent    Kind = "event"
	KindParam    Kind = "param"
	KindBucket   Kind = "bucket"
	KindModule   Kind = "module"
	KindSequence Kind = "sequence"
	KindAnalyzer Kind = "analyzer"
	KindUser     Kind = "user"
	KindAccess   Kind = "access"
	KindFunction Kind = "function"
	KindIndex    Kind = "index"
)

// KindOf converts a statement keyword (any case) into a Kind.
func KindOf(keyword string) Kind {
	return Kind(strings.ToLower(keyword))
}

// Keyword returns the uppercase keyword that introduces this kind.
func (k Kind) Keyword() string {
	return strings.ToUpper(string(k))
}

type (
	// Definition is the result of parsing one DEFINE statement. Every statement
	// kind has its own concrete type; callers switch on the type or on Kind().
	Definition interface {
		Kind() Kind
		Base() *Common
		Equal(other Definition) bool
	}

	// TableScoped is implemented by definitions that belong to a table
	// (fields, events and indexes).
	TableScoped interface {
		Definition
		TableName() string
	}

	// Common holds the attributes shared by every definition kind.
	Common struct {
		Name        string  `json:"name" yaml:"name"`
		Comment     *string `json:"comment,omitempty" yaml:"comment,omitempty"`
		Overwrite   bool    `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
		IfNotExists bool    `json:"ifNotExists,omitempty" yaml:"ifNotExists,omitempty"`

		// Raw is the statement text the definition was extracted from.
		Raw string `json:"-" yaml:"-"`
	}
)

// Base returns the shared attributes.
func (c *Common) Base() *Common {
	return c
}

// equalCommon compares everything but the raw source text, so two statements
// that only differ in layout are considered equal.
func (c *Common) equalCommon(other *Common) bool {
	return c.Name == other.Name &&
		compare.Pointers(c.Comment, other.Comment) &&
		c.Overwrite == other.Overwrite &&
		c.IfNotExists == other.IfNotExists
}
