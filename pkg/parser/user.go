package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// UserDef represents DEFINE USER statements
// Syntax: DEFINE USER [OVERWRITE | IF NOT EXISTS] name ON ROOT | NAMESPACE | DATABASE
//
//	[PASSWORD "pass" | PASSHASH "hash"] [ROLES role, ...]
//	[DURATION FOR TOKEN d, FOR SESSION d] [COMMENT "text"]
type UserDef struct {
	Common `yaml:",inline"`

	Level    string     `json:"level,omitempty" yaml:"level,omitempty"`
	Password *string    `json:"password,omitempty" yaml:"password,omitempty"`
	Passhash *string    `json:"passhash,omitempty" yaml:"passhash,omitempty"`
	Roles    []string   `json:"roles,omitempty" yaml:"roles,omitempty"`
	Duration *Durations `json:"duration,omitempty" yaml:"duration,omitempty"`
}

var userClauses = []string{"PASSWORD", "PASSHASH", "ROLES", "DURATION", "COMMENT"}

func (u *UserDef) Kind() Kind { return KindUser }

func (u *UserDef) Equal(other Definition) bool {
	o, ok := other.(*UserDef)
	return ok && u.equalCommon(&o.Common) &&
		u.Level == o.Level &&
		compare.Pointers(u.Password, o.Password) &&
		compare.Pointers(u.Passhash, o.Passhash) &&
		compare.SlicesUnordered(u.Roles, o.Roles, strings.EqualFold) &&
		compare.PointersWithEqual(u.Duration, o.Duration, (*Durations).Equal)
}

func extractUser(rest string) Definition {
	c := newCursor(rest)
	def := &UserDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()
	def.Level = c.onLevel()

	clauses := c.clauses(userClauses...)
	def.Password = clauses.value("PASSWORD")
	def.Passhash = clauses.value("PASSHASH")
	def.Roles = clauses.list("ROLES")
	def.Duration = parseDurations(clauses.raw("DURATION"))
	def.Comment = clauses.value("COMMENT")

	return def
}
