package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

// AccessDef represents DEFINE ACCESS statements
// Syntax: DEFINE ACCESS [OVERWRITE | IF NOT EXISTS] name ON ROOT | NAMESPACE | DATABASE
//
//	TYPE RECORD | JWT | BEARER [options] [SIGNUP expr] [SIGNIN expr]
//	[AUTHENTICATE expr] [DURATION ...] [COMMENT "text"]
type AccessDef struct {
	Common `yaml:",inline"`

	Level        string     `json:"level,omitempty" yaml:"level,omitempty"`
	Type         *string    `json:"type,omitempty" yaml:"type,omitempty"`
	TypeOptions  *string    `json:"typeOptions,omitempty" yaml:"typeOptions,omitempty"`
	Signup       *string    `json:"signup,omitempty" yaml:"signup,omitempty"`
	Signin       *string    `json:"signin,omitempty" yaml:"signin,omitempty"`
	Authenticate *string    `json:"authenticate,omitempty" yaml:"authenticate,omitempty"`
	Duration     *Durations `json:"duration,omitempty" yaml:"duration,omitempty"`
}

var accessClauses = []string{"TYPE", "SIGNUP", "SIGNIN", "AUTHENTICATE", "DURATION", "COMMENT"}

func (a *AccessDef) Kind() Kind { return KindAccess }

func (a *AccessDef) Equal(other Definition) bool {
	o, ok := other.(*AccessDef)
	return ok && a.equalCommon(&o.Common) &&
		a.Level == o.Level &&
		compare.Pointers(a.Type, o.Type) &&
		compare.Pointers(a.TypeOptions, o.TypeOptions) &&
		compare.Pointers(a.Signup, o.Signup) &&
		compare.Pointers(a.Signin, o.Signin) &&
		compare.Pointers(a.Authenticate, o.Authenticate) &&
		compare.PointersWithEqual(a.Duration, o.Duration, (*Durations).Equal)
}

func extractAccess(rest string) Definition {
	c := newCursor(rest)
	def := &AccessDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = c.name()
	def.Level = c.onLevel()

	clauses := c.clauses(accessClauses...)
	if typ := clauses.raw("TYPE"); typ != nil {
		tc := newCursor(*typ)
		head, _ := tc.peek()
		kind := strings.ToLower(head.value)
		def.Type = &kind

		tc.pos++
		if opts := tc.rest(); opts != "" {
			def.TypeOptions = &opts
		}
	}
	def.Signup = clauses.raw("SIGNUP")
	def.Signin = clauses.raw("SIGNIN")
	def.Authenticate = clauses.raw("AUTHENTICATE")
	def.Duration = parseDurations(clauses.raw("DURATION"))
	def.Comment = clauses.value("COMMENT")

	return def
}
