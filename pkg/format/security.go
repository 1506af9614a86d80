package format

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/parser"
	"github.com/pseudomuto/definer/pkg/utils"
)

func (f *Formatter) user(u *parser.UserDef) *utils.SQLBuilder {
	return f.builder(parser.KindUser, &u.Common).
		Name(u.Name).
		On("", f.level(u.Level)).
		Quoted("PASSWORD", u.Password).
		Quoted("PASSHASH", u.Passhash).
		List("ROLES", u.Roles).
		Clause("DURATION", f.durations(u.Duration)).
		Comment(u.Comment)
}

func (f *Formatter) access(a *parser.AccessDef) *utils.SQLBuilder {
	b := f.builder(parser.KindAccess, &a.Common).
		Name(a.Name).
		On("", f.level(a.Level))

	if a.Type != nil {
		typ := f.keyword(*a.Type)
		if a.TypeOptions != nil {
			typ += " " + *a.TypeOptions
		}
		b.Clause("TYPE", &typ)
	}

	return b.
		Clause("SIGNUP", block(a.Signup)).
		Clause("SIGNIN", block(a.Signin)).
		Clause("AUTHENTICATE", block(a.Authenticate)).
		Clause("DURATION", f.durations(a.Duration)).
		Comment(a.Comment)
}

func (f *Formatter) level(level string) string {
	if level == "" {
		return ""
	}
	return f.keyword(level)
}

// durations renders `FOR GRANT 30d, FOR TOKEN 1h, FOR SESSION 12h`, skipping
// unset entries.
func (f *Formatter) durations(d *parser.Durations) *string {
	if d == nil {
		return nil
	}

	var items []string
	add := func(kw string, v *string) {
		if v != nil {
			items = append(items, f.keyword("FOR "+kw)+" "+*v)
		}
	}
	add("GRANT", d.Grant)
	add("TOKEN", d.Token)
	add("SESSION", d.Session)

	if len(items) == 0 {
		return nil
	}
	return utils.Ptr(strings.Join(items, ", "))
}
