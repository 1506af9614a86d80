package parser

import "github.com/pseudomuto/definer/pkg/compare"

// Durations holds the parts of a DURATION clause:
// DURATION [FOR GRANT d] [, FOR TOKEN d] [, FOR SESSION d]
type Durations struct {
	Grant   *string `json:"grant,omitempty" yaml:"grant,omitempty"`
	Token   *string `json:"token,omitempty" yaml:"token,omitempty"`
	Session *string `json:"session,omitempty" yaml:"session,omitempty"`
}

func (d *Durations) Equal(other *Durations) bool {
	return compare.Pointers(d.Grant, other.Grant) &&
		compare.Pointers(d.Token, other.Token) &&
		compare.Pointers(d.Session, other.Session)
}

func parseDurations(raw *string) *Durations {
	if raw == nil {
		return nil
	}

	d := &Durations{}
	for _, item := range splitList(*raw) {
		c := newCursor(item)
		c.accept("FOR")

		var target **string
		switch {
		case c.accept("GRANT"):
			target = &d.Grant
		case c.accept("TOKEN"):
			target = &d.Token
		case c.accept("SESSION"):
			target = &d.Session
		default:
			continue
		}

		if v := c.rest(); v != "" {
			*target = &v
		}
	}

	return d
}
