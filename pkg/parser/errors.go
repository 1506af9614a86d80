package parser

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies a statement that could not be parsed.
type ErrorKind int

const (
	// InvalidSyntax means the statement does not have the DEFINE <KIND> <rest>
	// shape. The empty statement falls in this category.
	InvalidSyntax ErrorKind = iota + 1

	// UnknownStatement means the shape matched but no extractor is registered
	// for the kind keyword.
	UnknownStatement
)

var (
	ErrInvalidSyntax    = errors.New("invalid syntax")
	ErrUnknownStatement = errors.New("unknown statement")
)

// maxPreview bounds how much statement text an error message repeats.
const maxPreview = 60

func (k ErrorKind) String() string {
	switch k {
	case InvalidSyntax:
		return "InvalidSyntax"
	case UnknownStatement:
		return "UnknownStatement"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type (
	// ParseError reports one statement that did not yield a Definition.
	ParseError struct {
		Kind      ErrorKind
		Keyword   string // kind keyword as written, set for UnknownStatement
		Statement string
	}

	// ParseErrors collects the failures of a multi-statement parse. Statements
	// that parsed successfully are still returned alongside it.
	ParseErrors []*ParseError
)

func invalidSyntax(stmt string) *ParseError {
	return &ParseError{Kind: InvalidSyntax, Statement: stmt}
}

func unknownStatement(keyword, stmt string) *ParseError {
	return &ParseError{Kind: UnknownStatement, Keyword: keyword, Statement: stmt}
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case UnknownStatement:
		return fmt.Sprintf("unknown statement DEFINE %s: %s", strings.ToUpper(e.Keyword), preview(e.Statement))
	default:
		if e.Statement == "" {
			return "invalid syntax: empty statement"
		}
		return fmt.Sprintf("invalid syntax: %s", preview(e.Statement))
	}
}

// Unwrap exposes the sentinel for errors.Is.
func (e *ParseError) Unwrap() error {
	if e.Kind == UnknownStatement {
		return ErrUnknownStatement
	}
	return ErrInvalidSyntax
}

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d statements failed to parse: %s", len(e), strings.Join(msgs, "; "))
}

func (e ParseErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// preview collapses whitespace and shortens long statements for messages.
func preview(stmt string) string {
	s := normalizeWhitespace(stmt)
	if len(s) > maxPreview {
		return s[:maxPreview] + "..."
	}
	return s
}
