package parser

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// defineHeader matches the whitespace-normalised statement shape.
	defineHeader = regexp.MustCompile(`(?i)^DEFINE ([A-Z_][A-Z0-9_]*) \S`)

	// definePrefix measures `DEFINE <KIND> ` in the original text so the
	// extractor sees the remainder with its whitespace untouched.
	definePrefix = regexp.MustCompile(`(?i)^DEFINE\s+[A-Z_][A-Z0-9_]*\s+`)

	defaultParser = New()
)

type (
	// Option configures a Parser.
	Option func(*Parser)

	// Parser turns DEFINE statements into Definitions. A Parser holds no
	// per-call state and is safe for concurrent use.
	Parser struct {
		registry *Registry
		strip    func(string) string
		log      logrus.FieldLogger
	}

	// SQL is the result of parsing a script: the definitions in declaration
	// order, and the statements that failed.
	SQL struct {
		Statements []Definition
		Errors     ParseErrors
	}
)

// WithRegistry sets the keyword registry used for dispatch.
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.registry = r
	}
}

// WithCommentStripper replaces the comment stripper applied to whole scripts.
func WithCommentStripper(fn func(string) string) Option {
	return func(p *Parser) {
		p.strip = fn
	}
}

// WithLogger sets a logger for debug traces. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

// New creates a Parser using DefaultRegistry and StripComments unless
// overridden by options.
//
// Example:
//
//	r := parser.DefaultRegistry().
//		Register("NAMESPACE", parser.GenericExtractor("namespace", "COMMENT"))
//
//	p := parser.New(
//		parser.WithRegistry(r),
//		parser.WithCommentStripper(parser.StripCommentsSafe),
//	)
//
//	def, err := p.ParseStatement("DEFINE NAMESPACE app COMMENT 'main'")
func New(opts ...Option) *Parser {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	p := &Parser{
		registry: DefaultRegistry(),
		strip:    StripComments,
		log:      silent,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Registry returns the registry the parser dispatches with.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// ParseStatement parses a single statement. The returned error, when not nil,
// is a *ParseError. A trailing `;` is ignored.
//
// Example:
//
//	def, err := parser.ParseStatement("DEFINE TABLE user SCHEMAFULL")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	table := def.(*parser.TableDef)
//	fmt.Println(table.Name, *table.SchemaMode) // user schemafull
func (p *Parser) ParseStatement(stmt string) (Definition, error) {
	stmt = strings.TrimSpace(stmt)
	stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))

	m := defineHeader.FindStringSubmatch(normalizeWhitespace(stmt))
	if m == nil {
		return nil, invalidSyntax(stmt)
	}

	keyword := m[1]
	extract, ok := p.registry.Lookup(keyword)
	if !ok {
		return nil, unknownStatement(keyword, stmt)
	}

	prefix := definePrefix.FindStringIndex(stmt)
	if prefix == nil {
		return nil, invalidSyntax(stmt)
	}

	def := extract(stmt[prefix[1]:])
	if def == nil {
		return nil, invalidSyntax(stmt)
	}
	def.Base().Raw = stmt

	p.log.WithFields(logrus.Fields{
		"kind": def.Kind(),
		"name": def.Base().Name,
	}).Debug("parsed definition")

	return def, nil
}

// ParseString strips comments, splits the script and parses each statement.
// Parsing continues past failing statements; when any fail, the returned
// error is a ParseErrors and the SQL still holds every successful definition.
//
// Example:
//
//	sql, err := parser.ParseString(`
//		DEFINE TABLE user SCHEMAFULL;
//		DEFINE FIELD email ON TABLE user TYPE string ASSERT string::is::email($value);
//		DEFINE FUNCTION fn::greet($name: string) { RETURN "Hello " + $name; };
//	`)
//	if err != nil {
//		var perrs parser.ParseErrors
//		if errors.As(err, &perrs) {
//			for _, e := range perrs {
//				fmt.Println(e.Kind, e.Statement)
//			}
//		}
//	}
//
//	for _, def := range sql.Statements {
//		fmt.Printf("%s %s\n", def.Kind(), def.Base().Name)
//	}
func (p *Parser) ParseString(text string) (*SQL, error) {
	stmts := SplitStatements(p.strip(text))
	p.log.WithField("statements", len(stmts)).Debug("split script")

	sql := &SQL{Statements: make([]Definition, 0, len(stmts))}
	for _, stmt := range stmts {
		def, err := p.ParseStatement(stmt)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				sql.Errors = append(sql.Errors, perr)
			}
			continue
		}
		sql.Statements = append(sql.Statements, def)
	}

	if len(sql.Errors) > 0 {
		return sql, sql.Errors
	}
	return sql, nil
}

// Parse reads the whole reader and parses it with ParseString.
func (p *Parser) Parse(r io.Reader) (*SQL, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read schema")
	}

	return p.ParseString(string(data))
}

// ParseFile parses the file at path.
func (p *Parser) ParseFile(path string) (*SQL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return p.Parse(f)
}

// ParseStatement parses one statement with the default parser.
func ParseStatement(stmt string) (Definition, error) {
	return defaultParser.ParseStatement(stmt)
}

// ParseString parses a script with the default parser.
func ParseString(text string) (*SQL, error) {
	return defaultParser.ParseString(text)
}

// Parse parses a script from r with the default parser.
func Parse(r io.Reader) (*SQL, error) {
	return defaultParser.Parse(r)
}

// ParseFile parses the file at path with the default parser.
func ParseFile(path string) (*SQL, error) {
	return defaultParser.ParseFile(path)
}

// normalizeWhitespace collapses runs of whitespace into single spaces. It is
// only used for matching and messages; extracted values keep their layout.
func normalizeWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}
