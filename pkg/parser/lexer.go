package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// definitionLexer tokenizes a single statement. The trailing Other rule
	// matches any character, so lexing never fails on unexpected input.
	definitionLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `"([^"\\]|\\.)*"|'([^'\\]|\\.)*'`},
		{Name: "BacktickIdent", Pattern: "`([^`\\\\]|\\\\.)*`"},
		{Name: "AngleIdent", Pattern: `⟨[^⟩]*⟩`},
		{Name: "Param", Pattern: `\$[a-zA-Z0-9_]+`},
		{Name: "Number", Pattern: `\d[\d_]*(\.\d+)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(::[a-zA-Z_][a-zA-Z0-9_]*)*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Punct", Pattern: `[(){}\[\],.;:=+\-*/%<>!|&?@^~]`},
		{Name: "Other", Pattern: `(?s).`},
	})

	symbols = definitionLexer.Symbols()

	tokString        = symbols["String"]
	tokIdent         = symbols["Ident"]
	tokPunct         = symbols["Punct"]
	tokWhitespace    = symbols["Whitespace"]
	tokComment       = symbols["Comment"]
	tokMultiComment  = symbols["MultilineComment"]
	tokBacktickIdent = symbols["BacktickIdent"]
	tokAngleIdent    = symbols["AngleIdent"]
)

// token is a significant lexeme with its byte span in the statement text and
// the bracket nesting level it sits at. Opening and closing brackets carry the
// level of their enclosing scope.
type token struct {
	typ   lexer.TokenType
	value string
	start int
	end   int
	depth int
}

func (t token) is(word string) bool {
	return t.typ == tokIdent && strings.EqualFold(t.value, word)
}

func (t token) punct(p string) bool {
	return t.typ == tokPunct && t.value == p
}

func (t token) opens() bool {
	return t.typ == tokPunct && (t.value == "(" || t.value == "[" || t.value == "{")
}

func (t token) closes() bool {
	return t.typ == tokPunct && (t.value == ")" || t.value == "]" || t.value == "}")
}

// tokenize splits text into significant tokens, dropping whitespace and
// comments.
func tokenize(text string) []token {
	raw, err := lexAll(text)
	if err != nil {
		// Not reachable with the catch-all rule, but stay total: the whole text
		// becomes one opaque token.
		return []token{{typ: lexer.TokenType(-2), value: text, start: 0, end: len(text)}}
	}

	tokens := make([]token, 0, len(raw))
	depth := 0
	for _, t := range raw {
		if t.EOF() || t.Type == tokWhitespace || t.Type == tokComment || t.Type == tokMultiComment {
			continue
		}

		tok := token{
			typ:   t.Type,
			value: t.Value,
			start: t.Pos.Offset,
			end:   t.Pos.Offset + len(t.Value),
		}

		switch {
		case tok.opens():
			tok.depth = depth
			depth++
		case tok.closes():
			if depth > 0 {
				depth--
			}
			tok.depth = depth
		default:
			tok.depth = depth
		}

		tokens = append(tokens, tok)
	}

	return tokens
}

// Lexemes returns the text of every significant token in text, in order.
// Whitespace and comments are dropped; string literals and quoted identifiers
// keep their quotes.
func Lexemes(text string) []string {
	tokens := tokenize(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.value
	}
	return out
}

func lexAll(text string) ([]lexer.Token, error) {
	lex, err := definitionLexer.LexString("", text)
	if err != nil {
		return nil, err
	}

	return lexer.ConsumeAll(lex)
}

// matching returns the index of the bracket closing tokens[open], or -1 when
// the brackets are unbalanced.
func matching(tokens []token, open int) int {
	depth := tokens[open].depth
	for i := open + 1; i < len(tokens); i++ {
		if tokens[i].closes() && tokens[i].depth == depth {
			return i
		}
	}

	return -1
}
