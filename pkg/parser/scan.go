package parser

import (
	"strconv"
	"strings"
)

// cursor walks the tokens of a statement remainder. All reads are total: past
// the end they return zero values instead of failing.
type cursor struct {
	text   string
	tokens []token
	pos    int
}

func newCursor(text string) *cursor {
	return &cursor{text: text, tokens: tokenize(text)}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

func (c *cursor) peek() (token, bool) {
	if c.done() {
		return token{}, false
	}
	return c.tokens[c.pos], true
}

// peekIs reports whether the next tokens are the given words, in order.
func (c *cursor) peekIs(words ...string) bool {
	if c.pos+len(words) > len(c.tokens) {
		return false
	}
	for i, w := range words {
		if !c.tokens[c.pos+i].is(w) {
			return false
		}
	}
	return true
}

// accept consumes the words if they are next.
func (c *cursor) accept(words ...string) bool {
	if !c.peekIs(words...) {
		return false
	}
	c.pos += len(words)
	return true
}

// acceptPunct consumes the punctuation tokens if they are next.
func (c *cursor) acceptPunct(puncts ...string) bool {
	if c.pos+len(puncts) > len(c.tokens) {
		return false
	}
	for i, p := range puncts {
		if !c.tokens[c.pos+i].punct(p) {
			return false
		}
	}
	c.pos += len(puncts)
	return true
}

// rest returns the source text from the next token to the end, trimmed.
func (c *cursor) rest() string {
	if c.done() {
		return ""
	}
	return strings.TrimSpace(c.text[c.tokens[c.pos].start:])
}

// modifiers consumes an optional OVERWRITE or IF NOT EXISTS. At most one is
// recognised, so the two flags are never both set.
func (c *cursor) modifiers() (overwrite, ifNotExists bool) {
	switch {
	case c.accept("OVERWRITE"):
		return true, false
	case c.accept("IF", "NOT", "EXISTS"):
		return false, true
	}
	return false, false
}

// name consumes a run of adjacent tokens (no whitespace between them) and
// returns its source text. Quoted identifiers are unwrapped. A run stops
// before an opening parenthesis so `fn::x(` yields `fn::x`.
func (c *cursor) name() string {
	if c.done() {
		return ""
	}

	first := c.tokens[c.pos]
	if first.typ == tokBacktickIdent || first.typ == tokAngleIdent || first.typ == tokString {
		c.pos++
		return unquoteIdent(first.value)
	}

	start, end := first.start, first.end
	c.pos++
	for !c.done() {
		t := c.tokens[c.pos]
		if t.start != end || t.punct("(") || t.punct(";") {
			break
		}
		end = t.end
		c.pos++
	}

	return c.text[start:end]
}

// onTable consumes `ON [TABLE] <name>` and returns the table name, or "" when
// the clause is missing.
func (c *cursor) onTable() string {
	if !c.accept("ON") {
		return ""
	}
	c.accept("TABLE")
	return c.name()
}

// onLevel consumes `ON ROOT|NAMESPACE|NS|DATABASE|DB` and returns the
// normalised level, or "" when absent.
func (c *cursor) onLevel() string {
	if !c.accept("ON") {
		return ""
	}
	t, ok := c.peek()
	if !ok || t.typ != tokIdent {
		return ""
	}
	c.pos++

	switch strings.ToUpper(t.value) {
	case "NS", "NAMESPACE":
		return "namespace"
	case "DB", "DATABASE":
		return "database"
	default:
		return strings.ToLower(t.value)
	}
}

// clauses indexes the remaining tokens by the given clause keywords.
func (c *cursor) clauses(keywords ...string) *clauseSet {
	return newClauseSet(c.text, c.tokens[min(c.pos, len(c.tokens)):], keywords)
}

// clauseSet locates clause keywords at bracket depth zero. A clause value runs
// from the end of its keyword to the start of the next recognised keyword, or
// to the end of the statement.
//
// Only the first occurrence of a keyword starts a clause; a repeat belongs to
// the value of the clause it appears in, so `AS SELECT count() AS total`
// keeps its inner AS. A word used as an operand (`type = "public"`,
// `$value.type`) is never a keyword.
type clauseSet struct {
	text  string
	marks []mark
}

type mark struct {
	keyword string
	start   int
	end     int
}

func newClauseSet(text string, tokens []token, keywords []string) *clauseSet {
	set := &clauseSet{text: text}
	if len(tokens) == 0 {
		return set
	}

	seen := make(map[string]bool, len(keywords))
	base := tokens[0].depth
	for i, t := range tokens {
		if t.typ != tokIdent || t.depth != base || isOperand(tokens, i) {
			continue
		}
		for _, kw := range keywords {
			if strings.EqualFold(t.value, kw) {
				if !seen[kw] {
					seen[kw] = true
					set.marks = append(set.marks, mark{keyword: kw, start: t.start, end: t.end})
				}
				break
			}
		}
	}

	// The value of the last clause stops at the end of the scanned tokens.
	set.marks = append(set.marks, mark{start: tokens[len(tokens)-1].end, end: tokens[len(tokens)-1].end})
	return set
}

// isOperand reports whether tokens[i] is part of an expression: it follows a
// `.` or is followed by a comparison or member access.
func isOperand(tokens []token, i int) bool {
	if i > 0 && tokens[i-1].punct(".") && tokens[i-1].end == tokens[i].start {
		return true
	}
	if i+1 < len(tokens) {
		next := tokens[i+1]
		return next.punct("=") || next.punct("!") || next.punct(".")
	}
	return false
}

func (s *clauseSet) find(keyword string) int {
	for i := 0; i < len(s.marks)-1; i++ {
		if s.marks[i].keyword == keyword {
			return i
		}
	}
	return -1
}

// has reports whether a keyword occurs. Used for flag clauses.
func (s *clauseSet) has(keyword string) bool {
	return s.find(keyword) >= 0
}

// first returns whichever of the keywords occurs earliest, or "".
func (s *clauseSet) first(keywords ...string) string {
	for i := 0; i < len(s.marks)-1; i++ {
		for _, kw := range keywords {
			if s.marks[i].keyword == kw {
				return kw
			}
		}
	}
	return ""
}

// raw returns the verbatim clause text, or nil when the clause is absent or
// empty.
func (s *clauseSet) raw(keyword string) *string {
	i := s.find(keyword)
	if i < 0 {
		return nil
	}

	value := strings.TrimSpace(s.text[s.marks[i].end:s.marks[i+1].start])
	if value == "" {
		return nil
	}
	return &value
}

// value returns the clause text with a single quoted literal unwrapped.
func (s *clauseSet) value(keyword string) *string {
	v, _ := s.literal(keyword)
	return v
}

// literal is value that also reports whether the clause was a string literal,
// so `DEFAULT "true"` and `DEFAULT true` stay distinct.
func (s *clauseSet) literal(keyword string) (*string, bool) {
	v := s.raw(keyword)
	if v == nil {
		return nil, false
	}
	unquoted, quoted := unquoteLiteral(*v)
	return &unquoted, quoted
}

// integer parses a numeric clause. Values that are not integers are treated as
// absent.
func (s *clauseSet) integer(keyword string) *int64 {
	v := s.value(keyword)
	if v == nil {
		return nil
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(*v, "_", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// list splits a clause into its top-level comma separated items.
func (s *clauseSet) list(keyword string) []string {
	v := s.raw(keyword)
	if v == nil {
		return nil
	}
	return splitList(*v)
}

// unquote strips the quotes from a value that is exactly one string literal
// and resolves \" \' and \\ escapes. Any other value is returned unchanged.
func unquote(s string) string {
	v, _ := unquoteLiteral(s)
	return v
}

// unquoteLiteral is unquote that also reports whether s was a string literal.
func unquoteLiteral(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}

	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return s, false
	}

	var b strings.Builder
	b.Grow(len(s) - 2)
	inner := s[1 : len(s)-1]
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case ch == '\\' && i+1 < len(inner):
			next := inner[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				b.WriteByte(next)
			} else {
				b.WriteByte(ch)
				b.WriteByte(next)
			}
			i++
		case ch == q:
			// An unescaped quote inside means this is not a single literal.
			return s, false
		case ch == '\\':
			// Trailing backslash escapes the closing quote.
			return s, false
		default:
			b.WriteByte(ch)
		}
	}

	return b.String(), true
}

// unquoteIdent unwraps `name`, ⟨name⟩ and quoted-string identifiers.
func unquoteIdent(s string) string {
	switch {
	case strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") && len(s) >= 2:
		return strings.ReplaceAll(s[1:len(s)-1], "\\`", "`")
	case strings.HasPrefix(s, "⟨") && strings.HasSuffix(s, "⟩"):
		return strings.TrimSuffix(strings.TrimPrefix(s, "⟨"), "⟩")
	default:
		return unquote(s)
	}
}

// splitList splits on commas outside brackets and string literals, trims each
// item and drops empty ones.
func splitList(s string) []string {
	var (
		items []string
		depth int
		quote byte
		start int
	)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch ch {
		case '"', '\'', '`':
			quote = ch
		case angleOpen[0]:
			i = skipAngleIdent(s, i)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				items = appendItem(items, s[start:i])
				start = i + 1
			}
		}
	}

	return appendItem(items, s[start:])
}

func appendItem(items []string, item string) []string {
	if item = strings.TrimSpace(item); item != "" {
		items = append(items, item)
	}
	return items
}

// enclosed consumes a bracketed group starting with open and returns the text
// between the brackets. An unclosed group runs to the end of the text.
func (c *cursor) enclosed(open string) (string, bool) {
	t, ok := c.peek()
	if !ok || !t.punct(open) {
		return "", false
	}

	end := matching(c.tokens, c.pos)
	if end < 0 {
		c.pos = len(c.tokens)
		return c.text[t.end:], true
	}

	c.pos = end + 1
	return c.text[t.end:c.tokens[end].start], true
}

// until consumes tokens up to, not including, the punctuation stop at the
// current depth and returns their text. It returns nil when nothing precedes
// stop.
func (c *cursor) until(stop string) *string {
	if c.done() {
		return nil
	}

	start, depth := c.pos, c.tokens[c.pos].depth
	for !c.done() {
		t := c.tokens[c.pos]
		if t.punct(stop) && t.depth == depth {
			break
		}
		c.pos++
	}
	if c.pos == start {
		return nil
	}

	v := strings.TrimSpace(c.text[c.tokens[start].start:c.tokens[c.pos-1].end])
	return &v
}
