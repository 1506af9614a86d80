package parser

import (
	"regexp"
	"strings"
)

var (
	lineCommentRegex  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// StripComments removes `-- ...` line comments and `/* ... */` block comments,
// repeating until the text no longer changes. Block comments are replaced by a
// single space so the tokens around them stay apart.
//
// Comment markers inside string literals are not recognised as such and are
// stripped as well; use StripCommentsSafe when literals may contain them.
func StripComments(text string) string {
	for {
		next := blockCommentRegex.ReplaceAllString(text, " ")
		next = lineCommentRegex.ReplaceAllString(next, "")
		if next == text {
			return next
		}
		text = next
	}
}

// StripCommentsSafe removes comments while leaving string literals intact. It
// relies on the statement lexer, so it is best effort: an unterminated literal
// stops protecting the text that follows it.
func StripCommentsSafe(text string) string {
	raw, err := lexAll(text)
	if err != nil {
		return StripComments(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, t := range raw {
		switch {
		case t.EOF(), t.Type == tokComment:
			continue
		case t.Type == tokMultiComment:
			b.WriteByte(' ')
		default:
			b.WriteString(t.Value)
		}
	}

	return b.String()
}

// NoComments leaves the text untouched. Pass it to WithCommentStripper when
// the input is known to be comment free.
func NoComments(text string) string {
	return text
}
