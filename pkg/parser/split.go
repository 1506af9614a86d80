package parser

import "strings"

// MaxBraceDepth is the deepest brace nesting the splitter follows. Past this
// level the rest of the input is emitted as one final statement, the same way
// unbalanced braces are handled.
const MaxBraceDepth = 16

// SplitStatements divides comment-free text into trimmed statements.
//
// Text without any `{` is split on `;` outside string literals and `⟨...⟩`
// identifiers. Once a `{` appears anywhere, the splitter also tracks brace
// depth, so `;` inside a `{ ... }` body never ends a statement; the terminator
// is the next top-level `;` after the closing brace. The path choice looks at
// the raw text, so a `{` that only occurs inside a literal still selects the
// brace-tracking path.
//
// Splitting never fails: empty input yields no statements and unbalanced
// braces turn the remainder into the last statement.
func SplitStatements(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if !hasBlock(text) {
		return splitFlat(text)
	}
	return splitNested(text)
}

func hasBlock(text string) bool {
	return strings.IndexByte(text, '{') >= 0
}

func splitFlat(text string) []string {
	var (
		stmts []string
		quote byte
		start int
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]
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
			i = skipAngleIdent(text, i)
		case ';':
			stmts = appendStatement(stmts, text[start:i])
			start = i + 1
		}
	}

	return appendStatement(stmts, text[start:])
}

func splitNested(text string) []string {
	var (
		stmts []string
		quote byte
		depth int
		start int
	)

	for i := 0; i < len(text); i++ {
		ch := text[i]
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
			i = skipAngleIdent(text, i)
		case '{':
			depth++
			if depth > MaxBraceDepth {
				return appendStatement(stmts, text[start:])
			}
		case '}':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				stmts = appendStatement(stmts, text[start:i])
				start = i + 1
			}
		}
	}

	return appendStatement(stmts, text[start:])
}

const (
	angleOpen  = "⟨"
	angleClose = "⟩"
)

// skipAngleIdent returns the index of the last byte of the `⟨...⟩` identifier
// starting at text[i], or i when none starts there or it is never closed.
func skipAngleIdent(text string, i int) int {
	if !strings.HasPrefix(text[i:], angleOpen) {
		return i
	}

	end := strings.Index(text[i+len(angleOpen):], angleClose)
	if end < 0 {
		return i
	}
	return i + len(angleOpen) + end + len(angleClose) - 1
}

func appendStatement(stmts []string, stmt string) []string {
	if stmt = strings.TrimSpace(stmt); stmt != "" {
		stmts = append(stmts, stmt)
	}
	return stmts
}
