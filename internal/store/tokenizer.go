package store

import (
	"regexp"
	"strings"
)

// tokenPattern matches maximal runs of ASCII letters and digits.
// Non-ASCII word characters are deliberately not matched; the source
// feeds are ASCII and widening this would change result ordering.
var tokenPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// Tokenize splits text into its searchable tokens. Punctuation, symbols,
// and whitespace are separators and produce no tokens. Case is left
// untouched; the FTS5 tokenizer folds case at match time.
//
// Tokenize is total: every input yields a (possibly empty) token list,
// and an empty result means "no results", never "match everything".
func Tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(text, -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// ConjunctiveQuery joins tokens into an implicit-AND match expression,
// FTS5's default conjunction for space-separated terms.
func ConjunctiveQuery(tokens []string) string {
	return strings.Join(tokens, " ")
}

// DisjunctiveQuery joins individually quoted tokens with OR. Quoting
// turns tokens that collide with reserved operators (AND, OR, NOT,
// NEAR) into string literals, so this form is the fallback when the
// conjunctive expression is rejected.
func DisjunctiveQuery(tokens []string) string {
	quoted := make([]string, 0, len(tokens))
	for _, t := range tokens {
		quoted = append(quoted, quoteToken(t))
	}
	return strings.Join(quoted, " OR ")
}

// quoteToken wraps a token as an FTS5 string literal.
// Embedded quotes are doubled per SQL quoting rules.
func quoteToken(t string) string {
	return `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
}
