// Package sanitize normalizes raw configuration lines before any
// structural decision is made, and tokenizes a line's id into quote-aware
// parameters. It never fails, even on malformed input. IsIdentifierLike
// classifies identifier-shaped tokens with github.com/smasher164/xid;
// neither the tokenizer nor the vendor detector calls it.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/smasher164/xid"

	"github.com/cedarpeak/netconf/limits"
)

// controlCodepoints are stripped outright. Tab (0x09) is deliberately not
// in this set.
func isStrippedControl(r rune) bool {
	switch {
	case r >= 0x00 && r <= 0x08:
		return true
	case r == 0x0B || r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r == 0x7F:
		return true
	default:
		return false
	}
}

// unicodeSpaces fold to an ASCII space.
func isFoldedSpace(r rune) bool {
	switch r {
	case 0x00A0, 0x202F, 0x205F, 0x3000:
		return true
	default:
		return r >= 0x2000 && r <= 0x200A
	}
}

// SanitizeLine strips control code points, folds Unicode space to ASCII
// space, and trims leading/trailing whitespace. It never fails; malformed
// or empty input degrades to an empty string.
func SanitizeLine(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isStrippedControl(r) {
			continue
		}
		if isFoldedSpace(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// TokenizeParams splits line on ASCII whitespace, honoring paired single or
// double quotes (non-nesting: the first quote character opens, the next
// matching one closes; both are consumed, not emitted). An unmatched
// trailing quote makes the remainder a single token. Inputs longer than
// MAX_LINE_LENGTH are truncated first and returned as one token -- a guard
// for callers that invoke TokenizeParams directly without routing through
// the parser's own pre-checks.
func TokenizeParams(line string) []string {
	if len(line) > limits.DefaultMaxLineLength {
		line = line[:limits.DefaultMaxLineLength]
		return []string{line}
	}

	var tokens []string
	var cur strings.Builder
	var inQuote rune
	haveToken := false

	flush := func() {
		if haveToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			haveToken = false
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				cur.WriteRune(r)
			}
			haveToken = true
		case r == '"' || r == '\'':
			inQuote = r
			haveToken = true
		case r < 0x80 && unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			haveToken = true
		}
	}
	flush()
	return tokens
}

// IsIdentifierLike reports whether token looks like a bareword identifier:
// starts with an XID_Start-class rune, continues with XID_Continue.
func IsIdentifierLike(token string) bool {
	if token == "" {
		return false
	}
	runes := []rune(token)
	if !xid.Start(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !xid.Continue(r) {
			return false
		}
	}
	return true
}
