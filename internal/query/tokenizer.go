// Package query splits raw switcher queries into tokens.
package query

import (
	"strings"
	"unicode"
)

// TagMarker prefixes a token that restricts matching to note tags.
const TagMarker = '#'

// Split breaks a raw query into ordered tokens. Runs of whitespace separate
// tokens, a double-quoted span becomes a single token with its quotes
// removed, and a backslash-escaped quote is a literal quote character rather
// than a delimiter. Unterminated quotes degrade to literal characters. An
// empty query yields no tokens.
func Split(raw string) []string {
	runes := []rune(raw)

	var tokens []string
	var current strings.Builder
	inToken := false
	inQuote := false
	quoteStart := -1

	flush := func() {
		if inToken {
			tokens = append(tokens, current.String())
			current.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) && runes[i+1] == '"' {
			current.WriteRune('"')
			inToken = true
			i++
			continue
		}

		if r == '"' {
			if inQuote {
				inQuote = false
				quoteStart = -1
				// A closing quote always terminates the token, even when
				// text follows immediately. An empty quoted span emits no
				// token at all.
				if current.Len() > 0 {
					tokens = append(tokens, current.String())
					current.Reset()
				}
				inToken = false
				continue
			}
			inQuote = true
			inToken = true
			quoteStart = current.Len()
			continue
		}

		if unicode.IsSpace(r) && !inQuote {
			flush()
			continue
		}

		current.WriteRune(r)
		inToken = true
	}

	if inQuote {
		// Unterminated quote: reinsert the literal quote character at the
		// position it appeared and fall back to whitespace splitting.
		trailing := current.String()
		head := trailing[:quoteStart]
		tail := trailing[quoteStart:]
		current.Reset()
		current.WriteString(head)
		current.WriteRune('"')
		current.WriteString(tail)

		rest := current.String()
		current.Reset()
		inToken = false
		for _, part := range strings.Fields(rest) {
			tokens = append(tokens, part)
		}
		return tokens
	}

	flush()
	return tokens
}

// IsTagToken reports whether the token carries the tag marker, returning the
// token with the marker stripped.
func IsTagToken(token string) (string, bool) {
	if strings.HasPrefix(token, string(TagMarker)) && len(token) > 1 {
		return token[1:], true
	}
	return token, false
}
