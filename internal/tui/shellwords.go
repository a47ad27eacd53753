package tui

import (
	"strings"
	"unicode"
)

// splitShellWords splits an $EDITOR value such as `code --wait` or
// `"/Applications/My Editor/bin/edit" -w` into argv. Single quotes, double
// quotes and backslash escapes (outside single quotes) are honoured.
func splitShellWords(s string) []string {
	var (
		out     []string
		cur     strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote, inWord = r, true
		case quote == 0 && unicode.IsSpace(r):
			if inWord {
				out = append(out, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		out = append(out, cur.String())
	}
	return out
}
