package tokenize

import (
	"strings"

	"github.com/dshills/richinput/internal/token"
)

// appendText emits plain text tokens for text[start:end]. Each line break
// becomes its own token so it moves and deletes as a unit; the runs
// between line breaks are kept verbatim.
func appendText(out []token.Token, text string, start, end int) []token.Token {
	run := start
	for i := start; i < end; {
		n := lineBreakLen(text[i:end])
		if n == 0 {
			i++
			continue
		}
		if i > run {
			out = append(out, textToken(text, run, i))
		}
		out = append(out, token.Token{
			Type:     token.TypeText,
			Content:  text[i : i+n],
			RawText:  text[i : i+n],
			Start:    i,
			End:      i + n,
			Metadata: token.Metadata{IsWhitespace: true, HasNewlines: true},
		})
		i += n
		run = i
	}
	if run < end {
		out = append(out, textToken(text, run, end))
	}
	return out
}

func textToken(text string, start, end int) token.Token {
	s := text[start:end]
	return token.Token{
		Type:     token.TypeText,
		Content:  s,
		RawText:  s,
		Start:    start,
		End:      end,
		Metadata: token.Metadata{IsWhitespace: strings.TrimSpace(s) == ""},
	}
}

// lineBreakLen returns the length of the line terminator at the start of s.
func lineBreakLen(s string) int {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return 2
	case s != "" && (s[0] == '\n' || s[0] == '\r'):
		return 1
	}
	return 0
}
