package tokenize

import (
	"regexp"
	"strings"

	"github.com/dshills/richinput/internal/token"
)

type markdownRule struct {
	kind    string
	pattern *regexp.Regexp
	// lineAnchored rules are matched over the whole text in one pass so that
	// ^ keeps its line-start meaning.
	lineAnchored bool
	// build returns the token for a submatch index set, or false to reject
	// the match and retry one byte later.
	build func(text string, m []int) (token.Token, bool)
}

var markdownRules = []markdownRule{
	{
		kind:    token.MarkdownCode,
		pattern: regexp.MustCompile("`([^`\n]+)`"),
		build:   simpleMarkdown(token.MarkdownCode, 1),
	},
	{
		kind:    token.MarkdownLink,
		pattern: regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\n]+)\)`),
		build:   buildMarkdownLink,
	},
	{
		kind:    token.MarkdownBold,
		pattern: regexp.MustCompile(`(\*\*|__)([^*_\n]+)(\*\*|__)`),
		build:   delimited(token.MarkdownBold, false),
	},
	{
		kind:    token.MarkdownItalic,
		pattern: regexp.MustCompile(`(\*|_)([^*_\n]+)(\*|_)`),
		build:   delimited(token.MarkdownItalic, true),
	},
	{
		kind:    token.MarkdownStrikethrough,
		pattern: regexp.MustCompile(`~~([^~\n]+)~~`),
		build:   simpleMarkdown(token.MarkdownStrikethrough, 1),
	},
	{
		kind:    token.MarkdownUnderline,
		pattern: regexp.MustCompile(`<u>([^\n]*?)</u>`),
		build:   simpleMarkdown(token.MarkdownUnderline, 1),
	},
	{
		kind:         token.MarkdownBlockquote,
		pattern:      regexp.MustCompile(`(?m)^>[ \t]*([^\r\n]+)`),
		lineAnchored: true,
		build:        simpleMarkdown(token.MarkdownBlockquote, 1),
	},
	{
		kind:         token.MarkdownListItem,
		pattern:      regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+([^\r\n]+)`),
		lineAnchored: true,
		build:        simpleMarkdown(token.MarkdownListItem, 1),
	},
}

// MarkdownRecognizer matches inline and line-level markdown spans with the
// sub-precedence code > link > bold > italic > strikethrough > underline >
// blockquote > list-item. A span overlapping anything already claimed,
// including a higher sub-precedence span, is dropped.
type MarkdownRecognizer struct{}

func (MarkdownRecognizer) Name() string  { return "markdown" }
func (MarkdownRecognizer) Priority() int { return PriorityMarkdown }

func (MarkdownRecognizer) Recognize(s Scope) []token.Token {
	var (
		out   []token.Token
		local claims
	)
	accept := func(tok token.Token) bool {
		span := Span{tok.Start, tok.End}
		if !s.IsFree(span.Start, span.End) || local.overlaps(span) {
			return false
		}
		local.add(span)
		out = append(out, tok)
		return true
	}

	for _, rule := range markdownRules {
		if rule.lineAnchored {
			for _, m := range rule.pattern.FindAllStringSubmatchIndex(s.Text, -1) {
				if tok, ok := rule.build(s.Text, m); ok {
					accept(tok)
				}
			}
			continue
		}
		for pos := 0; pos < len(s.Text); {
			m := rule.pattern.FindStringSubmatchIndex(s.Text[pos:])
			if m == nil {
				break
			}
			for i := range m {
				if m[i] >= 0 {
					m[i] += pos
				}
			}
			tok, ok := rule.build(s.Text, m)
			if ok && accept(tok) {
				pos = m[1]
				continue
			}
			pos = m[0] + 1
		}
	}
	return out
}

func simpleMarkdown(kind string, group int) func(string, []int) (token.Token, bool) {
	return func(text string, m []int) (token.Token, bool) {
		return markdownToken(kind, text[m[2*group]:m[2*group+1]], m[0], m[1]), true
	}
}

// delimited handles **x** / __x__ and *x* / _x_, which need matching open
// and close delimiters. Italic spans must not touch word characters.
func delimited(kind string, flanked bool) func(string, []int) (token.Token, bool) {
	return func(text string, m []int) (token.Token, bool) {
		opening, closing := text[m[2]:m[3]], text[m[6]:m[7]]
		if opening != closing {
			return token.Token{}, false
		}
		if flanked {
			if m[0] > 0 && isWordByte(text[m[0]-1]) {
				return token.Token{}, false
			}
			if m[1] < len(text) && isWordByte(text[m[1]]) {
				return token.Token{}, false
			}
		}
		return markdownToken(kind, text[m[4]:m[5]], m[0], m[1]), true
	}
}

func buildMarkdownLink(text string, m []int) (token.Token, bool) {
	label := text[m[2]:m[3]]
	target := strings.TrimSpace(text[m[4]:m[5]])
	title := ""
	if i := strings.Index(target, ` "`); i >= 0 && strings.HasSuffix(target, `"`) {
		title = target[i+2 : len(target)-1]
		target = strings.TrimSpace(target[:i])
	}
	if target == "" {
		return token.Token{}, false
	}
	tok := markdownToken(token.MarkdownLink, label, m[0], m[1])
	tok.Metadata.Href = SanitizeLinkURL(target)
	tok.Metadata.Title = title
	return tok, true
}

func markdownToken(kind, content string, start, end int) token.Token {
	return token.Token{
		Type:     token.TypeMarkdown,
		Content:  content,
		Start:    start,
		End:      end,
		Metadata: token.Metadata{MarkdownType: kind},
	}
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// SanitizeLinkURL neutralises script-capable schemes and gives scheme-less
// targets https://. Relative paths and mailto: are kept.
func SanitizeLinkURL(raw string) string {
	t := strings.TrimSpace(raw)
	lower := strings.ToLower(t)
	for _, bad := range []string{"javascript:", "data:", "vbscript:", "file:"} {
		if strings.HasPrefix(lower, bad) {
			return "#"
		}
	}
	for _, ok := range []string{"http://", "https://", "mailto:", "/", "./", "../"} {
		if strings.HasPrefix(lower, ok) {
			return t
		}
	}
	return "https://" + t
}
