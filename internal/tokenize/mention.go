package tokenize

import (
	"regexp"
	"strings"

	"github.com/dshills/richinput/internal/token"
)

var mentionPattern = regexp.MustCompile(`@\[[^\]\n]+\]`)

// MentionRecognizer matches @[displayName|id] and @[displayName|id|role].
// Brackets whose contents do not parse stay plain text.
type MentionRecognizer struct{}

func (MentionRecognizer) Name() string  { return "mention" }
func (MentionRecognizer) Priority() int { return PriorityMention }

func (MentionRecognizer) Recognize(s Scope) []token.Token {
	var out []token.Token
	s.Segments(func(base int, seg string) {
		for _, m := range mentionPattern.FindAllStringIndex(seg, -1) {
			raw := seg[m[0]:m[1]]
			md, ok := ParseMention(raw)
			if !ok {
				continue
			}
			out = append(out, token.Token{
				Type:     token.TypeMention,
				Content:  md.DisplayName,
				Start:    base + m[0],
				End:      base + m[1],
				Metadata: md,
			})
		}
	})
	return out
}

// ParseMention parses the full @[...] form.
func ParseMention(raw string) (token.Metadata, bool) {
	if !strings.HasPrefix(raw, "@[") || !strings.HasSuffix(raw, "]") {
		return token.Metadata{}, false
	}
	parts := strings.Split(raw[2:len(raw)-1], "|")
	if len(parts) < 2 || len(parts) > 3 {
		return token.Metadata{}, false
	}
	name, id := parts[0], parts[1]
	if strings.TrimSpace(name) == "" || strings.TrimSpace(id) == "" {
		return token.Metadata{}, false
	}
	role := ""
	if len(parts) == 3 {
		if parts[2] == "" {
			return token.Metadata{}, false
		}
		role = parts[2]
	}
	r, ok := token.ParseRole(role)
	if !ok {
		return token.Metadata{}, false
	}
	return token.Metadata{
		UserID:         id,
		Username:       name,
		DisplayName:    name,
		FilterType:     r,
		OriginalFormat: raw,
	}, true
}

// FormatMention renders the canonical buffer form of a mention.
func FormatMention(displayName, id string, role token.Role) string {
	if role == "" {
		role = token.RoleAuthor
	}
	return "@[" + displayName + "|" + id + "|" + string(role) + "]"
}
