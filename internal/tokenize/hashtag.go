package tokenize

import (
	"regexp"

	"github.com/dshills/richinput/internal/token"
)

var hashtagPattern = regexp.MustCompile(`#[A-Za-z0-9_-]+`)

// HashtagRecognizer matches #tag. A '#' glued to a preceding word or URL
// character (as in a URL fragment) does not start a hashtag.
type HashtagRecognizer struct{}

func (HashtagRecognizer) Name() string  { return "hashtag" }
func (HashtagRecognizer) Priority() int { return PriorityHashtag }

func (HashtagRecognizer) Recognize(s Scope) []token.Token {
	var out []token.Token
	s.Segments(func(base int, seg string) {
		for _, m := range hashtagPattern.FindAllStringIndex(seg, -1) {
			start := base + m[0]
			if start > 0 && gluesHashtag(s.Text[start-1]) {
				continue
			}
			tag := seg[m[0]+1 : m[1]]
			out = append(out, token.Token{
				Type:     token.TypeHashtag,
				Content:  tag,
				Start:    start,
				End:      base + m[1],
				Metadata: token.Metadata{Hashtag: tag},
			})
		}
	})
	return out
}

func gluesHashtag(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '_', '-', '/', '#', '&', '=', '?', '.', ':', '@':
		return true
	}
	return false
}
