package tokenize

import (
	"fmt"
	"regexp"

	"github.com/dshills/richinput/internal/token"
)

// PatternRecognizer produces custom tokens from a regular expression. Named
// capture groups are copied into Metadata.CustomData; the group named
// "content", if present, becomes the token Content.
type PatternRecognizer struct {
	name       string
	priority   int
	customType string
	pattern    *regexp.Regexp
}

// NewPatternRecognizer compiles pattern. customType defaults to name.
func NewPatternRecognizer(name string, priority int, customType, pattern string) (*PatternRecognizer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidPattern)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, name, err)
	}
	if re.MatchString("") {
		return nil, fmt.Errorf("%w: %s matches the empty string", ErrInvalidPattern, name)
	}
	if customType == "" {
		customType = name
	}
	return &PatternRecognizer{name: name, priority: priority, customType: customType, pattern: re}, nil
}

func (r *PatternRecognizer) Name() string  { return r.name }
func (r *PatternRecognizer) Priority() int { return r.priority }

func (r *PatternRecognizer) Recognize(s Scope) []token.Token {
	names := r.pattern.SubexpNames()
	var out []token.Token
	s.Segments(func(base int, seg string) {
		for _, m := range r.pattern.FindAllStringSubmatchIndex(seg, -1) {
			if m[0] == m[1] {
				continue
			}
			tok := token.Token{
				Type:     token.TypeCustom,
				Content:  seg[m[0]:m[1]],
				Start:    base + m[0],
				End:      base + m[1],
				Metadata: token.Metadata{CustomType: r.customType},
			}
			for g := 1; g < len(names); g++ {
				if names[g] == "" || m[2*g] < 0 {
					continue
				}
				v := seg[m[2*g]:m[2*g+1]]
				if names[g] == "content" {
					tok.Content = v
					continue
				}
				if tok.Metadata.CustomData == nil {
					tok.Metadata.CustomData = make(map[string]string)
				}
				tok.Metadata.CustomData[names[g]] = v
			}
			out = append(out, tok)
		}
	})
	return out
}
