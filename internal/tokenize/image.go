package tokenize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/richinput/internal/token"
)

var inlineImagePattern = regexp.MustCompile(`\{img:([^|{}\s]+)((?:\|[^|{}\n]*){0,4})\}`)

// ImageRecognizer claims pill markers before any other recognizer. Markers
// pointing at an image file become image tokens and the rest become URL
// pills. It also matches {img:src|alt|title|width|height}.
type ImageRecognizer struct {
	domains *DomainTable
}

// NewImageRecognizer returns an image recognizer using domains, or the
// default table when domains is nil.
func NewImageRecognizer(domains *DomainTable) *ImageRecognizer {
	if domains == nil {
		domains = DefaultDomains()
	}
	return &ImageRecognizer{domains: domains}
}

func (r *ImageRecognizer) Name() string  { return "image" }
func (r *ImageRecognizer) Priority() int { return PriorityImage }

func (r *ImageRecognizer) Recognize(s Scope) []token.Token {
	var out []token.Token
	s.Segments(func(base int, seg string) {
		for _, m := range pillPattern.FindAllStringSubmatchIndex(seg, -1) {
			p, ok := parsePillParts(seg[m[2]:m[3]], seg[m[4]:m[5]])
			if !ok {
				continue
			}
			start, end := base+m[0], base+m[1]
			raw := seg[m[0]:m[1]]
			if !HasImageExtension(p.URL) {
				out = append(out, pillToken(start, end, raw, p, r.domains))
				continue
			}
			src := NormalizeURL(p.URL)
			out = append(out, token.Token{
				Type:    token.TypeImage,
				Content: imageLabel(p.CustomID, src),
				Start:   start,
				End:     end,
				Metadata: token.Metadata{
					ImageSrc:       src,
					ImageAlt:       p.CustomID,
					Href:           src,
					Behavior:       p.Behavior,
					CustomID:       p.CustomID,
					Domain:         HostOf(src),
					OriginalFormat: raw,
				},
			})
		}

		for _, m := range inlineImagePattern.FindAllStringSubmatchIndex(seg, -1) {
			tok, ok := inlineImage(seg[m[2]:m[3]], seg[m[4]:m[5]])
			if !ok {
				continue
			}
			tok.Start, tok.End = base+m[0], base+m[1]
			tok.Metadata.OriginalFormat = seg[m[0]:m[1]]
			out = append(out, tok)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func inlineImage(src, rest string) (token.Token, bool) {
	lower := strings.ToLower(src)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return token.Token{}, false
	}
	var fields []string
	if rest != "" {
		fields = strings.Split(rest[1:], "|")
	}
	field := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	dim := func(i int) (int, bool) {
		s := field(i)
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		return n, err == nil && n >= 0
	}
	w, ok := dim(2)
	if !ok {
		return token.Token{}, false
	}
	h, ok := dim(3)
	if !ok {
		return token.Token{}, false
	}
	return token.Token{
		Type:    token.TypeImage,
		Content: imageLabel(field(0), src),
		Metadata: token.Metadata{
			ImageSrc:    src,
			ImageAlt:    field(0),
			ImageTitle:  field(1),
			ImageWidth:  w,
			ImageHeight: h,
			Domain:      HostOf(src),
		},
	}, true
}

func imageLabel(alt, src string) string {
	if alt != "" {
		return alt
	}
	return src
}
