package tokenize

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/richinput/internal/token"
)

var pillPattern = regexp.MustCompile(`!\[([^\]\n]+)\]\(([^)\s]+)\)`)

// Pill is a parsed ![behavior|customId](url) marker.
type Pill struct {
	Behavior token.Behavior
	CustomID string
	URL      string
}

// ParsePill parses a complete pill marker. An unknown behavior fails.
func ParsePill(raw string) (Pill, bool) {
	m := pillPattern.FindStringSubmatch(raw)
	if m == nil || len(m[0]) != len(raw) {
		return Pill{}, false
	}
	return parsePillParts(m[1], m[2])
}

func parsePillParts(behaviorPart, target string) (Pill, bool) {
	name, customID, _ := strings.Cut(behaviorPart, "|")
	b, ok := token.ParseBehavior(strings.TrimSpace(name))
	if !ok {
		return Pill{}, false
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return Pill{}, false
	}
	return Pill{Behavior: b, CustomID: strings.TrimSpace(customID), URL: target}, true
}

// CreatePill renders the canonical pill marker.
func CreatePill(rawURL string, b token.Behavior, customID string) string {
	part := string(b)
	if customID != "" {
		part += "|" + customID
	}
	return "![" + part + "](" + rawURL + ")"
}

// URLRecognizer matches pill markers first and then bare URLs. Bare URLs
// are explicit http(s) URLs, www. hosts, or hosts listed in the domain
// table; each is annotated with the table's default behavior.
type URLRecognizer struct {
	domains *DomainTable
}

// NewURLRecognizer returns a URL recognizer using domains, or the default
// table when domains is nil.
func NewURLRecognizer(domains *DomainTable) *URLRecognizer {
	if domains == nil {
		domains = DefaultDomains()
	}
	return &URLRecognizer{domains: domains}
}

func (r *URLRecognizer) Name() string  { return "url" }
func (r *URLRecognizer) Priority() int { return PriorityURL }

func (r *URLRecognizer) Recognize(s Scope) []token.Token {
	var (
		out   []token.Token
		local claims
	)
	s.Segments(func(base int, seg string) {
		for _, m := range pillPattern.FindAllStringSubmatchIndex(seg, -1) {
			p, ok := parsePillParts(seg[m[2]:m[3]], seg[m[4]:m[5]])
			if !ok {
				continue
			}
			start, end := base+m[0], base+m[1]
			out = append(out, pillToken(start, end, seg[m[0]:m[1]], p, r.domains))
			local.add(Span{start, end})
		}
	})
	s.Segments(func(base int, seg string) {
		for _, m := range wordPattern.FindAllStringIndex(seg, -1) {
			word := seg[m[0]:m[1]]
			lead, trail, ok := r.detectBare(word)
			if !ok {
				continue
			}
			span := Span{base + m[0] + lead, base + m[1] - trail}
			if local.overlaps(span) {
				continue
			}
			out = append(out, r.bareToken(span, s.Text[span.Start:span.End]))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

var wordPattern = regexp.MustCompile(`\S+`)

// detectBare trims surrounding punctuation from word and reports whether
// what remains is a URL.
func (r *URLRecognizer) detectBare(word string) (lead, trail int, ok bool) {
	w := strings.TrimLeft(word, `([<"'`)
	lead = len(word) - len(w)
	for w != "" {
		last := w[len(w)-1]
		if strings.IndexByte(`.,;:!?]>"'`, last) >= 0 ||
			(last == ')' && strings.Count(w, "(") < strings.Count(w, ")")) {
			w = w[:len(w)-1]
			continue
		}
		break
	}
	trail = len(word) - lead - len(w)
	return lead, trail, r.isURL(w)
}

func (r *URLRecognizer) isURL(w string) bool {
	lower := strings.ToLower(w)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(w)
		return err == nil && u.Hostname() != ""
	case strings.HasPrefix(lower, "www."):
		host := HostOf(w)
		return strings.Count(host, ".") >= 2 && !strings.HasSuffix(host, ".")
	}
	host := lower
	if i := strings.IndexAny(host, "/?#:"); i >= 0 {
		host = host[:i]
	}
	if !strings.Contains(host, ".") {
		return false
	}
	_, known := r.domains.Lookup(host)
	return known
}

func (r *URLRecognizer) bareToken(span Span, raw string) token.Token {
	href := NormalizeURL(raw)
	b := r.domains.DefaultBehavior(href)
	return token.Token{
		Type:    token.TypeURL,
		Content: raw,
		Start:   span.Start,
		End:     span.End,
		Metadata: token.Metadata{
			Href:           href,
			Behavior:       b,
			Domain:         HostOf(href),
			OriginalFormat: CreatePill(href, b, ""),
		},
	}
}

func pillToken(start, end int, raw string, p Pill, domains *DomainTable) token.Token {
	href := NormalizeURL(p.URL)
	content := href
	if d, ok := domains.Lookup(HostOf(href)); ok && d.Name != "" {
		content = d.Name
	}
	return token.Token{
		Type:    token.TypeURL,
		Content: content,
		Start:   start,
		End:     end,
		Metadata: token.Metadata{
			Href:           href,
			Behavior:       p.Behavior,
			CustomID:       p.CustomID,
			Domain:         HostOf(href),
			OriginalFormat: raw,
		},
	}
}

// ConvertURLsToPills rewrites every bare URL in text into pill form using
// its default behavior. Existing pills are left untouched.
func ConvertURLsToPills(text string, domains *DomainTable) string {
	r := NewURLRecognizer(domains)
	toks := r.Recognize(Scope{Text: text, Free: []Span{{0, len(text)}}})

	var b strings.Builder
	pos := 0
	for _, t := range toks {
		raw := text[t.Start:t.End]
		if raw == t.Metadata.OriginalFormat {
			continue
		}
		b.WriteString(text[pos:t.Start])
		b.WriteString(t.Metadata.OriginalFormat)
		pos = t.End
	}
	b.WriteString(text[pos:])
	return b.String()
}
