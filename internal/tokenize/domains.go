package tokenize

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/dshills/richinput/internal/token"
)

// DomainKind classifies a known host.
type DomainKind string

const (
	KindVideo DomainKind = "video"
	KindMedia DomainKind = "media"
	KindImage DomainKind = "image"
)

// Domain is one entry of the URL domain table.
type Domain struct {
	Host      string
	Name      string
	ShortName string
	Kind      DomainKind
	Behavior  token.Behavior
}

// DomainTable maps hosts to display names and default behaviors. Lookups
// match the host exactly or as a parent domain, so "m.youtube.com" matches
// "youtube.com".
type DomainTable struct {
	mu      sync.RWMutex
	domains map[string]Domain
}

// NewDomainTable returns a table with the given entries.
func NewDomainTable(domains ...Domain) *DomainTable {
	t := &DomainTable{domains: make(map[string]Domain)}
	for _, d := range domains {
		t.Add(d)
	}
	return t
}

// DefaultDomains returns the built-in video and media host table.
func DefaultDomains() *DomainTable {
	t := NewDomainTable(
		Domain{Host: "youtube.com", Name: "YouTube", ShortName: "YT", Kind: KindVideo, Behavior: token.BehaviorModal},
		Domain{Host: "youtu.be", Name: "YouTube", ShortName: "YT", Kind: KindVideo, Behavior: token.BehaviorModal},
		Domain{Host: "images.unsplash.com", Name: "Unsplash", Kind: KindImage, Behavior: token.BehaviorEmbed},
		Domain{Host: "unsplash.com", Name: "Unsplash", Kind: KindImage, Behavior: token.BehaviorEmbed},
	)
	for _, h := range []string{
		"imgur.com", "i.imgur.com", "giphy.com", "media.giphy.com",
		"raw.githubusercontent.com", "user-images.githubusercontent.com",
	} {
		t.Add(Domain{Host: h, Name: h, Kind: KindMedia, Behavior: token.BehaviorEmbed})
	}
	return t
}

// Add inserts or replaces an entry.
func (t *DomainTable) Add(d Domain) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.domains[strings.ToLower(d.Host)] = d
}

// Lookup finds the entry for host or its closest listed parent.
func (t *DomainTable) Lookup(host string) (Domain, bool) {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	t.mu.RLock()
	defer t.mu.RUnlock()
	for host != "" {
		if d, ok := t.domains[host]; ok {
			return d, true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return Domain{}, false
}

// DefaultBehavior infers how a link should open: listed hosts use their
// table entry, image files embed, and everything else is a plain link.
func (t *DomainTable) DefaultBehavior(rawURL string) token.Behavior {
	if d, ok := t.Lookup(HostOf(rawURL)); ok {
		return d.Behavior
	}
	if HasImageExtension(rawURL) {
		return token.BehaviorEmbed
	}
	return token.BehaviorLink
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "svg": true,
	"bmp": true, "ico": true, "avif": true, "tiff": true, "tif": true,
}

// FileExtension returns the lower-case extension of the URL path, without
// query or fragment, or "".
func FileExtension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(NormalizeURL(rawURL)); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// HasImageExtension reports whether the URL path names an image file.
func HasImageExtension(rawURL string) bool {
	return imageExtensions[FileExtension(rawURL)]
}

// NormalizeURL adds https:// to scheme-less URLs.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}

// HostOf returns the lower-case host of a URL with or without a scheme.
func HostOf(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

var youtubeID = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
}

// YouTubeID extracts the 11 character video id from a YouTube URL.
func YouTubeID(raw string) (string, bool) {
	for _, re := range youtubeID {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}
