package tokenize

import (
	"regexp"
	"strings"

	"github.com/dshills/richinput/internal/emoji"
	"github.com/dshills/richinput/internal/token"
)

var shortcodeName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,31}$`)

// urlWords are never shortcodes: they show up between colons in URLs.
var urlWords = map[string]bool{
	"http": true, "https": true, "ftp": true, "ftps": true, "ws": true, "wss": true,
	"mailto": true, "file": true, "data": true, "tel": true, "www": true,
	"localhost": true, "com": true, "org": true, "net": true, "io": true,
	"port": true, "host": true, "path": true,
}

var hostLike = regexp.MustCompile(`(?i)^[a-z0-9-]+(\.[a-z0-9-]+)+$`)

// EmojiRecognizer matches :name: shortcodes known to the catalog.
type EmojiRecognizer struct {
	catalog      *emoji.Catalog
	window       int
	allowUnknown bool
}

// NewEmojiRecognizer returns an emoji recognizer. window <= 0 uses
// DefaultEmojiContextWindow.
func NewEmojiRecognizer(catalog *emoji.Catalog, window int, allowUnknown bool) *EmojiRecognizer {
	if catalog == nil {
		catalog = emoji.NewStandardCatalog()
	}
	if window <= 0 {
		window = DefaultEmojiContextWindow
	}
	return &EmojiRecognizer{catalog: catalog, window: window, allowUnknown: allowUnknown}
}

func (r *EmojiRecognizer) Name() string  { return "emoji" }
func (r *EmojiRecognizer) Priority() int { return PriorityEmoji }

func (r *EmojiRecognizer) Recognize(s Scope) []token.Token {
	var out []token.Token
	s.Segments(func(base int, seg string) {
		i := strings.IndexByte(seg, ':')
		for i >= 0 {
			j := strings.IndexByte(seg[i+1:], ':')
			if j < 0 {
				return
			}
			j += i + 1
			start, end := base+i, base+j+1
			if tok, ok := r.candidate(s.Text, start, end); ok {
				out = append(out, tok)
				next := strings.IndexByte(seg[j+1:], ':')
				if next < 0 {
					return
				}
				i = j + 1 + next
				continue
			}
			// The closing colon may open the next shortcode.
			i = j
		}
	})
	return out
}

func (r *EmojiRecognizer) candidate(text string, start, end int) (token.Token, bool) {
	name := text[start+1 : end-1]
	if !ValidShortcode(name) {
		return token.Token{}, false
	}
	if r.insideURL(text, start, end) {
		return token.Token{}, false
	}

	tok := token.Token{
		Type:  token.TypeEmoji,
		Start: start,
		End:   end,
	}
	if e, ok := r.catalog.Lookup(name); ok {
		tok.Content = e.Unicode
		if tok.Content == "" {
			tok.Content = name
		}
		tok.Metadata = token.Metadata{
			EmojiID:       e.ID,
			EmojiUnicode:  e.Unicode,
			EmojiImageURL: e.ImageURL,
		}
		return tok, true
	}
	if !r.allowUnknown {
		return token.Token{}, false
	}
	tok.Content = name
	tok.Metadata = token.Metadata{EmojiID: name}
	return tok, true
}

// ValidShortcode reports whether name can be a shortcode: a letter then up
// to 31 letters, digits or underscores, and not a URL component word.
func ValidShortcode(name string) bool {
	if !shortcodeName.MatchString(name) {
		return false
	}
	if strings.Trim(name, "0123456789") == "" {
		return false
	}
	return !urlWords[strings.ToLower(name)]
}

// insideURL inspects the context around the candidate for signs that its
// colons belong to a URL: a scheme or host immediately before the opening
// colon, or a port, path or "//" immediately after the closing one. window
// is an upper bound on the bytes read on each side; the leading context is
// further cut at the last whitespace, so it covers only the candidate's
// own word.
func (r *EmojiRecognizer) insideURL(text string, start, end int) bool {
	lo := max(0, start-r.window)
	before := text[lo:start]
	if k := strings.LastIndexAny(before, " \t\r\n"); k >= 0 {
		before = before[k+1:]
	}
	if before != "" {
		lb := strings.ToLower(before)
		if strings.Contains(lb, "://") || strings.HasPrefix(lb, "www.") ||
			hostLike.MatchString(lb) || strings.HasSuffix(lb, "/") {
			return true
		}
	}

	hi := min(len(text), end+r.window)
	after := text[end:hi]
	if after == "" {
		return false
	}
	if strings.HasPrefix(after, "//") || after[0] == '/' {
		return true
	}
	return after[0] >= '0' && after[0] <= '9'
}
