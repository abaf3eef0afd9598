package tokenize

import (
	"testing"

	"github.com/dshills/richinput/internal/token"
)

func only(toks []token.Token, typ token.Type) []token.Token {
	var out []token.Token
	for _, t := range toks {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

func TestBareURLBehaviors(t *testing.T) {
	p := NewPipeline(WithOptions(Options{URLs: true}))
	tests := []struct {
		text     string
		raw      string
		href     string
		behavior token.Behavior
	}{
		{"watch https://www.youtube.com/watch?v=dQw4w9WgXcQ, ok", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", token.BehaviorModal},
		{"clip youtu.be/dQw4w9WgXcQ.", "youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", token.BehaviorModal},
		{"pic https://i.imgur.com/abc", "https://i.imgur.com/abc", "https://i.imgur.com/abc", token.BehaviorEmbed},
		{"img (https://x.io/a.PNG)", "https://x.io/a.PNG", "https://x.io/a.PNG", token.BehaviorEmbed},
		{"docs www.example.org/path!", "www.example.org/path", "https://www.example.org/path", token.BehaviorLink},
	}
	for _, tt := range tests {
		urls := only(p.Tokenize(tt.text), token.TypeURL)
		if len(urls) != 1 {
			t.Errorf("%q: %d urls, want 1", tt.text, len(urls))
			continue
		}
		u := urls[0]
		if u.RawText != tt.raw || u.Metadata.Href != tt.href || u.Metadata.Behavior != tt.behavior {
			t.Errorf("%q: got raw=%q href=%q behavior=%s", tt.text, u.RawText, u.Metadata.Href, u.Metadata.Behavior)
		}
		if want := CreatePill(tt.href, tt.behavior, ""); u.Metadata.OriginalFormat != want {
			t.Errorf("%q: OriginalFormat = %q, want %q", tt.text, u.Metadata.OriginalFormat, want)
		}
	}

	for _, text := range []string{"example.com", "e.g. this", "file.txt", "www.", "http://"} {
		if n := len(only(p.Tokenize(text), token.TypeURL)); n != 0 {
			t.Errorf("%q: %d urls, want 0", text, n)
		}
	}
}

func TestConvertURLsToPills(t *testing.T) {
	in := "see https://youtu.be/dQw4w9WgXcQ and ![link](https://a.io) and www.b.org"
	want := "see ![modal](https://youtu.be/dQw4w9WgXcQ) and ![link](https://a.io) and ![link](https://www.b.org)"
	if got := ConvertURLsToPills(in, nil); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestParsePill(t *testing.T) {
	p, ok := ParsePill("![embed|x1](https://a.io/v)")
	if !ok || p.Behavior != token.BehaviorEmbed || p.CustomID != "x1" || p.URL != "https://a.io/v" {
		t.Errorf("ParsePill = %+v, %v", p, ok)
	}
	if _, ok := ParsePill("![wobble](https://a.io)"); ok {
		t.Error("invalid behavior accepted")
	}
	if _, ok := ParsePill("x ![link](https://a.io)"); ok {
		t.Error("partial match accepted")
	}
}

func TestImageRecognizer(t *testing.T) {
	text := "{img:https://cdn.example.com/cat.png|a cat|Cat|64|48} ![embed|hero](https://x.io/h.jpg) {img:ftp://x/y.png} {img:https://x.io/z.gif|||wide}"
	toks := NewPipeline(WithOptions(Options{Images: true})).Tokenize(text)
	checkInvariants(t, text, toks)

	imgs := only(toks, token.TypeImage)
	if len(imgs) != 2 {
		t.Fatalf("images = %+v, want 2", imgs)
	}
	inline := imgs[0].Metadata
	if inline.ImageSrc != "https://cdn.example.com/cat.png" || inline.ImageAlt != "a cat" ||
		inline.ImageTitle != "Cat" || inline.ImageWidth != 64 || inline.ImageHeight != 48 {
		t.Errorf("inline image = %+v", inline)
	}
	pill := imgs[1]
	if pill.Metadata.Behavior != token.BehaviorEmbed || pill.Metadata.CustomID != "hero" || pill.Content != "hero" {
		t.Errorf("pill image = %+v", pill)
	}
}

func TestMarkdownSpans(t *testing.T) {
	p := NewPipeline(WithOptions(Options{Markdown: true}))
	tests := []struct {
		text    string
		kinds   []string
		content []string
	}{
		{"**bold** __also__", []string{token.MarkdownBold, token.MarkdownBold}, []string{"bold", "also"}},
		{"*it* and _it_", []string{token.MarkdownItalic, token.MarkdownItalic}, []string{"it", "it"}},
		{"snake_case_name", nil, nil},
		{"`**not bold**`", []string{token.MarkdownCode}, []string{"**not bold**"}},
		{"**mixed__", nil, nil},
		{"~~old~~ <u>u</u>", []string{token.MarkdownStrikethrough, token.MarkdownUnderline}, []string{"old", "u"}},
		{"> quote\n- one\n  + two", []string{token.MarkdownBlockquote, token.MarkdownListItem, token.MarkdownListItem}, []string{"quote", "one", "two"}},
		{"a > b - c", nil, nil},
		{"[*x*](y.io)", []string{token.MarkdownLink}, []string{"*x*"}},
	}
	for _, tt := range tests {
		toks := p.Tokenize(tt.text)
		checkInvariants(t, tt.text, toks)
		md := only(toks, token.TypeMarkdown)
		if len(md) != len(tt.kinds) {
			t.Errorf("%q: %d spans %+v, want %d", tt.text, len(md), md, len(tt.kinds))
			continue
		}
		for i := range md {
			if md[i].Metadata.MarkdownType != tt.kinds[i] || md[i].Content != tt.content[i] {
				t.Errorf("%q span %d = %s %q, want %s %q", tt.text, i,
					md[i].Metadata.MarkdownType, md[i].Content, tt.kinds[i], tt.content[i])
			}
		}
	}
}

func TestMarkdownDiscardsClaimedOverlap(t *testing.T) {
	text := "- buy #milk\n**#bold**"
	toks := NewPipeline().Tokenize(text)
	checkInvariants(t, text, toks)
	if n := len(only(toks, token.TypeMarkdown)); n != 0 {
		t.Errorf("markdown overlapping hashtags kept: %+v", toks)
	}
	if n := len(only(toks, token.TypeHashtag)); n != 2 {
		t.Errorf("hashtags = %d, want 2", n)
	}
}

func TestMarkdownLinkSanitised(t *testing.T) {
	p := NewPipeline(WithOptions(Options{Markdown: true}))
	tests := []struct {
		text  string
		href  string
		title string
	}{
		{`[a](javascript:alert(1)`, "", ""},
		{`[a](JavaScript:x)`, "#", ""},
		{`[a](example.com "Home")`, "https://example.com", "Home"},
		{`[a](/rel)`, "/rel", ""},
		{`[a](mailto:x@y.z)`, "mailto:x@y.z", ""},
	}
	for _, tt := range tests {
		links := only(p.Tokenize(tt.text), token.TypeMarkdown)
		if tt.href == "" {
			continue
		}
		if len(links) != 1 {
			t.Errorf("%q: %d links", tt.text, len(links))
			continue
		}
		if links[0].Metadata.Href != tt.href || links[0].Metadata.Title != tt.title {
			t.Errorf("%q: href=%q title=%q, want %q %q", tt.text, links[0].Metadata.Href, links[0].Metadata.Title, tt.href, tt.title)
		}
	}
}

func TestDomainHelpers(t *testing.T) {
	d := DefaultDomains()
	if got, ok := d.Lookup("m.youtube.com"); !ok || got.Behavior != token.BehaviorModal {
		t.Errorf("Lookup(m.youtube.com) = %+v, %v", got, ok)
	}
	if _, ok := d.Lookup("notyoutube.co"); ok {
		t.Error("unrelated host matched")
	}
	if id, ok := YouTubeID("https://www.youtube.com/shorts/abcdefghijk?x=1"); !ok || id != "abcdefghijk" {
		t.Errorf("YouTubeID = %q, %v", id, ok)
	}
	if FileExtension("https://x.io/a/b.JPEG?s=1#f") != "jpeg" {
		t.Errorf("FileExtension = %q", FileExtension("https://x.io/a/b.JPEG?s=1#f"))
	}
	if HasImageExtension("https://x.io/a.pdf") {
		t.Error("pdf treated as image")
	}
}

func TestEmojiAfterURLWord(t *testing.T) {
	p := NewPipeline(WithOptions(Options{Emojis: true}))

	toks := p.Tokenize("see http://example.com/a :fire:")
	if got := only(toks, token.TypeEmoji); len(got) != 1 || got[0].Content != "🔥" {
		t.Errorf("shortcode after a separate URL word: %+v", toks)
	}

	toks = p.Tokenize("http://example.com/a:fire:")
	if got := only(toks, token.TypeEmoji); len(got) != 0 {
		t.Errorf("shortcode glued to a URL: %+v", got)
	}
}
