package token

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Wire keys for metadata string fields.
var metadataStrings = []struct {
	key string
	ptr func(*Metadata) *string
}{
	{"hashtag", func(m *Metadata) *string { return &m.Hashtag }},
	{"userId", func(m *Metadata) *string { return &m.UserID }},
	{"username", func(m *Metadata) *string { return &m.Username }},
	{"displayName", func(m *Metadata) *string { return &m.DisplayName }},
	{"href", func(m *Metadata) *string { return &m.Href }},
	{"customId", func(m *Metadata) *string { return &m.CustomID }},
	{"domain", func(m *Metadata) *string { return &m.Domain }},
	{"emojiId", func(m *Metadata) *string { return &m.EmojiID }},
	{"emojiUnicode", func(m *Metadata) *string { return &m.EmojiUnicode }},
	{"emojiImageUrl", func(m *Metadata) *string { return &m.EmojiImageURL }},
	{"imageSrc", func(m *Metadata) *string { return &m.ImageSrc }},
	{"imageAlt", func(m *Metadata) *string { return &m.ImageAlt }},
	{"imageTitle", func(m *Metadata) *string { return &m.ImageTitle }},
	{"markdownType", func(m *Metadata) *string { return &m.MarkdownType }},
	{"title", func(m *Metadata) *string { return &m.Title }},
	{"customType", func(m *Metadata) *string { return &m.CustomType }},
	{"originalFormat", func(m *Metadata) *string { return &m.OriginalFormat }},
}

var metadataInts = []struct {
	key string
	ptr func(*Metadata) *int
}{
	{"imageWidth", func(m *Metadata) *int { return &m.ImageWidth }},
	{"imageHeight", func(m *Metadata) *int { return &m.ImageHeight }},
}

var metadataBools = []struct {
	key string
	ptr func(*Metadata) *bool
}{
	{"isWhitespace", func(m *Metadata) *bool { return &m.IsWhitespace }},
	{"hasNewlines", func(m *Metadata) *bool { return &m.HasNewlines }},
	{"placeholder", func(m *Metadata) *bool { return &m.Placeholder }},
}

// MarshalJSON encodes a token in its wire shape
// {type, content, rawText, start, end, metadata}. Empty metadata fields
// are omitted.
func (t Token) MarshalJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, v)
		}
	}

	set("type", string(t.Type))
	set("content", t.Content)
	set("rawText", t.RawText)
	set("start", t.Start)
	set("end", t.End)
	if err == nil {
		out, err = sjson.SetRawBytes(out, "metadata", []byte(`{}`))
	}

	m := t.Metadata
	for _, f := range metadataStrings {
		if v := *f.ptr(&m); v != "" {
			set("metadata."+f.key, v)
		}
	}
	if m.FilterType != "" {
		set("metadata.filterType", string(m.FilterType))
	}
	if m.Behavior != "" {
		set("metadata.behavior", string(m.Behavior))
	}
	for _, f := range metadataInts {
		if v := *f.ptr(&m); v != 0 {
			set("metadata."+f.key, v)
		}
	}
	for _, f := range metadataBools {
		if *f.ptr(&m) {
			set("metadata."+f.key, true)
		}
	}
	if len(m.CustomData) > 0 {
		if err == nil {
			out, err = sjson.SetRawBytes(out, "metadata.customData", []byte(`{}`))
		}
		keys := make([]string, 0, len(m.CustomData))
		for k := range m.CustomData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			set("metadata.customData."+escapeKey(k), m.CustomData[k])
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	return out, nil
}

// UnmarshalJSON decodes a token from its wire shape.
func (t *Token) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return fmt.Errorf("%w: token is not an object", ErrInvalidJSON)
	}
	tok, err := decodeToken(r)
	if err != nil {
		return err
	}
	*t = tok
	return nil
}

// MarshalSet encodes tokens as a JSON array.
func MarshalSet(tokens []Token) ([]byte, error) {
	out := []byte(`[]`)
	for i, t := range tokens {
		raw, err := t.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		out, err = sjson.SetRawBytes(out, "-1", raw)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
	}
	return out, nil
}

// UnmarshalSet decodes a JSON array of tokens.
func UnmarshalSet(data []byte) ([]Token, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	r := gjson.ParseBytes(data)
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: token set is not an array", ErrInvalidJSON)
	}
	var (
		tokens []Token
		err    error
	)
	r.ForEach(func(_, v gjson.Result) bool {
		var tok Token
		tok, err = decodeToken(v)
		if err != nil {
			err = fmt.Errorf("token %d: %w", len(tokens), err)
			return false
		}
		tokens = append(tokens, tok)
		return true
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func decodeToken(r gjson.Result) (Token, error) {
	t := Token{
		Type:    Type(r.Get("type").String()),
		Content: r.Get("content").String(),
		RawText: r.Get("rawText").String(),
		Start:   int(r.Get("start").Int()),
		End:     int(r.Get("end").Int()),
	}
	if !t.Type.Valid() {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}

	meta := r.Get("metadata")
	m := &t.Metadata
	for _, f := range metadataStrings {
		*f.ptr(m) = meta.Get(f.key).String()
	}
	for _, f := range metadataInts {
		*f.ptr(m) = int(meta.Get(f.key).Int())
	}
	for _, f := range metadataBools {
		*f.ptr(m) = meta.Get(f.key).Bool()
	}
	m.FilterType = Role(meta.Get("filterType").String())
	m.Behavior = Behavior(meta.Get("behavior").String())
	if cd := meta.Get("customData"); cd.IsObject() {
		m.CustomData = make(map[string]string)
		cd.ForEach(func(k, v gjson.Result) bool {
			m.CustomData[k.String()] = v.String()
			return true
		})
	}
	return t, nil
}

// escapeKey escapes characters that sjson treats as path syntax.
func escapeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@', '!', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
