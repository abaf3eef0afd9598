// Package token defines the typed spans produced by the tokenizer and the
// invariants every token set must satisfy against its buffer.
package token

import "maps"

// Type identifies what a token represents.
type Type string

const (
	TypeText     Type = "text"
	TypeHashtag  Type = "hashtag"
	TypeMention  Type = "mention"
	TypeURL      Type = "url"
	TypeEmoji    Type = "emoji"
	TypeImage    Type = "image"
	TypeMarkdown Type = "markdown"
	TypeCustom   Type = "custom"
)

// Valid reports whether t is one of the known token types.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeHashtag, TypeMention, TypeURL, TypeEmoji,
		TypeImage, TypeMarkdown, TypeCustom:
		return true
	}
	return false
}

// Behavior is the interaction a link or embed pill triggers when activated.
type Behavior string

const (
	BehaviorLink  Behavior = "link"
	BehaviorEmbed Behavior = "embed"
	BehaviorModal Behavior = "modal"
)

// ParseBehavior validates a behavior name.
func ParseBehavior(s string) (Behavior, bool) {
	switch b := Behavior(s); b {
	case BehaviorLink, BehaviorEmbed, BehaviorModal:
		return b, true
	}
	return "", false
}

// Role is the filter role attached to a mention.
type Role string

const (
	RoleAuthor   Role = "author"
	RoleMentions Role = "mentions"
)

// ParseRole validates a mention role. The empty string maps to RoleAuthor.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case "":
		return RoleAuthor, true
	case RoleAuthor, RoleMentions:
		return r, true
	}
	return "", false
}

// Markdown span kinds carried in Metadata.MarkdownType.
const (
	MarkdownBold          = "bold"
	MarkdownItalic        = "italic"
	MarkdownCode          = "code"
	MarkdownStrikethrough = "strikethrough"
	MarkdownUnderline     = "underline"
	MarkdownLink          = "link"
	MarkdownBlockquote    = "blockquote"
	MarkdownListItem      = "list-item"
)

// Metadata holds the type-specific attributes of a token. Only the fields
// relevant to the token's Type are set.
type Metadata struct {
	Hashtag string

	UserID      string
	Username    string
	DisplayName string
	FilterType  Role

	Href     string
	Behavior Behavior
	CustomID string
	Domain   string

	EmojiID       string
	EmojiUnicode  string
	EmojiImageURL string

	ImageSrc    string
	ImageAlt    string
	ImageTitle  string
	ImageWidth  int
	ImageHeight int

	MarkdownType string
	Title        string

	CustomType string
	CustomData map[string]string

	OriginalFormat string

	IsWhitespace bool
	HasNewlines  bool
	Placeholder  bool
}

// Equal reports whether two metadata values are identical.
func (m Metadata) Equal(o Metadata) bool {
	return m.Hashtag == o.Hashtag &&
		m.UserID == o.UserID && m.Username == o.Username &&
		m.DisplayName == o.DisplayName && m.FilterType == o.FilterType &&
		m.Href == o.Href && m.Behavior == o.Behavior &&
		m.CustomID == o.CustomID && m.Domain == o.Domain &&
		m.EmojiID == o.EmojiID && m.EmojiUnicode == o.EmojiUnicode &&
		m.EmojiImageURL == o.EmojiImageURL &&
		m.ImageSrc == o.ImageSrc && m.ImageAlt == o.ImageAlt &&
		m.ImageTitle == o.ImageTitle && m.ImageWidth == o.ImageWidth &&
		m.ImageHeight == o.ImageHeight &&
		m.MarkdownType == o.MarkdownType && m.Title == o.Title &&
		m.CustomType == o.CustomType &&
		m.OriginalFormat == o.OriginalFormat &&
		m.IsWhitespace == o.IsWhitespace && m.HasNewlines == o.HasNewlines &&
		m.Placeholder == o.Placeholder &&
		maps.Equal(m.CustomData, o.CustomData)
}

// Clone returns a copy that shares no maps with m.
func (m Metadata) Clone() Metadata {
	if m.CustomData != nil {
		m.CustomData = maps.Clone(m.CustomData)
	}
	return m
}

// Token is a typed span [Start, End) of the buffer. RawText is always the
// exact buffer substring; Content is the display value.
type Token struct {
	Type     Type
	Content  string
	RawText  string
	Start    int
	End      int
	Metadata Metadata
}

// Len returns the span length in bytes.
func (t Token) Len() int { return t.End - t.Start }

// Atomic reports whether the token moves, selects and deletes as a single
// unit. Everything except plain text is atomic, and so is a line break.
func (t Token) Atomic() bool {
	if t.Type != TypeText {
		return true
	}
	return t.IsLineBreak()
}

// IsLineBreak reports whether the token is a standalone line terminator.
func (t Token) IsLineBreak() bool {
	return t.Type == TypeText && (t.RawText == "\n" || t.RawText == "\r\n" || t.RawText == "\r")
}

// Interior reports whether i lies strictly inside the span.
func (t Token) Interior(i int) bool {
	return t.Start < i && i < t.End
}

// Covers reports whether i lies in [Start, End).
func (t Token) Covers(i int) bool {
	return t.Start <= i && i < t.End
}

// Equal compares two tokens field by field.
func (t Token) Equal(o Token) bool {
	return t.Type == o.Type && t.Content == o.Content && t.RawText == o.RawText &&
		t.Start == o.Start && t.End == o.End && t.Metadata.Equal(o.Metadata)
}

// Clone returns a deep copy.
func (t Token) Clone() Token {
	t.Metadata = t.Metadata.Clone()
	return t
}

// Placeholder returns the degenerate token standing in for an empty buffer.
func Placeholder(content string) Token {
	return Token{
		Type:     TypeText,
		Content:  content,
		Metadata: Metadata{Placeholder: true},
	}
}
