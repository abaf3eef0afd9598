package layout

import "github.com/dshills/richinput/internal/token"

// Label returns the text a host shows for t. Plain text shows its raw
// bytes; atomic tokens show their display form.
func Label(t token.Token) string {
	switch t.Type {
	case token.TypeText:
		if t.Metadata.Placeholder {
			return t.Content
		}
		return t.RawText
	case token.TypeHashtag:
		return "#" + t.Content
	case token.TypeMention:
		return "@" + t.Content
	case token.TypeEmoji:
		if t.Metadata.EmojiUnicode != "" {
			return t.Metadata.EmojiUnicode
		}
		return t.Content
	case token.TypeImage:
		if t.Metadata.ImageAlt != "" {
			return "[" + t.Metadata.ImageAlt + "]"
		}
		return "[image]"
	default:
		if t.Content == "" {
			return t.RawText
		}
		return t.Content
	}
}
