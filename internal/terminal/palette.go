package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/richinput/internal/config"
	"github.com/dshills/richinput/internal/token"
)

// lightThreshold is the CIE L* above which a background gets dark text.
const lightThreshold = 0.6

// Palette maps token types to cell styles.
type Palette struct {
	pills     map[token.Type]colorful.Color
	selection colorful.Color

	Text        tcell.Style
	Placeholder tcell.Style
	Status      tcell.Style
}

// DefaultPalette uses the built-in colors.
func DefaultPalette() *Palette {
	p, err := NewPalette(config.Default().Terminal.Palette)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPalette parses hex colors from cfg. Empty entries fall back to the
// default palette.
func NewPalette(cfg config.PaletteConfig) (*Palette, error) {
	def := config.Default().Terminal.Palette
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}

	entries := []struct {
		typ      token.Type
		hex, def string
	}{
		{token.TypeHashtag, cfg.Hashtag, def.Hashtag},
		{token.TypeMention, cfg.Mention, def.Mention},
		{token.TypeURL, cfg.URL, def.URL},
		{token.TypeEmoji, cfg.Emoji, def.Emoji},
		{token.TypeImage, cfg.Image, def.Image},
		{token.TypeMarkdown, cfg.Markdown, def.Markdown},
		{token.TypeCustom, cfg.Custom, def.Custom},
	}

	p := &Palette{
		pills:       make(map[token.Type]colorful.Color, len(entries)),
		Text:        tcell.StyleDefault,
		Placeholder: tcell.StyleDefault.Dim(true).Italic(true),
		Status:      tcell.StyleDefault.Reverse(true),
	}
	for _, e := range entries {
		c, err := colorful.Hex(pick(e.hex, e.def))
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", e.typ, err)
		}
		p.pills[e.typ] = c
	}
	sel, err := colorful.Hex(pick(cfg.Selection, def.Selection))
	if err != nil {
		return nil, fmt.Errorf("palette selection: %w", err)
	}
	p.selection = sel
	return p, nil
}

// Style returns the style for a cell of t.
func (p *Palette) Style(t token.Token, selected bool) tcell.Style {
	bg, pill := p.pills[t.Type]
	switch {
	case pill && selected:
		return filled(bg.BlendLab(p.selection, 0.5).Clamped()).Bold(true)
	case pill:
		return filled(bg)
	case selected:
		return filled(p.selection)
	default:
		return p.Text
	}
}

// filled paints bg with a readable foreground.
func filled(bg colorful.Color) tcell.Style {
	fg := tcell.ColorWhite
	if l, _, _ := bg.Lab(); l > lightThreshold {
		fg = tcell.ColorBlack
	}
	return tcell.StyleDefault.Background(toTcell(bg)).Foreground(fg)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
