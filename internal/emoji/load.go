package emoji

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
)

// LoadJSON registers the emoji described by an API listing of the form
//
//	{"emojis": [{"emoji_id": "...", "name": "...", "unicode_char": "...",
//	  "custom_image_url": "...", "category": {"name": "..."},
//	  "tags": [...], "aliases": [...]}]}
//
// A bare top-level array of the same objects is also accepted. It returns
// the number of emoji registered and the first registration error.
func (c *Catalog) LoadJSON(data []byte) (int, error) {
	if !gjson.ValidBytes(data) {
		return 0, ErrInvalidCatalog
	}
	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("emojis")
	}
	if !list.IsArray() {
		return 0, fmt.Errorf("%w: no emoji list", ErrInvalidCatalog)
	}

	var batch []Emoji
	list.ForEach(func(_, v gjson.Result) bool {
		batch = append(batch, decodeEmoji(v))
		return true
	})

	var first error
	n := 0
	for _, e := range batch {
		err := c.Register(e)
		if err != nil && first == nil {
			first = err
		}
		if err == nil || !isInvalid(err) {
			n++
		}
	}
	return n, first
}

// LoadFile reads a JSON catalog from path.
func (c *Catalog) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open emoji catalog: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("read emoji catalog: %w", err)
	}
	n, err := c.LoadJSON(data)
	if err != nil {
		return n, fmt.Errorf("load %s: %w", path, err)
	}
	return n, nil
}

func decodeEmoji(v gjson.Result) Emoji {
	e := Emoji{
		ID:       v.Get("emoji_id").String(),
		Name:     v.Get("name").String(),
		Unicode:  v.Get("unicode_char").String(),
		ImageURL: v.Get("custom_image_url").String(),
		Category: v.Get("category.name").String(),
	}
	if e.ID == "" {
		e.ID = v.Get("id").String()
	}
	if e.Category == "" {
		e.Category = v.Get("category").String()
	}
	for _, t := range v.Get("tags").Array() {
		e.Tags = append(e.Tags, t.String())
	}
	for _, a := range v.Get("aliases").Array() {
		e.Aliases = append(e.Aliases, a.String())
	}
	return e
}
