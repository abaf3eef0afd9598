// Package emoji holds the shortcode vocabulary consulted by the emoji
// recognizer. A Catalog is an ordinary value: construct one per process (or
// per test) and hand it to the tokenizer.
package emoji

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Emoji describes one shortcode. Standard emoji carry Unicode; custom emoji
// carry an https ImageURL.
type Emoji struct {
	ID       string
	Name     string
	Unicode  string
	ImageURL string
	Category string
	Tags     []string
	Aliases  []string
}

func (e Emoji) clone() Emoji {
	e.Tags = slices.Clone(e.Tags)
	e.Aliases = slices.Clone(e.Aliases)
	return e
}

// Catalog is a concurrency-safe registry of emoji keyed by folded id, with
// a secondary alias index.
type Catalog struct {
	mu      sync.RWMutex
	byID    map[string]Emoji
	aliases map[string]string
	order   []string

	blockedHosts map[string]bool
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:    make(map[string]Emoji),
		aliases: make(map[string]string),
		blockedHosts: map[string]bool{
			"localhost": true,
			"127.0.0.1": true,
			"0.0.0.0":   true,
		},
	}
}

// NewStandardCatalog returns a catalog preloaded with the built-in set.
// It panics if the built-in set fails validation.
func NewStandardCatalog() *Catalog {
	c := NewCatalog()
	if err := c.RegisterAll(Standard()); err != nil {
		panic(fmt.Sprintf("emoji: invalid standard set: %v", err))
	}
	return c
}

// key folds a name for lookup. A Caser keeps state, so each call gets its
// own.
func key(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Register adds or replaces an emoji. ID, Name and Category are required.
// An ImageURL that is not https, or that points at a blocked host, is
// cleared and reported with ErrUnsafeImageURL after the emoji is stored.
func (c *Catalog) Register(e Emoji) error {
	if e.ID == "" || e.Name == "" || e.Category == "" {
		return fmt.Errorf("%w: id, name and category are required", ErrInvalidEmoji)
	}
	e = e.clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	var urlErr error
	if e.ImageURL != "" {
		if err := c.checkImageURL(e.ImageURL); err != nil {
			urlErr = fmt.Errorf("emoji %q: %w", e.ID, err)
			e.ImageURL = ""
		}
	}

	id := key(e.ID)
	if _, exists := c.byID[id]; !exists {
		c.order = append(c.order, id)
	}
	c.byID[id] = e
	for _, a := range e.Aliases {
		c.aliases[key(a)] = id
	}
	return urlErr
}

// RegisterAll registers each emoji, returning the first error. Emoji after
// a failure are still registered.
func (c *Catalog) RegisterAll(emoji []Emoji) error {
	var first error
	for _, e := range emoji {
		if err := c.Register(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *Catalog) checkImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeImageURL, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrUnsafeImageURL, u.Scheme)
	}
	if c.blockedHosts[u.Hostname()] {
		return fmt.Errorf("%w: host %q", ErrUnsafeImageURL, u.Hostname())
	}
	return nil
}

// Lookup finds an emoji by id, then by alias. Matching ignores case.
func (c *Catalog) Lookup(name string) (Emoji, bool) {
	k := key(name)

	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.byID[k]; ok {
		return e.clone(), true
	}
	if id, ok := c.aliases[k]; ok {
		e, ok := c.byID[id]
		return e.clone(), ok
	}
	return Emoji{}, false
}

// Has reports whether name resolves to an emoji.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// All returns every emoji in registration order.
func (c *Catalog) All() []Emoji {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Emoji, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].clone())
	}
	return out
}

// Len returns the number of registered emoji.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// ByCategory returns the emoji in category, in registration order.
func (c *Catalog) ByCategory(category string) []Emoji {
	var out []Emoji
	for _, e := range c.All() {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct category names, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.All() {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Search returns emoji whose name, a tag or an alias contains query,
// ignoring case.
func (c *Catalog) Search(query string) []Emoji {
	q := key(query)
	all := c.All()
	if q == "" {
		return all
	}

	var out []Emoji
	for _, e := range all {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e Emoji, q string) bool {
	if strings.Contains(key(e.Name), q) {
		return true
	}
	for _, s := range e.Tags {
		if strings.Contains(key(s), q) {
			return true
		}
	}
	for _, s := range e.Aliases {
		if strings.Contains(key(s), q) {
			return true
		}
	}
	return false
}
