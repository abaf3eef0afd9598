package tokenize

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/richinput/internal/emoji"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/token"
)

// Recognizer finds candidate tokens in the free ranges of a Scope. Returned
// tokens need Type, Content, Start, End and Metadata; RawText is filled in
// by the pipeline. Candidates outside the free ranges are dropped.
type Recognizer interface {
	Name() string
	Priority() int
	Recognize(s Scope) []token.Token
}

// Pipeline is an ordered list of recognizers.
type Pipeline struct {
	opts     Options
	catalog  *emoji.Catalog
	domains  *DomainTable
	registry *Registry
	extra    []Recognizer
	logger   *logging.Logger

	recognizers []Recognizer
}

// NewPipeline builds a pipeline with the built-in recognizers enabled by
// its Options, followed by any extra or registry recognizers in priority
// order.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{opts: DefaultOptions()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.Null()
	}
	p.logger = p.logger.WithComponent("tokenize")
	if p.catalog == nil && p.registry != nil {
		p.catalog = p.registry.Catalog()
	}
	if p.catalog == nil {
		p.catalog = emoji.NewStandardCatalog()
	}
	if p.domains == nil {
		p.domains = DefaultDomains()
	}
	if p.opts.EmojiContextWindow <= 0 {
		p.opts.EmojiContextWindow = DefaultEmojiContextWindow
	}

	if p.opts.Images {
		p.insert(&ImageRecognizer{domains: p.domains})
	}
	if p.opts.Hashtags {
		p.insert(HashtagRecognizer{})
	}
	if p.opts.Mentions {
		p.insert(MentionRecognizer{})
	}
	if p.opts.URLs {
		p.insert(&URLRecognizer{domains: p.domains})
	}
	if p.opts.Markdown {
		p.insert(MarkdownRecognizer{})
	}
	if p.opts.Emojis {
		p.insert(&EmojiRecognizer{
			catalog:      p.catalog,
			window:       p.opts.EmojiContextWindow,
			allowUnknown: p.opts.AllowUnknownEmoji,
		})
	}
	if p.registry != nil {
		for _, r := range p.registry.Recognizers() {
			p.insert(r)
		}
	}
	for _, r := range p.extra {
		p.insert(r)
	}
	return p
}

// insert places r after every recognizer with priority >= r's.
func (p *Pipeline) insert(r Recognizer) {
	i := sort.Search(len(p.recognizers), func(i int) bool {
		return p.recognizers[i].Priority() < r.Priority()
	})
	p.recognizers = slices.Insert(p.recognizers, i, r)
}

// Add inserts a recognizer by priority. A recognizer with the same name is
// replaced.
func (p *Pipeline) Add(r Recognizer) {
	p.Remove(r.Name())
	p.insert(r)
}

// Remove drops the named recognizer.
func (p *Pipeline) Remove(name string) error {
	for i, r := range p.recognizers {
		if r.Name() == name {
			p.recognizers = slices.Delete(p.recognizers, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRecognizerNotFound, name)
}

// Names returns the recognizer names in precedence order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.recognizers))
	for i, r := range p.recognizers {
		out[i] = r.Name()
	}
	return out
}

// Options returns the pipeline's options.
func (p *Pipeline) Options() Options { return p.opts }

// Catalog returns the emoji catalog in use.
func (p *Pipeline) Catalog() *emoji.Catalog { return p.catalog }

// Tokenize derives the token set for text. The result is sorted, does not
// overlap and covers [0, len(text)) exactly. An empty text yields the
// single placeholder token.
func (p *Pipeline) Tokenize(text string) []token.Token {
	if text == "" {
		return []token.Token{token.Placeholder(p.opts.Placeholder)}
	}

	var (
		claimed claims
		found   []token.Token
	)
	for _, r := range p.recognizers {
		scope := Scope{Text: text, Free: claimed.complement(len(text))}
		if len(scope.Free) == 0 {
			break
		}
		cands := p.run(r, scope)
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].Start < cands[j].Start })
		for _, c := range cands {
			span := Span{c.Start, c.End}
			if span.Start < 0 || span.End > len(text) || span.Start >= span.End {
				p.logger.Debug("recognizer %s returned span [%d,%d) outside buffer", r.Name(), span.Start, span.End)
				continue
			}
			if claimed.overlaps(span) {
				continue
			}
			c.RawText = text[c.Start:c.End]
			claimed.add(span)
			found = append(found, c)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Start < found[j].Start })

	out := make([]token.Token, 0, 2*len(found)+1)
	pos := 0
	for _, t := range found {
		if t.Start > pos {
			out = appendText(out, text, pos, t.Start)
		}
		out = append(out, t)
		pos = t.End
	}
	if pos < len(text) {
		out = appendText(out, text, pos, len(text))
	}
	return out
}

// run calls a recognizer, converting a panic into an empty result.
func (p *Pipeline) run(r Recognizer, s Scope) (cands []token.Token) {
	defer func() {
		if v := recover(); v != nil {
			p.logger.Warn("recognizer %s panicked: %v", r.Name(), v)
			cands = nil
		}
	}()
	return r.Recognize(s)
}
