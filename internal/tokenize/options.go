package tokenize

import (
	"github.com/dshills/richinput/internal/emoji"
	"github.com/dshills/richinput/internal/logging"
)

// DefaultEmojiContextWindow is how many bytes either side of an emoji
// candidate are inspected for URL continuation.
const DefaultEmojiContextWindow = 100

// Built-in recognizer priorities. Higher runs first.
const (
	PriorityImage    = 600
	PriorityHashtag  = 500
	PriorityMention  = 400
	PriorityURL      = 300
	PriorityMarkdown = 200
	PriorityEmoji    = 100
)

// Options toggles the built-in recognizers and tunes their heuristics.
type Options struct {
	Hashtags bool
	Mentions bool
	URLs     bool
	Emojis   bool
	Images   bool
	Markdown bool

	// AllowUnknownEmoji accepts well-formed shortcodes that are not in the
	// catalog.
	AllowUnknownEmoji bool

	// EmojiContextWindow bounds the URL-continuation check around emoji
	// candidates. Zero or less uses DefaultEmojiContextWindow.
	EmojiContextWindow int

	// Placeholder is the Content of the token produced for an empty buffer.
	Placeholder string
}

// DefaultOptions enables every recognizer.
func DefaultOptions() Options {
	return Options{
		Hashtags:           true,
		Mentions:           true,
		URLs:               true,
		Emojis:             true,
		Images:             true,
		Markdown:           true,
		EmojiContextWindow: DefaultEmojiContextWindow,
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOptions replaces the recognizer toggles.
func WithOptions(o Options) Option {
	return func(p *Pipeline) {
		p.opts = o
	}
}

// WithCatalog sets the emoji catalog used by the emoji recognizer.
func WithCatalog(c *emoji.Catalog) Option {
	return func(p *Pipeline) {
		p.catalog = c
	}
}

// WithDomains replaces the URL domain table.
func WithDomains(d *DomainTable) Option {
	return func(p *Pipeline) {
		p.domains = d
	}
}

// WithRegistry adds every recognizer registered in r and, unless a catalog
// was set explicitly, uses r's catalog. The recognizers are read once, when
// the pipeline is built; later registrations reach only new pipelines.
func WithRegistry(r *Registry) Option {
	return func(p *Pipeline) {
		p.registry = r
	}
}

// WithRecognizers adds extra recognizers, placed by priority.
func WithRecognizers(rs ...Recognizer) Option {
	return func(p *Pipeline) {
		p.extra = append(p.extra, rs...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}
