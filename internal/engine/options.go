package engine

import (
	"github.com/dshills/richinput/internal/emoji"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/tokenize"
)

// Default configuration values.
const (
	DefaultTabSize                 = 2
	DefaultMaxHistory              = 100
	DefaultSmartSelectionThreshold = 0.5
)

// Options holds the behavior settings of an Engine.
type Options struct {
	// Multiline allows line breaks. Single-line engines fold them to spaces.
	Multiline bool

	// Placeholder is shown by hosts while the buffer is empty.
	Placeholder string

	// MaxLength caps the buffer in grapheme clusters. Zero is unlimited.
	MaxLength int

	// SmartSelection grows selections to cover tokens they mostly overlap.
	SmartSelection bool

	// SmartSelectionThreshold is the overlap fraction a token must exceed
	// before a selection expands over it.
	SmartSelectionThreshold float64

	// TabSize is the number of spaces InsertTab inserts. Zero or less
	// inserts a tab character.
	TabSize int

	// MaxHistory bounds the undo stack.
	MaxHistory int

	// Parsers toggles the built-in recognizers.
	Parsers tokenize.Options
}

// DefaultOptions returns a multiline engine with every recognizer enabled.
func DefaultOptions() Options {
	return Options{
		Multiline:               true,
		SmartSelection:          true,
		SmartSelectionThreshold: DefaultSmartSelectionThreshold,
		TabSize:                 DefaultTabSize,
		MaxHistory:              DefaultMaxHistory,
		Parsers:                 tokenize.DefaultOptions(),
	}
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithOptions replaces all behavior settings.
func WithOptions(o Options) Option {
	return func(e *Engine) {
		e.opts = o
	}
}

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithMultiline enables or disables line breaks.
func WithMultiline(on bool) Option {
	return func(e *Engine) {
		e.opts.Multiline = on
	}
}

// WithPlaceholder sets the empty-buffer placeholder.
func WithPlaceholder(s string) Option {
	return func(e *Engine) {
		e.opts.Placeholder = s
	}
}

// WithMaxLength caps the buffer length in grapheme clusters.
func WithMaxLength(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.opts.MaxLength = n
		}
	}
}

// WithSmartSelection toggles smart selection.
func WithSmartSelection(on bool) Option {
	return func(e *Engine) {
		e.opts.SmartSelection = on
	}
}

// WithTabSize sets how many spaces InsertTab inserts.
func WithTabSize(n int) Option {
	return func(e *Engine) {
		e.opts.TabSize = n
	}
}

// WithMaxHistory sets the maximum number of undo entries.
func WithMaxHistory(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.opts.MaxHistory = n
		}
	}
}

// WithParsers sets the built-in recognizer toggles.
func WithParsers(p tokenize.Options) Option {
	return func(e *Engine) {
		e.opts.Parsers = p
	}
}

// WithPipeline uses p instead of building a pipeline from Options.Parsers.
func WithPipeline(p *tokenize.Pipeline) Option {
	return func(e *Engine) {
		e.pipeline = p
	}
}

// WithCatalog sets the emoji catalog used by the built pipeline.
func WithCatalog(c *emoji.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithRegistry adds the registry's recognizers to the built pipeline.
func WithRegistry(r *tokenize.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}
