package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/richinput/internal/config/loader"
	"github.com/dshills/richinput/internal/engine"
	"github.com/dshills/richinput/internal/layout"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/tokenize"
)

// MaxIncludeDepth bounds @include nesting.
const MaxIncludeDepth = 8

// DefaultDebounce is the reload delay used by Watch.
const DefaultDebounce = 200 * time.Millisecond

// Config is the complete set of richinput settings.
type Config struct {
	Editor      EditorConfig       `toml:"editor"`
	Parsers     ParsersConfig      `toml:"parsers"`
	Heuristics  HeuristicsConfig   `toml:"heuristics"`
	Emoji       EmojiConfig        `toml:"emoji"`
	Recognizers []RecognizerConfig `toml:"recognizers"`
	Lua         LuaConfig          `toml:"lua"`
	Logging     LoggingConfig      `toml:"logging"`
	Terminal    TerminalConfig     `toml:"terminal"`
	Watch       WatchConfig        `toml:"watch"`
}

// EditorConfig mirrors engine.Options.
type EditorConfig struct {
	Multiline      bool   `toml:"multiline"`
	Placeholder    string `toml:"placeholder"`
	MaxLength      int    `toml:"maxLength"`
	SmartSelection bool   `toml:"smartSelection"`
	TabSize        int    `toml:"tabSize"`
	MaxHistory     int    `toml:"maxHistory"`
}

// ParsersConfig toggles the built-in recognizers.
type ParsersConfig struct {
	Hashtags          bool `toml:"hashtags"`
	Mentions          bool `toml:"mentions"`
	URLs              bool `toml:"urls"`
	Emojis            bool `toml:"emojis"`
	Images            bool `toml:"images"`
	Markdown          bool `toml:"markdown"`
	AllowUnknownEmoji bool `toml:"allowUnknownEmoji"`
}

// HeuristicsConfig holds the tunable constants of selection and layout.
type HeuristicsConfig struct {
	SmartSelectionThreshold float64 `toml:"smartSelectionThreshold"`
	AverageCharWidth        float64 `toml:"averageCharWidth"`
	LineHeight              float64 `toml:"lineHeight"`
	EmojiContextWindow      int     `toml:"emojiContextWindow"`
}

// EmojiConfig names an optional JSON catalog loaded over the standard set.
type EmojiConfig struct {
	Catalog string `toml:"catalog"`
}

// RecognizerConfig declares a regular-expression recognizer.
type RecognizerConfig struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Pattern  string `toml:"pattern"`
	Priority int    `toml:"priority"`
}

// LuaConfig lists recognizer scripts and their limits.
type LuaConfig struct {
	Scripts       []string `toml:"scripts"`
	Priority      int      `toml:"priority"`
	Timeout       string   `toml:"timeout"`
	CallStackSize int      `toml:"callStackSize"`
}

// LoggingConfig selects the log level and destination.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// TerminalConfig configures the interactive terminal host.
type TerminalConfig struct {
	TabWidth int           `toml:"tabWidth"`
	Palette  PaletteConfig `toml:"palette"`
}

// PaletteConfig holds hex colors for each pill type.
type PaletteConfig struct {
	Hashtag   string `toml:"hashtag"`
	Mention   string `toml:"mention"`
	URL       string `toml:"url"`
	Emoji     string `toml:"emoji"`
	Image     string `toml:"image"`
	Markdown  string `toml:"markdown"`
	Custom    string `toml:"custom"`
	Selection string `toml:"selection"`
}

// Colors returns the palette entries keyed by name.
func (p PaletteConfig) Colors() map[string]string {
	return map[string]string{
		"hashtag":   p.Hashtag,
		"mention":   p.Mention,
		"url":       p.URL,
		"emoji":     p.Emoji,
		"image":     p.Image,
		"markdown":  p.Markdown,
		"custom":    p.Custom,
		"selection": p.Selection,
	}
}

// WatchConfig controls live reload.
type WatchConfig struct {
	Enabled  bool   `toml:"enabled"`
	Debounce string `toml:"debounce"`
}

// Default returns the built-in settings.
func Default() *Config {
	eo := engine.DefaultOptions()
	po := tokenize.DefaultOptions()
	return &Config{
		Editor: EditorConfig{
			Multiline:      eo.Multiline,
			Placeholder:    eo.Placeholder,
			MaxLength:      eo.MaxLength,
			SmartSelection: eo.SmartSelection,
			TabSize:        eo.TabSize,
			MaxHistory:     eo.MaxHistory,
		},
		Parsers: ParsersConfig{
			Hashtags:          po.Hashtags,
			Mentions:          po.Mentions,
			URLs:              po.URLs,
			Emojis:            po.Emojis,
			Images:            po.Images,
			Markdown:          po.Markdown,
			AllowUnknownEmoji: po.AllowUnknownEmoji,
		},
		Heuristics: HeuristicsConfig{
			SmartSelectionThreshold: eo.SmartSelectionThreshold,
			AverageCharWidth:        layout.DefaultAverageCharWidth,
			LineHeight:              layout.DefaultLineHeight,
			EmojiContextWindow:      po.EmojiContextWindow,
		},
		Lua: LuaConfig{
			Priority:      500,
			Timeout:       "100ms",
			CallStackSize: 256,
		},
		Logging: LoggingConfig{Level: "info"},
		Terminal: TerminalConfig{
			TabWidth: layout.DefaultTabWidth,
			Palette: PaletteConfig{
				Hashtag:   "#4f9dde",
				Mention:   "#8f6bd8",
				URL:       "#2fa37a",
				Emoji:     "#d8a23b",
				Image:     "#c4567a",
				Markdown:  "#7a8590",
				Custom:    "#d9733f",
				Selection: "#3a4a5c",
			},
		},
		Watch: WatchConfig{Debounce: DefaultDebounce.String()},
	}
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	env       bool
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithoutEnv skips the environment layer.
func WithoutEnv() LoadOption {
	return func(o *loadOptions) { o.env = false }
}

// Load builds a validated Config from defaults, the TOML file at path and
// the environment. An empty path skips the file layer.
func Load(path string, opts ...LoadOption) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: loader.DefaultEnvPrefix, env: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)
	if path != "" {
		if _, err := o.fs.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, err
		}
		fileCfg, err := loader.NewTOMLLoaderWithFS(o.fs, path).LoadWithIncludes(path, MaxIncludeDepth)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}
	if o.env {
		envCfg, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, envCfg)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged settings tree over c. Keys no field accepts are
// rejected.
func (c *Config) apply(tree map[string]any) error {
	if len(tree) == 0 {
		return nil
	}
	data, err := toml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding merged settings: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, strict.String())
		}
		return fmt.Errorf("decoding settings: %w", err)
	}
	return nil
}

// Validate checks every setting and reports all failures together as
// ValidationErrors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	fail := func(path, msg string, v any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v, Code: code})
	}

	if c.Editor.MaxLength < 0 {
		fail("editor.maxLength", "must not be negative", c.Editor.MaxLength, ErrCodeOutOfRange)
	}
	if c.Editor.TabSize < 0 || c.Editor.TabSize > 16 {
		fail("editor.tabSize", "must be between 0 and 16", c.Editor.TabSize, ErrCodeOutOfRange)
	}
	if c.Editor.MaxHistory < 1 {
		fail("editor.maxHistory", "must be at least 1", c.Editor.MaxHistory, ErrCodeOutOfRange)
	}

	h := c.Heuristics
	if h.SmartSelectionThreshold <= 0 || h.SmartSelectionThreshold > 1 {
		fail("heuristics.smartSelectionThreshold", "must be in (0, 1]", h.SmartSelectionThreshold, ErrCodeOutOfRange)
	}
	if h.AverageCharWidth <= 0 {
		fail("heuristics.averageCharWidth", "must be positive", h.AverageCharWidth, ErrCodeOutOfRange)
	}
	if h.LineHeight <= 0 {
		fail("heuristics.lineHeight", "must be positive", h.LineHeight, ErrCodeOutOfRange)
	}
	if h.EmojiContextWindow < 0 {
		fail("heuristics.emojiContextWindow", "must not be negative", h.EmojiContextWindow, ErrCodeOutOfRange)
	}

	seen := make(map[string]bool, len(c.Recognizers))
	for i, r := range c.Recognizers {
		path := fmt.Sprintf("recognizers[%d]", i)
		switch {
		case r.Name == "":
			fail(path+".name", "is required", r.Name, ErrCodeRequiredMissing)
		case seen[r.Name]:
			fail(path+".name", "is a duplicate", r.Name, ErrCodeInvalidEnum)
		}
		seen[r.Name] = true
		if r.Pattern == "" {
			fail(path+".pattern", "is required", r.Pattern, ErrCodeRequiredMissing)
		} else if _, err := regexp.Compile(r.Pattern); err != nil {
			fail(path+".pattern", err.Error(), r.Pattern, ErrCodePatternMismatch)
		}
	}

	if _, err := time.ParseDuration(c.Lua.Timeout); err != nil {
		fail("lua.timeout", "is not a duration", c.Lua.Timeout, ErrCodePatternMismatch)
	}
	if c.Lua.CallStackSize < 0 {
		fail("lua.callStackSize", "must not be negative", c.Lua.CallStackSize, ErrCodeOutOfRange)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		fail("logging.level", "must be debug, info, warn or error", c.Logging.Level, ErrCodeInvalidEnum)
	}

	if c.Terminal.TabWidth < 1 {
		fail("terminal.tabWidth", "must be at least 1", c.Terminal.TabWidth, ErrCodeOutOfRange)
	}
	for name, hex := range c.Terminal.Palette.Colors() {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			fail("terminal.palette."+name, "is not a hex color", hex, ErrCodePatternMismatch)
		}
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d < 0 {
		fail("watch.debounce", "is not a non-negative duration", c.Watch.Debounce, ErrCodePatternMismatch)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EngineOptions translates the editor settings.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Multiline:               c.Editor.Multiline,
		Placeholder:             c.Editor.Placeholder,
		MaxLength:               c.Editor.MaxLength,
		SmartSelection:          c.Editor.SmartSelection,
		SmartSelectionThreshold: c.Heuristics.SmartSelectionThreshold,
		TabSize:                 c.Editor.TabSize,
		MaxHistory:              c.Editor.MaxHistory,
		Parsers:                 c.TokenizeOptions(),
	}
}

// TokenizeOptions translates the parser toggles.
func (c *Config) TokenizeOptions() tokenize.Options {
	return tokenize.Options{
		Hashtags:           c.Parsers.Hashtags,
		Mentions:           c.Parsers.Mentions,
		URLs:               c.Parsers.URLs,
		Emojis:             c.Parsers.Emojis,
		Images:             c.Parsers.Images,
		Markdown:           c.Parsers.Markdown,
		AllowUnknownEmoji:  c.Parsers.AllowUnknownEmoji,
		EmojiContextWindow: c.Heuristics.EmojiContextWindow,
		Placeholder:        c.Editor.Placeholder,
	}
}

// MapperOptions translates the layout fallbacks.
func (c *Config) MapperOptions() []layout.MapperOption {
	return []layout.MapperOption{
		layout.WithAverageCharWidth(c.Heuristics.AverageCharWidth),
		layout.WithLineHeight(c.Heuristics.LineHeight),
	}
}

// PatternRecognizers compiles the declared regular-expression recognizers.
func (c *Config) PatternRecognizers() ([]tokenize.Recognizer, error) {
	out := make([]tokenize.Recognizer, 0, len(c.Recognizers))
	for _, r := range c.Recognizers {
		rec, err := tokenize.NewPatternRecognizer(r.Name, r.Priority, r.Type, r.Pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// LogLevel returns the parsed logging level, defaulting to info.
func (c *Config) LogLevel() logging.Level {
	l, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return l
}

// LuaTimeout returns the parsed Lua timeout.
func (c *Config) LuaTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Lua.Timeout)
	return d
}

// DebounceDuration returns the parsed watch debounce.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}
