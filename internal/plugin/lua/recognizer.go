package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/token"
	"github.com/dshills/richinput/internal/tokenize"
)

// DefaultPriority places script recognizers after the built-in ones.
const DefaultPriority = 500

// RecognizeFunc is the global a script must define.
const RecognizeFunc = "recognize"

// Recognizer adapts a Lua script to tokenize.Recognizer. Matches become
// custom tokens.
type Recognizer struct {
	name     string
	priority int
	state    *State
	logger   *logging.Logger

	mu      sync.Mutex
	lastErr error
}

type recognizerConfig struct {
	name     string
	fallback int
	priority *int
	logger   *logging.Logger
	state    []StateOption
}

// Option configures a Recognizer.
type Option func(*recognizerConfig)

// WithName overrides the recognizer name.
func WithName(name string) Option {
	return func(c *recognizerConfig) { c.name = name }
}

// WithDefaultPriority sets the priority used when the script does not set
// a priority global.
func WithDefaultPriority(p int) Option {
	return func(c *recognizerConfig) { c.fallback = p }
}

// WithPriority overrides both the default and any priority global set by the
// script.
func WithPriority(p int) Option {
	return func(c *recognizerConfig) { c.priority = &p }
}

// WithLogger sets the logger for script output and failures.
func WithLogger(l *logging.Logger) Option {
	return func(c *recognizerConfig) { c.logger = l }
}

// WithTimeout bounds each recognize call.
func WithTimeout(d time.Duration) Option {
	return func(c *recognizerConfig) { c.state = append(c.state, WithStateTimeout(d)) }
}

// WithStateOptions passes options through to the underlying State.
func WithStateOptions(opts ...StateOption) Option {
	return func(c *recognizerConfig) { c.state = append(c.state, opts...) }
}

// LoadRecognizer reads a script from disk. The file name without extension
// is the default recognizer name.
func LoadRecognizer(path string, opts ...Option) (*Recognizer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewRecognizer(name, string(src), opts...)
}

// NewRecognizer compiles source and checks that it defines recognize. A
// numeric global named priority sets the priority unless WithPriority is
// given.
func NewRecognizer(name, source string, opts ...Option) (*Recognizer, error) {
	cfg := recognizerConfig{name: name, fallback: DefaultPriority, logger: logging.Null()}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger.WithComponent("lua").WithField("script", cfg.name)

	st := NewState(append([]StateOption{WithStateLogger(logger)}, cfg.state...)...)
	if err := st.DoString(source); err != nil {
		st.Close()
		return nil, &ScriptError{Script: cfg.name, Err: err}
	}
	if st.Global(RecognizeFunc).Type() != lua.LTFunction {
		st.Close()
		return nil, &ScriptError{Script: cfg.name, Err: ErrNoRecognizeFunc}
	}

	priority := cfg.fallback
	if n, ok := st.Global("priority").(lua.LNumber); ok {
		priority = int(n)
	}
	if cfg.priority != nil {
		priority = *cfg.priority
	}

	return &Recognizer{
		name:     cfg.name,
		priority: priority,
		state:    st,
		logger:   logger,
	}, nil
}

func (r *Recognizer) Name() string  { return r.name }
func (r *Recognizer) Priority() int { return r.priority }

// Err returns the failure from the most recent Recognize, if any.
func (r *Recognizer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *Recognizer) setErr(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}

// Recognize calls the script once per free segment. A failing call is
// logged, recorded for Err, and yields no tokens for that segment.
func (r *Recognizer) Recognize(s tokenize.Scope) []token.Token {
	var out []token.Token
	var firstErr error
	s.Segments(func(base int, seg string) {
		toks, err := r.recognize(base, seg)
		if err != nil {
			r.logger.Warn("recognize failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		out = append(out, toks...)
	})
	r.setErr(firstErr)
	return out
}

func (r *Recognizer) recognize(base int, seg string) ([]token.Token, error) {
	ret, err := r.state.Call(RecognizeFunc, lua.LString(seg))
	if err != nil {
		return nil, &ScriptError{Script: r.name, Func: RecognizeFunc, Err: err}
	}
	if len(ret) == 0 || ret[0] == lua.LNil {
		return nil, nil
	}
	tbl, ok := ret[0].(*lua.LTable)
	if !ok {
		return nil, &ScriptError{Script: r.name, Func: RecognizeFunc,
			Err: fmt.Errorf("%w: got %s", ErrBadResult, ret[0].Type())}
	}

	var out []token.Token
	for i := 1; i <= tbl.Len(); i++ {
		m, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			r.logger.Debug("match %d is not a table", i)
			continue
		}
		tok, ok := r.decodeMatch(seg, m)
		if !ok {
			r.logger.Debug("match %d has invalid offsets", i)
			continue
		}
		tok.Start += base
		tok.End += base
		out = append(out, tok)
	}
	return out, nil
}

func (r *Recognizer) decodeMatch(seg string, m *lua.LTable) (token.Token, bool) {
	start, ok1 := m.RawGetString("start").(lua.LNumber)
	end, ok2 := m.RawGetString("end").(lua.LNumber)
	if !ok1 || !ok2 {
		return token.Token{}, false
	}
	s, e := int(start), int(end)
	if s < 0 || e > len(seg) || s >= e || !utf8.RuneStart(seg[s]) || (e < len(seg) && !utf8.RuneStart(seg[e])) {
		return token.Token{}, false
	}

	tok := token.Token{
		Type:     token.TypeCustom,
		Content:  seg[s:e],
		Start:    s,
		End:      e,
		Metadata: token.Metadata{CustomType: r.name},
	}
	if c, ok := m.RawGetString("content").(lua.LString); ok {
		tok.Content = string(c)
	}
	if t, ok := m.RawGetString("type").(lua.LString); ok && t != "" {
		tok.Metadata.CustomType = string(t)
	}
	if data, ok := m.RawGetString("data").(*lua.LTable); ok {
		tok.Metadata.CustomData = make(map[string]string)
		data.ForEach(func(k, v lua.LValue) {
			tok.Metadata.CustomData[k.String()] = v.String()
		})
	}
	return tok, true
}

// Close releases the Lua state.
func (r *Recognizer) Close() error {
	return r.state.Close()
}
