package lua

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richinput/internal/logging"
)

// Default limits for a State.
const (
	DefaultTimeout       = 100 * time.Millisecond
	DefaultCallStackSize = 256
)

// State is a sandboxed Lua interpreter. gopher-lua states are not safe for
// concurrent use, so every operation holds the state's mutex.
type State struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

type stateConfig struct {
	timeout       time.Duration
	callStackSize int
	logger        *logging.Logger
}

// StateOption configures a State.
type StateOption func(*stateConfig)

// WithStateTimeout bounds each DoString, DoFile and Call. Zero disables
// the deadline.
func WithStateTimeout(d time.Duration) StateOption {
	return func(c *stateConfig) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithCallStackSize bounds Lua call depth.
func WithCallStackSize(n int) StateOption {
	return func(c *stateConfig) {
		if n > 0 {
			c.callStackSize = n
		}
	}
}

// WithStateLogger receives script print output.
func WithStateLogger(l *logging.Logger) StateOption {
	return func(c *stateConfig) { c.logger = l }
}

// NewState creates a sandboxed state.
func NewState(opts ...StateOption) *State {
	cfg := stateConfig{
		timeout:       DefaultTimeout,
		callStackSize: DefaultCallStackSize,
		logger:        logging.Null(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: cfg.callStackSize,
	})
	openSafeLibraries(L)
	sandbox(L, cfg.logger)

	return &State{L: L, timeout: cfg.timeout}
}

// DoString runs a chunk of Lua source.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}
	return s.guard(func() error { return s.L.DoString(code) })
}

// DoFile runs a Lua file.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}
	return s.guard(func() error { return s.L.DoFile(path) })
}

// Call invokes a global function and returns its results.
func (s *State) Call(fn string, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStateClosed
	}

	f := s.L.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%q is not a function (got %s)", fn, f.Type())
	}

	top := s.L.GetTop()
	err := s.guard(func() error {
		s.L.Push(f)
		for _, a := range args {
			s.L.Push(a)
		}
		return s.L.PCall(len(args), lua.MultRet, nil)
	})
	if err != nil {
		s.L.SetTop(top)
		return nil, err
	}

	n := s.L.GetTop() - top
	results := make([]lua.LValue, n)
	for i := 0; i < n; i++ {
		results[i] = s.L.Get(top + i + 1)
	}
	s.L.SetTop(top)
	return results, nil
}

// guard runs fn under the call deadline and converts panics to errors.
func (s *State) guard(fn func() error) (err error) {
	var ctx context.Context
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil && ctx != nil && ctx.Err() != nil {
			err = fmt.Errorf("%w after %v", ErrExecutionTimeout, s.timeout)
		}
	}()
	return fn()
}

// Global returns a global value, or LNil once closed.
func (s *State) Global(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Close releases the interpreter.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
