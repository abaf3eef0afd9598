package lua

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richinput/internal/logging"
)

func TestSandboxRemovesUnsafeGlobals(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(`
assert(io == nil, "io")
assert(os == nil, "os")
assert(debug == nil, "debug")
assert(dofile == nil, "dofile")
assert(loadfile == nil, "loadfile")
assert(load == nil, "load")
assert(require == nil, "require")
assert(string.upper("a") == "A")
assert(math.max(1, 2) == 2)
assert(table.concat({"a", "b"}) == "ab")
`)
	if err != nil {
		t.Fatalf("sandbox check failed: %v", err)
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	s := NewState(WithStateLogger(logger))
	defer s.Close()

	if err := s.DoString(`print("hello", 42)`); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "hello\t42") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestCall(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function add(a, b) return a + b, "ok" end`); err != nil {
		t.Fatal(err)
	}
	ret, err := s.Call("add", lua.LNumber(2), lua.LNumber(3))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(ret) != 2 || ret[0] != lua.LNumber(5) || ret[1] != lua.LString("ok") {
		t.Errorf("ret = %v", ret)
	}
	if top := s.L.GetTop(); top != 0 {
		t.Errorf("stack not restored, top = %d", top)
	}

	if _, err := s.Call("missing"); err == nil {
		t.Error("expected error calling an undefined function")
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := s.DoString("x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString = %v", err)
	}
	if _, err := s.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call = %v", err)
	}
	if s.Global("x") != lua.LNil {
		t.Error("Global on closed state should be nil")
	}
}
