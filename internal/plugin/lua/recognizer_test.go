package lua

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/richinput/internal/token"
	"github.com/dshills/richinput/internal/tokenize"
)

const ticketScript = `
priority = 450

function recognize(text)
    local out = {}
    local init = 1
    while true do
        local s, e = string.find(text, "JIRA%-%d+", init)
        if not s then break end
        out[#out + 1] = {
            start = s - 1,
            ["end"] = e,
            type = "jira",
            data = { project = "JIRA" },
        }
        init = e + 1
    end
    return out
end
`

func wholeScope(text string) tokenize.Scope {
	return tokenize.Scope{Text: text, Free: []tokenize.Span{{Start: 0, End: len(text)}}}
}

func TestRecognizerFindsMatches(t *testing.T) {
	r, err := NewRecognizer("ticket", ticketScript)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	if r.Name() != "ticket" || r.Priority() != 450 {
		t.Errorf("Name/Priority = %q/%d", r.Name(), r.Priority())
	}

	toks := r.Recognize(wholeScope("see JIRA-1 and JIRA-22"))
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	want := []struct {
		start, end int
		content    string
	}{{4, 10, "JIRA-1"}, {15, 22, "JIRA-22"}}
	for i, w := range want {
		got := toks[i]
		if got.Start != w.start || got.End != w.end || got.Content != w.content {
			t.Errorf("token %d = [%d,%d) %q, want [%d,%d) %q", i, got.Start, got.End, got.Content, w.start, w.end, w.content)
		}
		if got.Type != token.TypeCustom || got.Metadata.CustomType != "jira" {
			t.Errorf("token %d type = %v/%q", i, got.Type, got.Metadata.CustomType)
		}
		if got.Metadata.CustomData["project"] != "JIRA" {
			t.Errorf("token %d data = %v", i, got.Metadata.CustomData)
		}
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestRecognizerSegmentsOffsetByBase(t *testing.T) {
	r, err := NewRecognizer("ticket", ticketScript)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	text := "#tag JIRA-7"
	toks := r.Recognize(tokenize.Scope{Text: text, Free: []tokenize.Span{{Start: 4, End: len(text)}}})
	if len(toks) != 1 || toks[0].Start != 5 || toks[0].End != 11 {
		t.Fatalf("tokens = %+v", toks)
	}
}

func TestRecognizerInPipeline(t *testing.T) {
	r, err := NewRecognizer("ticket", ticketScript)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	p := tokenize.NewPipeline(tokenize.WithRecognizers(r))
	toks := p.Tokenize("fix JIRA-12 now #bug")

	var kinds []token.Type
	for _, tk := range toks {
		kinds = append(kinds, tk.Type)
	}
	want := []token.Type{token.TypeText, token.TypeCustom, token.TypeText, token.TypeHashtag}
	if len(kinds) != len(want) {
		t.Fatalf("types = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("types = %v, want %v", kinds, want)
		}
	}
	if toks[1].RawText != "JIRA-12" {
		t.Errorf("RawText = %q", toks[1].RawText)
	}
}

func TestRecognizerDefaultsAndOverrides(t *testing.T) {
	src := `function recognize(text) return { { start = 0, ["end"] = 1 } } end`
	r, err := NewRecognizer("first", src, WithPriority(10))
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	if r.Priority() != 10 {
		t.Errorf("Priority = %d, want 10", r.Priority())
	}
	toks := r.Recognize(wholeScope("héllo"))
	if len(toks) != 1 || toks[0].Content != "h" || toks[0].Metadata.CustomType != "first" {
		t.Errorf("tokens = %+v", toks)
	}
}

func TestRecognizerSkipsInvalidMatches(t *testing.T) {
	src := `
function recognize(text)
    return {
        { start = 1, ["end"] = 2 },   -- splits the é
        { start = 3, ["end"] = 2 },   -- reversed
        { start = 0, ["end"] = 99 },  -- past the end
        "not a table",
        { start = 3, ["end"] = 6 },
    }
end`
	r, err := NewRecognizer("bad", src)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	toks := r.Recognize(wholeScope("héllo"))
	if len(toks) != 1 || toks[0].Content != "llo" {
		t.Errorf("tokens = %+v", toks)
	}
}

func TestRecognizerCompileErrors(t *testing.T) {
	_, err := NewRecognizer("syntax", "function recognize(")
	var serr *ScriptError
	if !errors.As(err, &serr) || serr.Script != "syntax" {
		t.Errorf("syntax error = %v", err)
	}

	_, err = NewRecognizer("empty", "x = 1")
	if !errors.Is(err, ErrNoRecognizeFunc) {
		t.Errorf("missing function error = %v", err)
	}
}

func TestRecognizerRuntimeError(t *testing.T) {
	r, err := NewRecognizer("boom", `function recognize(text) error("nope") end`)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	if toks := r.Recognize(wholeScope("abc")); len(toks) != 0 {
		t.Errorf("tokens = %+v", toks)
	}
	var serr *ScriptError
	if !errors.As(r.Err(), &serr) || serr.Func != RecognizeFunc {
		t.Errorf("Err() = %v", r.Err())
	}

	r2, err := NewRecognizer("shape", `function recognize(text) return 42 end`)
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r2.Close()
	r2.Recognize(wholeScope("abc"))
	if !errors.Is(r2.Err(), ErrBadResult) {
		t.Errorf("Err() = %v, want ErrBadResult", r2.Err())
	}
}

func TestRecognizerTimeout(t *testing.T) {
	r, err := NewRecognizer("spin", `function recognize(text) while true do end end`,
		WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewRecognizer: %v", err)
	}
	defer r.Close()

	if toks := r.Recognize(wholeScope("abc")); len(toks) != 0 {
		t.Errorf("tokens = %+v", toks)
	}
	if !errors.Is(r.Err(), ErrExecutionTimeout) {
		t.Errorf("Err() = %v, want ErrExecutionTimeout", r.Err())
	}
}

func TestLoadRecognizer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticket.lua")
	if err := os.WriteFile(path, []byte(ticketScript), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadRecognizer(path)
	if err != nil {
		t.Fatalf("LoadRecognizer: %v", err)
	}
	defer r.Close()
	if r.Name() != "ticket" {
		t.Errorf("Name = %q", r.Name())
	}

	if _, err := LoadRecognizer(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecognizerDefaultPriority(t *testing.T) {
	plain := `function recognize(text) return nil end`
	r, err := NewRecognizer("plain", plain, WithDefaultPriority(700))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.Priority() != 700 {
		t.Errorf("Priority = %d, want 700", r.Priority())
	}
	if toks := r.Recognize(wholeScope("abc")); len(toks) != 0 || r.Err() != nil {
		t.Errorf("nil result: tokens %v, err %v", toks, r.Err())
	}

	r2, err := NewRecognizer("ticket", ticketScript, WithDefaultPriority(700))
	if err != nil {
		t.Fatal(err)
	}
	defer r2.Close()
	if r2.Priority() != 450 {
		t.Errorf("script priority should win over the default, got %d", r2.Priority())
	}
}
