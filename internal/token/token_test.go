package token

import (
	"errors"
	"testing"
)

func sample() (string, []Token) {
	buf := "#go is\nfun"
	return buf, []Token{
		{Type: TypeHashtag, Content: "go", RawText: "#go", Start: 0, End: 3, Metadata: Metadata{Hashtag: "go"}},
		{Type: TypeText, Content: " is", RawText: " is", Start: 3, End: 6},
		{Type: TypeText, Content: "\n", RawText: "\n", Start: 6, End: 7, Metadata: Metadata{IsWhitespace: true, HasNewlines: true}},
		{Type: TypeText, Content: "fun", RawText: "fun", Start: 7, End: 10},
	}
}

func TestValidate(t *testing.T) {
	buf, toks := sample()
	if err := Validate(buf, toks); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if Concat(toks) != buf {
		t.Errorf("Concat() = %q, want %q", Concat(toks), buf)
	}

	gap := append([]Token(nil), toks[0], toks[2], toks[3])
	if err := Validate(buf, gap); !errors.Is(err, ErrCoverage) {
		t.Errorf("gap: got %v, want ErrCoverage", err)
	}

	overlap := Clone(toks)
	overlap[1].Start = 2
	overlap[1].RawText = buf[2:6]
	if err := Validate(buf, overlap); !errors.Is(err, ErrOverlap) {
		t.Errorf("overlap: got %v, want ErrOverlap", err)
	}

	raw := Clone(toks)
	raw[3].RawText = "fan"
	if err := Validate(buf, raw); !errors.Is(err, ErrRawText) {
		t.Errorf("raw: got %v, want ErrRawText", err)
	}

	short := toks[:3]
	if err := Validate(buf, short); !errors.Is(err, ErrCoverage) {
		t.Errorf("short: got %v, want ErrCoverage", err)
	}

	if err := Validate("", []Token{Placeholder("Type here")}); err != nil {
		t.Errorf("placeholder: %v", err)
	}
}

func TestLookup(t *testing.T) {
	_, toks := sample()

	if tok, ok := At(toks, 4); !ok || tok.Start != 3 {
		t.Errorf("At(4) = %+v, %v", tok, ok)
	}
	if _, ok := At(toks, 10); ok {
		t.Error("At(len) should miss")
	}
	if tok, ok := AtomicAround(toks, 1); !ok || tok.Type != TypeHashtag {
		t.Errorf("AtomicAround(1) = %+v, %v", tok, ok)
	}
	if _, ok := AtomicAround(toks, 0); ok {
		t.Error("AtomicAround at boundary should miss")
	}
	if _, ok := AtomicAround(toks, 4); ok {
		t.Error("AtomicAround inside text should miss")
	}
	if tok, ok := AtomicEndingAt(toks, 3); !ok || tok.Type != TypeHashtag {
		t.Errorf("AtomicEndingAt(3) = %+v, %v", tok, ok)
	}
	if tok, ok := AtomicStartingAt(toks, 6); !ok || !tok.IsLineBreak() {
		t.Errorf("AtomicStartingAt(6) = %+v, %v", tok, ok)
	}
}

func TestAtomic(t *testing.T) {
	tests := []struct {
		tok  Token
		want bool
	}{
		{Token{Type: TypeText, RawText: "hi"}, false},
		{Token{Type: TypeText, RawText: "\r\n"}, true},
		{Token{Type: TypeMarkdown, RawText: "**b**"}, true},
		{Token{Type: TypeEmoji, RawText: ":fire:"}, true},
	}
	for _, tt := range tests {
		if got := tt.tok.Atomic(); got != tt.want {
			t.Errorf("%q Atomic() = %v, want %v", tt.tok.RawText, got, tt.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	toks := []Token{{Type: TypeCustom, RawText: "x", End: 1, Metadata: Metadata{CustomData: map[string]string{"k": "v"}}}}
	c := Clone(toks)
	c[0].Metadata.CustomData["k"] = "changed"
	if toks[0].Metadata.CustomData["k"] != "v" {
		t.Error("Clone shares CustomData")
	}
	if Equal(toks, c) {
		t.Error("Equal ignored CustomData difference")
	}
}

func TestWireRoundTrip(t *testing.T) {
	toks := []Token{
		{
			Type: TypeMention, Content: "Ann", RawText: "@[Ann|42|author]", Start: 6, End: 22,
			Metadata: Metadata{UserID: "42", Username: "Ann", DisplayName: "Ann", FilterType: RoleAuthor},
		},
		{
			Type: TypeImage, Content: "cat", RawText: "{img:https://x.io/c.png|cat||64|32}", Start: 22, End: 57,
			Metadata: Metadata{ImageSrc: "https://x.io/c.png", ImageAlt: "cat", ImageWidth: 64, ImageHeight: 32},
		},
		{
			Type: TypeCustom, Content: "T-1", RawText: "T-1", Start: 57, End: 60,
			Metadata: Metadata{CustomType: "ticket", CustomData: map[string]string{"a.b": "1", "n": "2"}},
		},
	}

	data, err := MarshalSet(toks)
	if err != nil {
		t.Fatalf("MarshalSet: %v", err)
	}
	got, err := UnmarshalSet(data)
	if err != nil {
		t.Fatalf("UnmarshalSet: %v (%s)", err, data)
	}
	if !Equal(got, toks) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v\njson %s", got, toks, data)
	}
}

func TestWireShape(t *testing.T) {
	data, err := Token{Type: TypeHashtag, Content: "go", RawText: "#go", End: 3, Metadata: Metadata{Hashtag: "go"}}.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"hashtag","content":"go","rawText":"#go","start":0,"end":3,"metadata":{"hashtag":"go"}}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	if _, err := UnmarshalSet([]byte(`{`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("truncated: %v", err)
	}
	if _, err := UnmarshalSet([]byte(`{}`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("object: %v", err)
	}
	if _, err := UnmarshalSet([]byte(`[{"type":"blob"}]`)); !errors.Is(err, ErrInvalidType) {
		t.Errorf("bad type: %v", err)
	}
	var tok Token
	if err := tok.UnmarshalJSON([]byte(`[]`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("array as token: %v", err)
	}
}

func TestMetadataEqual(t *testing.T) {
	a := Metadata{CustomType: "ticket", CustomData: map[string]string{"id": "7"}, ImageWidth: 10}
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should be equal")
	}

	b.CustomData["id"] = "8"
	if a.Equal(b) {
		t.Error("differing CustomData values compared equal")
	}

	c := a.Clone()
	c.CustomData["extra"] = "x"
	if a.Equal(c) {
		t.Error("differing CustomData keys compared equal")
	}

	d := a.Clone()
	d.ImageWidth = 11
	if a.Equal(d) {
		t.Error("differing scalar field compared equal")
	}

	if !(Metadata{}).Equal(Metadata{CustomData: map[string]string{}}) {
		t.Error("nil and empty CustomData should be equal")
	}
}
