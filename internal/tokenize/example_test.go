package tokenize_test

import (
	"fmt"

	"github.com/dshills/richinput/internal/tokenize"
)

func ExamplePipeline_Tokenize() {
	p := tokenize.NewPipeline()
	for _, t := range p.Tokenize("hey @[Ana|u1], see #release") {
		fmt.Printf("%-8s [%d,%d) %q\n", t.Type, t.Start, t.End, t.RawText)
	}
	// Output:
	// text     [0,4) "hey "
	// mention  [4,13) "@[Ana|u1]"
	// text     [13,19) ", see "
	// hashtag  [19,27) "#release"
}

func ExampleCreatePill() {
	fmt.Println(tokenize.CreatePill("https://youtube.com/watch?v=1", "embed", ""))
	fmt.Println(tokenize.CreatePill("https://example.com", "modal", "doc-7"))
	// Output:
	// ![embed](https://youtube.com/watch?v=1)
	// ![modal|doc-7](https://example.com)
}
