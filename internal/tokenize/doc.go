// Package tokenize converts a plain-text buffer into an ordered token set.
//
// A Pipeline runs an ordered list of Recognizers. Each recognizer sees the
// buffer through a Scope listing the byte ranges no earlier recognizer has
// claimed, and returns candidate tokens. The pipeline accepts candidates
// that lie wholly inside unclaimed ranges, discards the rest, and finally
// fills every remaining gap with plain text tokens, so the result always
// covers the buffer exactly:
//
//	p := tokenize.NewPipeline(tokenize.WithCatalog(emoji.NewStandardCatalog()))
//	toks := p.Tokenize("#idle @[Ann|42|author] hello")
//	// hashtag "idle" [0,5), text " " [5,6),
//	// mention "Ann" [6,22), text " hello" [22,28)
//
// The default order is
//
//	image (600) > hashtag (500) > mention (400) > url (300) > markdown (200) > emoji (100)
//
// Custom recognizers are inserted by Priority. Malformed syntax never fails;
// it simply stays plain text.
//
// A Pipeline is not safe for concurrent mutation, but Tokenize may be called
// concurrently once configuration is complete. The Registry type, used to
// share custom recognizer factories and an emoji catalog between pipelines,
// is safe for concurrent use.
package tokenize
