package emoji

import "github.com/dshills/richinput/internal/fuzzy"

// Suggestion is a ranked emoji for shortcode autocomplete.
type Suggestion struct {
	Emoji Emoji
	// Key is the id or alias that matched.
	Key   string
	Score int
}

// Suggest ranks emoji whose id or aliases fuzzily match prefix, which is
// the partial shortcode typed after ':'. Each emoji appears once, under
// its best-scoring key. An empty prefix yields nothing.
func (c *Catalog) Suggest(prefix string, limit int) []Suggestion {
	if prefix == "" {
		return nil
	}

	var cands []fuzzy.Candidate[int]
	all := c.All()
	for i, e := range all {
		cands = append(cands, fuzzy.Candidate[int]{Key: e.ID, Value: i})
		for _, a := range e.Aliases {
			if a != e.ID {
				cands = append(cands, fuzzy.Candidate[int]{Key: a, Value: i})
			}
		}
	}

	ranked := fuzzy.Rank(fuzzy.NewRanker(fuzzy.DefaultWeights()), prefix, cands, 0)
	seen := make(map[int]bool)
	var out []Suggestion
	for _, m := range ranked {
		if seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		out = append(out, Suggestion{Emoji: all[m.Value], Key: m.Key, Score: m.Score})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
