// Package fuzzy ranks short identifiers, such as emoji shortcodes, against a
// partially typed query using subsequence matching.
package fuzzy

import (
	"sort"
	"unicode"

	"golang.org/x/text/cases"
)

// Candidate is one rankable identifier. Key is matched; Value is carried
// through to the result untouched.
type Candidate[T any] struct {
	Key   string
	Value T
}

// Match is a ranked candidate.
type Match[T any] struct {
	Candidate[T]
	Score int
	// Positions holds the rune offsets of the matched query characters.
	Positions []int
}

// Weights tunes the scoring. Shortcodes are short and underscore separated,
// so boundary and prefix hits dominate.
type Weights struct {
	Base        int
	Consecutive int
	Boundary    int
	Prefix      int
	ExactPrefix int
	Exact       int
	Gap         int
	Leading     int
	// ShortBonus rewards keys shorter than this many runes.
	ShortBonus int
}

// DefaultWeights returns the weights used for shortcode suggestions.
func DefaultWeights() Weights {
	return Weights{
		Base:        100,
		Consecutive: 20,
		Boundary:    15,
		Prefix:      25,
		ExactPrefix: 50,
		Exact:       100,
		Gap:         2,
		Leading:     1,
		ShortBonus:  20,
	}
}

// Ranker scores candidates. The zero value is not usable; call NewRanker.
type Ranker struct {
	weights Weights
	fold    cases.Caser
}

// NewRanker creates a case-insensitive ranker.
func NewRanker(w Weights) *Ranker {
	return &Ranker{weights: w, fold: cases.Fold()}
}

// Rank returns the candidates matching query, best first. Ties are broken
// by key so results are deterministic. limit <= 0 means no limit. An empty
// query matches everything with score zero in input order.
func Rank[T any](r *Ranker, query string, candidates []Candidate[T], limit int) []Match[T] {
	q := []rune(r.fold.String(query))
	var out []Match[T]
	if len(q) == 0 {
		for _, c := range candidates {
			out = append(out, Match[T]{Candidate: c})
		}
		return truncate(out, limit)
	}

	for _, c := range candidates {
		score, pos := r.Score(q, c.Key)
		if score > 0 {
			out = append(out, Match[T]{Candidate: c, Score: score, Positions: pos})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Key < out[j].Key
	})
	return truncate(out, limit)
}

func truncate[T any](m []Match[T], limit int) []Match[T] {
	if limit > 0 && len(m) > limit {
		return m[:limit]
	}
	return m
}

// Score matches the folded query runes against key. It returns zero when
// the query is not a subsequence of the key.
func (r *Ranker) Score(query []rune, key string) (int, []int) {
	original := []rune(key)
	folded := []rune(r.fold.String(key))
	if len(folded) != len(original) {
		// Folding changed the rune count, so boundaries are read from the
		// folded form.
		original = folded
	}
	if len(query) == 0 || len(folded) == 0 {
		return 0, nil
	}

	pos := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(folded) && qi < len(query); i++ {
		if folded[i] == query[qi] {
			pos = append(pos, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil
	}

	w := r.weights
	score := w.Base
	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			score += w.Consecutive
		}
	}
	for _, p := range pos {
		if boundary(original, p) {
			score += w.Boundary
		}
	}
	if pos[0] == 0 {
		score += w.Prefix
	} else {
		score -= pos[0] * w.Leading
	}
	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		score -= gap * w.Gap
	}
	if n := len(folded); n < w.ShortBonus {
		score += w.ShortBonus - n
	}
	if hasPrefix(folded, query) {
		score += w.ExactPrefix
		if len(folded) == len(query) {
			score += w.Exact
		}
	}
	if score < 1 {
		score = 1
	}
	return score, pos
}

func hasPrefix(s, prefix []rune) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

func boundary(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	if i >= len(runes) {
		return false
	}
	prev, cur := runes[i-1], runes[i]
	if prev == '_' || prev == '-' || unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
