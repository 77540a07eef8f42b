package feedback

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Filter returns the words of pool that are consistent with guess having
// received pattern p. The result is a new slice in pool order; pool itself is
// never modified. An empty result is valid and left to the caller to handle.
func Filter(pool []words.Word, guess words.Word, p Pattern) []words.Word {
	out := make([]words.Word, 0, len(pool)/4+1)
	for _, candidate := range pool {
		if Matches(candidate, guess, p) {
			out = append(out, candidate)
		}
	}
	return out
}
