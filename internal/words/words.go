// internal/words/words.go
//
// Vocabulary management for the solver.
//
// Responsibilities:
//   - Load solution and allowed guess lists from files or fall back to the
//     embedded defaults in the assets package.
//   - Maintain sets for quick lookups (solutions only, solutions ∪ guesses).
//   - Implement Provider, the dictionary interface the rest of the program
//     depends on (the sqlite word store implements it too).
//
// Word lists:
//   - "answers": likely solutions.
//   - "allowed": legal guesses (always includes the answers).
//
// Loading behavior (Load):
//  1. If both paths are set, solutions come from the first and extra guesses
//     from the second.
//  2. If only the allowed path is set, it is used for both.
//  3. Otherwise the embedded assets are used.
//
// Lines that are not 5 alphabetic letters are skipped silently; lists are
// deduplicated and sorted so every consumer sees the same order.

package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"slices"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// ErrNoSolutions is returned when a vocabulary ends up without solutions.
var ErrNoSolutions = errors.New("words: answers list is empty")

// Provider supplies the dictionary the solver works against.
// Solutions may be a strict subset of Words: every solution is a legal guess,
// not every legal guess is a likely solution.
type Provider interface {
	// Words returns every legal guess in a stable order.
	Words(ctx context.Context) ([]Word, error)
	// Solutions returns the likely solutions in a stable order.
	Solutions(ctx context.Context) ([]Word, error)
	// IsAllowed reports whether w is a legal guess.
	IsAllowed(ctx context.Context, w Word) (bool, error)
}

// Vocabulary is an in-memory Provider built from word lists.
type Vocabulary struct {
	solutions   []Word
	allowed     []Word            // solutions ∪ guesses, sorted
	allowedSet  map[Word]struct{} // solutions ∪ guesses
	solutionSet map[Word]struct{} // solutions only
}

var _ Provider = (*Vocabulary)(nil)

// NewVocabulary builds a vocabulary from explicit lists. Solutions are always
// added to the allowed set.
func NewVocabulary(solutions, guesses []Word) *Vocabulary {
	v := &Vocabulary{
		solutions:   dedupeSorted(solutions),
		allowedSet:  make(map[Word]struct{}, len(solutions)+len(guesses)),
		solutionSet: make(map[Word]struct{}, len(solutions)),
	}
	for _, w := range v.solutions {
		v.solutionSet[w] = struct{}{}
		v.allowedSet[w] = struct{}{}
	}
	for _, w := range guesses {
		v.allowedSet[w] = struct{}{}
	}
	v.allowed = make([]Word, 0, len(v.allowedSet))
	for w := range v.allowedSet {
		v.allowed = append(v.allowed, w)
	}
	slices.SortFunc(v.allowed, Compare)
	return v
}

// Load reads word lists from the given paths, or the embedded defaults when
// both are empty. Returns ErrNoSolutions if the solution list ends up empty.
func Load(answersPath, allowedPath string) (*Vocabulary, error) {
	var ansList, allowList []Word

	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		var err error
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case answersPath == "" && allowedPath != "":
		var err error
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fall back to embedded defaults
	default:
		ans, err := assets.AnswersList()
		if err != nil {
			return nil, err
		}
		all, err := assets.AllowedList()
		if err != nil {
			return nil, err
		}
		ansList = normalizeLines(ans)
		allowList = normalizeLines(all)
	}

	if len(ansList) == 0 {
		return nil, ErrNoSolutions
	}
	return NewVocabulary(ansList, allowList), nil
}

// Embedded loads the vocabulary compiled into the binary.
func Embedded() (*Vocabulary, error) { return Load("", "") }

// readWordFile loads one word per line from a file,
// keeping only valid 5-letter alphabetic words.
func readWordFile(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []Word
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if w, err := Parse(line); err == nil {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalizeLines keeps the entries that parse as words.
func normalizeLines(lines []string) []Word {
	out := make([]Word, 0, len(lines))
	for _, line := range lines {
		if w, err := Parse(line); err == nil {
			out = append(out, w)
		}
	}
	return out
}

func dedupeSorted(ws []Word) []Word {
	out := slices.Clone(ws)
	slices.SortFunc(out, Compare)
	return slices.Compact(out)
}

// Words returns a copy of every legal guess, sorted.
func (v *Vocabulary) Words(context.Context) ([]Word, error) {
	return slices.Clone(v.allowed), nil
}

// Solutions returns a copy of the solution list, sorted.
func (v *Vocabulary) Solutions(context.Context) ([]Word, error) {
	return slices.Clone(v.solutions), nil
}

// IsAllowed reports whether w is a legal guess (answers ∪ guesses).
func (v *Vocabulary) IsAllowed(_ context.Context, w Word) (bool, error) {
	_, ok := v.allowedSet[w]
	return ok, nil
}

// IsSolution reports whether w is in the solution list.
func (v *Vocabulary) IsSolution(w Word) bool {
	_, ok := v.solutionSet[w]
	return ok
}

// RandomSolution returns a cryptographically random solution.
func (v *Vocabulary) RandomSolution(context.Context) (Word, error) {
	if len(v.solutions) == 0 {
		return Word{}, ErrNoSolutions
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(v.solutions))))
	if err != nil {
		return Word{}, err
	}
	return v.solutions[nBig.Int64()], nil
}

// Stats returns counts of loaded words: (solutions, allowed).
func (v *Vocabulary) Stats() (solutionCount int, allowedCount int) {
	return len(v.solutions), len(v.allowed)
}
