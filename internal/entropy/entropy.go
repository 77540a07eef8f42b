// internal/entropy/entropy.go
//
// Entropy ranking of candidate guesses.
//
// For a guess g and a pool of remaining candidates, every candidate is
// treated as the possible solution and the feedback pattern g would receive
// against it is tallied into one of 243 buckets. The Shannon entropy of that
// bucket distribution is the expected information (in bits) g reveals:
//
//	H(g) = -Σ p·log2(p),  p = count/|pool|, empty buckets skipped
//
// Rank scores a whole vocabulary against the pool in parallel and returns the
// top N guesses by highest (Maximize) or lowest (Minimize) entropy, with ties
// broken by lexicographic word order so results are reproducible.

package entropy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// MaxEntropy is the upper bound of H(g): log2 of the number of patterns.
var MaxEntropy = math.Log2(feedback.NumPatterns)

var (
	// ErrEmptyCandidatePool is returned when ranking against an empty pool.
	ErrEmptyCandidatePool = errors.New("candidate pool is empty")
	// ErrRankingIncomplete wraps a context error when ranking stopped early.
	// The accompanying results rank only the guesses evaluated before the stop.
	ErrRankingIncomplete = errors.New("ranking incomplete")
)

// Mode selects the ranking direction.
type Mode int

const (
	Maximize Mode = iota // most informative guesses first
	Minimize             // least informative guesses first (adversarial)
)

func (m Mode) String() string {
	if m == Minimize {
		return "min"
	}
	return "max"
}

// ParseMode accepts max/maximize/best and min/minimize/worst. Empty means Maximize.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max", "maximize", "best":
		return Maximize, nil
	case "min", "minimize", "worst":
		return Minimize, nil
	}
	return Maximize, fmt.Errorf("unknown ranking mode %q", s)
}

// RankedGuess is a guess with the entropy it induces over the pool.
type RankedGuess struct {
	Word    words.Word `json:"word"`
	Entropy float64    `json:"entropy"`
}

// Tally counts pool candidates per feedback pattern, indexed by Pattern.Code.
type Tally [feedback.NumPatterns]int

// Distribution tallies the patterns guess receives against every pool word.
func Distribution(guess words.Word, pool []words.Word) Tally {
	var t Tally
	t.add(guess, pool)
	return t
}

func (t *Tally) add(guess words.Word, pool []words.Word) {
	for _, solution := range pool {
		t[feedback.Compute(guess, solution).Code()]++
	}
}

// Total is the number of candidates tallied.
func (t *Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Buckets is the number of non-empty patterns.
func (t *Tally) Buckets() int {
	n := 0
	for _, c := range t {
		if c > 0 {
			n++
		}
	}
	return n
}

// Entropy returns the Shannon entropy in bits of the tallied distribution.
// The value is rounded to 1e-12 so equal splits compare equal regardless of
// bucket summation order.
func (t *Tally) Entropy() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	n := float64(total)
	h := 0.0
	for _, c := range t {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	h = math.Round(h*1e12) / 1e12
	if h < 0 {
		return 0
	}
	return h
}

// Of computes H(guess) over pool.
func Of(guess words.Word, pool []words.Word) float64 {
	t := Distribution(guess, pool)
	return t.Entropy()
}

// Ranker scores vocabularies against candidate pools.
// It holds no per-call state and is safe for concurrent use.
type Ranker struct {
	workers int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWorkers bounds the number of goroutines used per Rank call.
// Values < 1 mean runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		r.workers = n
	}
}

// NewRanker builds a Ranker.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Workers reports the configured parallelism.
func (r *Ranker) Workers() int { return r.workers }

// partition returns the vocabulary index range of worker w.
func partition(w, chunk, n int) (lo, hi int) {
	return min(w*chunk, n), min((w+1)*chunk, n)
}

// Rank computes the entropy of every vocabulary word over pool and returns
// the best topN in the requested direction (topN <= 0 returns all).
//
// The vocabulary is split into contiguous partitions, one per worker, each
// writing only its own index range. pool and vocabulary are read-only here.
// If ctx ends early the ranking of the guesses evaluated so far is returned
// together with an error wrapping ErrRankingIncomplete and ctx.Err().
func (r *Ranker) Rank(ctx context.Context, pool, vocabulary []words.Word, topN int, mode Mode) ([]RankedGuess, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyCandidatePool
	}
	n := len(vocabulary)
	if n == 0 {
		return []RankedGuess{}, nil
	}

	start := time.Now()
	chunk := (n + r.workers - 1) / r.workers
	// Every partition is non-empty: workers*chunk >= n > (workers-1)*chunk.
	workers := (n + chunk - 1) / chunk
	scores := make([]RankedGuess, n)
	done := make([]int, workers) // evaluated count per partition

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := partition(w, chunk, n)
		g.Go(func() error {
			var t Tally
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				t = Tally{}
				t.add(vocabulary[i], pool)
				scores[i] = RankedGuess{Word: vocabulary[i], Entropy: t.Entropy()}
				done[w]++
			}
			return nil
		})
	}
	waitErr := g.Wait()

	ranked := make([]RankedGuess, 0, n)
	for w := 0; w < workers; w++ {
		lo, _ := partition(w, chunk, n)
		ranked = append(ranked, scores[lo:lo+done[w]]...)
	}
	evaluated := len(ranked)
	sortRanked(ranked, mode)
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	elapsed := time.Since(start)
	rankDuration.WithLabelValues(mode.String()).Observe(elapsed.Seconds())
	guessesEvaluated.WithLabelValues(mode.String()).Add(float64(evaluated))
	log.Debug().
		Str("mode", mode.String()).
		Int("pool", len(pool)).
		Int("vocabulary", n).
		Int("evaluated", evaluated).
		Int("workers", workers).
		Dur("elapsed", elapsed).
		Msg("ranked guesses")

	if waitErr != nil {
		rankIncomplete.WithLabelValues(mode.String()).Inc()
		return ranked, fmt.Errorf("%w: %d of %d guesses evaluated: %w", ErrRankingIncomplete, evaluated, n, waitErr)
	}
	return ranked, nil
}

// sortRanked orders by entropy in the mode's direction, then by word.
func sortRanked(rs []RankedGuess, mode Mode) {
	slices.SortFunc(rs, func(a, b RankedGuess) int {
		if a.Entropy != b.Entropy {
			if (a.Entropy > b.Entropy) == (mode == Maximize) {
				return -1
			}
			return 1
		}
		return words.Compare(a.Word, b.Word)
	})
}
