package entropy

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var crPool = words.MustParseList("crane", "crate", "craze", "crave")

func embeddedSolutions(t *testing.T) []words.Word {
	t.Helper()
	v, err := words.Embedded()
	require.NoError(t, err)
	sols, err := v.Solutions(context.Background())
	require.NoError(t, err)
	return sols
}

func TestEntropyOfSplit(t *testing.T) {
	// CRANE separates itself from the other three: buckets {1, 3}.
	crane := Of(words.MustParse("crane"), crPool)
	assert.InDelta(t, 0.8112781245, crane, 1e-9)

	// VENTS gives a distinct pattern for each candidate.
	vents := Of(words.MustParse("vents"), crPool)
	assert.InDelta(t, 2.0, vents, 1e-12)
	assert.Greater(t, vents, crane)
}

func TestEntropyZeroForSingleCandidate(t *testing.T) {
	pool := words.MustParseList("crane")
	for _, g := range words.MustParseList("crane", "slate", "zesty") {
		assert.Equal(t, 0.0, Of(g, pool), g.String())
	}
	// No discriminating power: every candidate gives the same pattern.
	assert.Equal(t, 0.0, Of(words.MustParse("fjord"), words.MustParseList("beach", "peach")))
}

func TestDistributionBounds(t *testing.T) {
	pool := embeddedSolutions(t)
	for _, g := range pool[:40] {
		d := Distribution(g, pool)
		require.Equal(t, len(pool), d.Total())

		sum := 0.0
		for _, c := range d {
			sum += float64(c) / float64(len(pool))
		}
		assert.InDelta(t, 1.0, sum, 1e-9)

		h := d.Entropy()
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, MaxEntropy)
		assert.LessOrEqual(t, h, math.Log2(float64(d.Buckets()))+1e-9)
	}
}

func TestRankModes(t *testing.T) {
	r := NewRanker(WithWorkers(3))
	ctx := context.Background()
	vocab := append(words.MustParseList("vents"), crPool...)

	best, err := r.Rank(ctx, crPool, vocab, 2, Maximize)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, "vents", best[0].Word.String())
	// Ties broken alphabetically.
	assert.Equal(t, "crane", best[1].Word.String())

	worst, err := r.Rank(ctx, crPool, vocab, 0, Minimize)
	require.NoError(t, err)
	require.Len(t, worst, 5)
	got := make([]string, len(worst))
	for i, g := range worst {
		got[i] = g.Word.String()
	}
	assert.Equal(t, []string{"crane", "crate", "crave", "craze", "vents"}, got)
}

func TestRankDeterministicAcrossWorkers(t *testing.T) {
	pool := embeddedSolutions(t)
	ctx := context.Background()

	one, err := NewRanker(WithWorkers(1)).Rank(ctx, pool, pool, 25, Maximize)
	require.NoError(t, err)
	many, err := NewRanker(WithWorkers(7)).Rank(ctx, pool, pool, 25, Maximize)
	require.NoError(t, err)
	assert.Equal(t, one, many)

	for i := 1; i < len(one); i++ {
		assert.GreaterOrEqual(t, one[i-1].Entropy, one[i].Entropy)
	}
}

func TestRankAnyWorkerCount(t *testing.T) {
	sols := embeddedSolutions(t)
	require.GreaterOrEqual(t, len(sols), 20)
	ctx := context.Background()

	for n := 1; n <= 20; n++ {
		vocab := sols[:n]
		want, err := NewRanker(WithWorkers(1)).Rank(ctx, sols, vocab, 0, Maximize)
		require.NoError(t, err)
		require.Len(t, want, n)
		for workers := 2; workers <= 16; workers++ {
			got, err := NewRanker(WithWorkers(workers)).Rank(ctx, sols, vocab, 0, Maximize)
			require.NoError(t, err, "vocab=%d workers=%d", n, workers)
			assert.Equal(t, want, got, "vocab=%d workers=%d", n, workers)
		}
	}
}

func TestPartitionCoversVocabulary(t *testing.T) {
	for n := 1; n <= 64; n++ {
		for w := 1; w <= 70; w++ {
			chunk := (n + w - 1) / w
			workers := (n + chunk - 1) / chunk
			next := 0
			for i := 0; i < workers; i++ {
				lo, hi := partition(i, chunk, n)
				require.Equal(t, next, lo, "n=%d w=%d", n, w)
				require.Less(t, lo, hi, "n=%d w=%d partition %d is empty", n, w, i)
				next = hi
			}
			require.Equal(t, n, next, "n=%d w=%d", n, w)
		}
	}
}

func TestRankEmptyInputs(t *testing.T) {
	r := NewRanker()
	_, err := r.Rank(context.Background(), nil, crPool, 5, Maximize)
	assert.ErrorIs(t, err, ErrEmptyCandidatePool)

	got, err := r.Rank(context.Background(), crPool, nil, 5, Maximize)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRankCancelled(t *testing.T) {
	pool := embeddedSolutions(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := NewRanker(WithWorkers(2)).Rank(ctx, pool, pool, 10, Maximize)
	assert.ErrorIs(t, err, ErrRankingIncomplete)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}

func TestRankDeadlineKeepsPartialResultsSorted(t *testing.T) {
	pool := embeddedSolutions(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	got, err := NewRanker(WithWorkers(2)).Rank(ctx, pool, pool, 0, Maximize)
	if err != nil {
		assert.ErrorIs(t, err, ErrRankingIncomplete)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.LessOrEqual(t, len(got), len(pool))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Entropy, got[i].Entropy)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Maximize, m)

	m, err = ParseMode("WORST")
	require.NoError(t, err)
	assert.Equal(t, Minimize, m)
	assert.Equal(t, "min", m.String())

	_, err = ParseMode("sideways")
	assert.Error(t, err)
}
