package wordstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "words.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "words.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.ImportWords(ctx, words.MustParseList("crane"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	total, _, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestImportAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	n, err := s.ImportWords(ctx, words.MustParseList("slate", "crane", "zesty", "crane"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.ImportWords(ctx, words.MustParseList("crane", "xenon"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := s.Words(ctx)
	require.NoError(t, err)
	assert.Equal(t, words.MustParseList("crane", "slate", "xenon", "zesty"), all)

	ok, err := s.IsAllowed(ctx, words.MustParse("xenon"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.IsAllowed(ctx, words.MustParse("qqqqq"))
	require.NoError(t, err)
	assert.False(t, ok)

	// No frequency data yet: nothing qualifies as a solution.
	_, err = s.Solutions(ctx)
	assert.ErrorIs(t, err, words.ErrNoSolutions)
	_, err = s.RandomSolution(ctx)
	assert.ErrorIs(t, err, words.ErrNoSolutions)
}

func TestApplyFrequencies(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	_, err := s.ImportWords(ctx, words.MustParseList("about", "crane", "zesty", "xenon"))
	require.NoError(t, err)

	matched, err := s.ApplyFrequencies(ctx, map[words.Word]int64{
		words.MustParse("about"): 1_000_000,
		words.MustParse("crane"): 5_000,
		words.MustParse("zesty"): 25,
		words.MustParse("lemon"): 9_999, // not stored
	})
	require.NoError(t, err)
	assert.Equal(t, 3, matched)

	sols, err := s.Solutions(ctx)
	require.NoError(t, err)
	assert.Equal(t, words.MustParseList("about", "crane", "zesty"), sols)

	total, solutions, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, 3, solutions)

	common, err := s.BaseScore(ctx, words.MustParse("about"))
	require.NoError(t, err)
	rare, err := s.BaseScore(ctx, words.MustParse("zesty"))
	require.NoError(t, err)
	unknown, err := s.BaseScore(ctx, words.MustParse("xenon"))
	require.NoError(t, err)
	missing, err := s.BaseScore(ctx, words.MustParse("lemon"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, common)
	assert.Equal(t, 10.0, rare)
	assert.Equal(t, scoring.MaxBaseScore, unknown)
	assert.Equal(t, scoring.MaxBaseScore, missing)

	got, err := s.RandomSolution(ctx)
	require.NoError(t, err)
	assert.Contains(t, sols, got)
}

func TestMinFrequencyOption(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, WithMinFrequency(0))
	_, err := s.ImportWords(ctx, words.MustParseList("crane", "slate"))
	require.NoError(t, err)

	sols, err := s.Solutions(ctx)
	require.NoError(t, err)
	assert.Len(t, sols, 2)
}

func TestApplyFrequenciesNoMatches(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	_, err := s.ImportWords(ctx, words.MustParseList("crane"))
	require.NoError(t, err)

	matched, err := s.ApplyFrequencies(ctx, map[words.Word]int64{words.MustParse("slate"): 40})
	require.NoError(t, err)
	assert.Zero(t, matched)

	score, err := s.BaseScore(ctx, words.MustParse("crane"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, score, "left at the column default")
}

func TestReadFrequencies(t *testing.T) {
	in := strings.NewReader(`about 1000
the 99999
Crane	250
zesty notanumber
slate
café! 12
crane 300
`)
	got, err := ReadFrequencies(in)
	require.NoError(t, err)
	assert.Equal(t, map[words.Word]int64{
		words.MustParse("about"): 1000,
		words.MustParse("crane"): 300,
	}, got)
}
