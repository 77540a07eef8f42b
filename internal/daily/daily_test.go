package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	assert.Equal(t, "2026-03-01", DateKey(d))
}

func TestPickDeterministic(t *testing.T) {
	sols := words.MustParseList("crane", "slate", "trace", "zesty", "plant")
	d := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	a, err := Pick(d, "salt", sols)
	require.NoError(t, err)
	b, err := Pick(d.Add(3*time.Hour), "salt", sols)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same UTC day")
	assert.Contains(t, sols, a)

	idx := WordIndex(d, "salt", len(sols))
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, len(sols))

	assert.Equal(t, 0, WordIndex(d, "salt", 0))
	_, err = Pick(d, "salt", nil)
	assert.ErrorIs(t, err, ErrNoSolutions)
}
