package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttemptMultiplier(t *testing.T) {
	assert.Equal(t, 1.50, AttemptMultiplier(1))
	assert.Equal(t, 0.98, AttemptMultiplier(4))
	assert.Equal(t, 0.50, AttemptMultiplier(6))

	// Clamped.
	assert.Equal(t, 1.50, AttemptMultiplier(0))
	assert.Equal(t, 0.50, AttemptMultiplier(9))

	rows := Table()
	assert.Len(t, rows, 6)
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i].Multiplier, rows[i-1].Multiplier)
	}
}

func TestFinalScore(t *testing.T) {
	assert.Equal(t, 8, FinalScore(5.0, 1))  // 7.5
	assert.Equal(t, 6, FinalScore(5.0, 2))  // 6.0
	assert.Equal(t, 6, FinalScore(5.0, 3))  // 5.1
	assert.Equal(t, 5, FinalScore(5.0, 4))  // 4.9
	assert.Equal(t, 3, FinalScore(5.0, 6))  // 2.5
	assert.Equal(t, 15, FinalScore(10, 1))  // 15
	assert.Equal(t, 3, FinalScore(2.3, 3))  // 2.346
	assert.Equal(t, 8, FinalScore(7.8, 4))  // 7.644
}

func TestFrequencyScore(t *testing.T) {
	assert.Equal(t, MaxBaseScore, FrequencyScore(0, 10, 1000))
	assert.Equal(t, 1.0, FrequencyScore(1000, 10, 1000))
	assert.Equal(t, 10.0, FrequencyScore(10, 10, 1000))
	assert.Equal(t, 5.5, FrequencyScore(50, 50, 50))

	mid := FrequencyScore(100, 10, 1000)
	assert.Greater(t, mid, 1.0)
	assert.Less(t, mid, 10.0)
	// Rarer words score higher.
	assert.Greater(t, FrequencyScore(20, 10, 1000), FrequencyScore(500, 10, 1000))
}
