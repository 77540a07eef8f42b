// internal/scoring/scoring.go
//
// Scoring for finished games.
//
//	final score = ceil(word base score × attempt multiplier)
//
//   - The base score (1.0 common … 10.0 rare) comes from word frequency, see
//     FrequencyScore. The word store keeps one per word.
//   - The attempt multiplier is a symmetric S-curve: bonus for 1–2 guesses,
//     flat around 3–4, penalty for 5–6.

package scoring

import "math"

// MaxBaseScore is assigned to words with no frequency data.
const MaxBaseScore = 10.0

// multipliers drop 30 → 18 → 4 → 18 → 30 points, mirrored around 3–4.
var multipliers = [...]float64{
	1: 1.50,
	2: 1.20,
	3: 1.02,
	4: 0.98,
	5: 0.80,
	6: 0.50,
}

// AttemptMultiplier returns the multiplier for a game solved in attempts
// guesses. attempts is clamped to [1, 6].
func AttemptMultiplier(attempts int) float64 {
	attempts = max(1, min(attempts, len(multipliers)-1))
	return multipliers[attempts]
}

// FinalScore returns ceil(base × AttemptMultiplier(attempts)).
func FinalScore(base float64, attempts int) int {
	// Rounded before ceil so 5.0×1.20 stays 6 rather than 7.
	raw := math.Round(base*AttemptMultiplier(attempts)*1e9) / 1e9
	return int(math.Ceil(raw))
}

// FrequencyScore maps a corpus frequency to a base score in [1, 10] on a log
// scale: the most frequent word in [minFreq, maxFreq] scores 1, the least
// frequent 10. Unknown words (freq <= 0) score MaxBaseScore. The result is
// rounded to one decimal.
func FrequencyScore(freq, minFreq, maxFreq int64) float64 {
	if freq <= 0 {
		return MaxBaseScore
	}
	logFreq := math.Log10(float64(freq) + 1)
	logMax := math.Log10(float64(maxFreq) + 1)
	logMin := math.Log10(float64(minFreq) + 1)

	normalized := 0.5
	if logMax != logMin {
		normalized = 1 - (logFreq-logMin)/(logMax-logMin)
	}
	normalized = max(0, min(normalized, 1))

	score := 1 + normalized*9
	return math.Round(score*10) / 10
}

// Row is one line of the multiplier table.
type Row struct {
	Attempts   int     `json:"attempts"`
	Multiplier float64 `json:"multiplier"`
}

// Table returns the multiplier for every attempt count, 1 through 6.
func Table() []Row {
	out := make([]Row, 0, len(multipliers)-1)
	for a := 1; a < len(multipliers); a++ {
		out = append(out, Row{Attempts: a, Multiplier: multipliers[a]})
	}
	return out
}
