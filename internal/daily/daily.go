// internal/daily/daily.go
//
// Deterministic "word of the day" selection: the same date and salt always
// pick the same solution, without storing anything.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrNoSolutions is returned by Pick for an empty solution list.
var ErrNoSolutions = errors.New("daily: no solutions to pick from")

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Pick returns the solution for date. solutions must be in a stable order
// (providers return them sorted) for the pick to be reproducible.
func Pick(date time.Time, salt string, solutions []words.Word) (words.Word, error) {
	if len(solutions) == 0 {
		return words.Word{}, ErrNoSolutions
	}
	return solutions[WordIndex(date, salt, len(solutions))], nil
}
