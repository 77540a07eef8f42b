// internal/wordstore/frequency.go
//
// Reader for corpus frequency lists: one "word count" pair per line,
// whitespace separated. Lines that are not a five-letter word followed by an
// integer are skipped, so a full-vocabulary corpus can be fed in directly.

package wordstore

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ReadFrequencies parses a frequency list. Repeated words keep the last count.
func ReadFrequencies(r io.Reader) (map[words.Word]int64, error) {
	out := make(map[words.Word]int64)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		w, err := words.Parse(fields[0])
		if err != nil {
			continue
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		out[w] = n
	}
	return out, sc.Err()
}
