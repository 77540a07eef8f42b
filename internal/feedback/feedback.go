// internal/feedback/feedback.go
//
// Feedback oracle: the per-letter verdict a guess receives against a solution.
//
// Compute implements the standard two-pass Wordle algorithm:
//
// Pass 1:
//   - Mark exact matches Green.
//   - Count the remaining (non-green) solution letters.
//
// Pass 2:
//   - For each non-green guess letter: if there is a remaining count for that
//     letter, mark Yellow and decrement the count; otherwise mark Gray.
//
// This is the only rule that handles repeated letters correctly: a guess with
// two E's against a solution with one E gets exactly one positive mark.
//
// Patterns are fixed-size arrays, so they compare with == and can index a
// 243-slot histogram through Code().

package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Mark is the evaluation of a single guess letter.
type Mark uint8

const (
	Gray   Mark = iota // letter is not in the solution (or all copies are used)
	Yellow             // letter is in the solution at another position
	Green              // letter is in the solution at this position
)

// NumPatterns is the number of distinct patterns: 3^5.
const NumPatterns = 243

// ErrInvalidPattern is returned by ParsePattern for malformed input.
var ErrInvalidPattern = errors.New("pattern must be 5 marks (0/1/2 or b/y/g)")

func (m Mark) String() string {
	switch m {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "gray"
	}
}

// MarshalText encodes a mark as green/yellow/gray.
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Pattern is the ordered list of marks for one guess, one per position.
type Pattern [words.Length]Mark

// AllGreen is the pattern of a correct guess.
var AllGreen = Pattern{Green, Green, Green, Green, Green}

// Compute scores guess against solution.
func Compute(guess, solution words.Word) Pattern {
	var res Pattern

	// Letter counts for the non-green solution positions (a–z).
	var counts [26]int8

	// First pass: mark greens and collect counts for remaining solution letters.
	for i := 0; i < words.Length; i++ {
		if guess[i] == solution[i] {
			res[i] = Green
		} else {
			counts[solution[i]-'a']++
		}
	}

	// Second pass: resolve yellows/grays for non-green tiles.
	for i := 0; i < words.Length; i++ {
		if res[i] == Green {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = Yellow
			counts[j]--
		}
	}
	return res
}

// Matches reports whether candidate, had it been the solution, would have
// produced pattern p for guess.
func Matches(candidate, guess words.Word, p Pattern) bool {
	return Compute(guess, candidate) == p
}

// Code packs the pattern into a dense index in [0, NumPatterns), reading the
// marks as base-3 digits with position 0 most significant.
func (p Pattern) Code() uint8 {
	var c uint8
	for _, m := range p {
		c = c*3 + uint8(m)
	}
	return c
}

// FromCode is the inverse of Pattern.Code.
func FromCode(c uint8) Pattern {
	var p Pattern
	for i := words.Length - 1; i >= 0; i-- {
		p[i] = Mark(c % 3)
		c /= 3
	}
	return p
}

// Solved reports whether every mark is Green.
func (p Pattern) Solved() bool { return p == AllGreen }

// String renders the pattern as digits, e.g. "20110" (0 gray, 1 yellow, 2 green).
func (p Pattern) String() string {
	var b [words.Length]byte
	for i, m := range p {
		b[i] = '0' + byte(m)
	}
	return string(b[:])
}

// MarshalText encodes the pattern in its digit form.
func (p Pattern) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText accepts anything ParsePattern accepts.
func (p *Pattern) UnmarshalText(b []byte) error {
	parsed, err := ParsePattern(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePattern reads a pattern typed by a person or sent by a client.
// Each position is one of:
//
//	2 g G        green
//	1 y Y        yellow
//	0 b B . - x  gray
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	var p Pattern
	if len(s) != words.Length {
		return p, fmt.Errorf("%q: %w", s, ErrInvalidPattern)
	}
	for i := 0; i < words.Length; i++ {
		switch s[i] {
		case '2', 'g', 'G':
			p[i] = Green
		case '1', 'y', 'Y':
			p[i] = Yellow
		case '0', 'b', 'B', '.', '-', 'x', 'X':
			p[i] = Gray
		default:
			return Pattern{}, fmt.Errorf("%q: %w", s, ErrInvalidPattern)
		}
	}
	return p, nil
}
