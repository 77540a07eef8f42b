// internal/words/word.go
//
// Word is the value type every other package passes around: exactly five
// lowercase ASCII letters stored inline, so it is comparable, usable as a map
// key and cheap to copy.

package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length is the number of letters in every word.
const Length = 5

// Word is a validated, lowercase five-letter word.
type Word [Length]byte

var (
	// ErrInvalidWordLength is returned when input is not exactly Length letters.
	ErrInvalidWordLength = errors.New("word must be exactly 5 letters")
	// ErrInvalidWord is returned when input contains anything but letters a–z.
	ErrInvalidWord = errors.New("word must contain only letters a-z")
)

// Parse trims and lowercases s and validates it as a Word.
func Parse(s string) (Word, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if utf8.RuneCountInString(s) != Length {
		return Word{}, fmt.Errorf("%q: %w", s, ErrInvalidWordLength)
	}
	var w Word
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return Word{}, fmt.Errorf("%q: %w", s, ErrInvalidWord)
		}
		w[i] = c
	}
	return w, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseList parses every entry of ss, failing on the first invalid one.
func ParseList(ss []string) ([]Word, error) {
	out := make([]Word, 0, len(ss))
	for _, s := range ss {
		w, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// MustParseList is ParseList for literals.
func MustParseList(ss ...string) []Word {
	out, err := ParseList(ss)
	if err != nil {
		panic(err)
	}
	return out
}

func (w Word) String() string { return string(w[:]) }

// IsZero reports whether w is the zero value (no word).
func (w Word) IsZero() bool { return w == Word{} }

// MarshalText encodes the word as its lowercase string.
func (w Word) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText parses a word with the same rules as Parse.
func (w *Word) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Compare orders words lexicographically. It returns -1, 0 or +1.
func Compare(a, b Word) int {
	for i := 0; i < Length; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Strings converts a word slice to plain strings (for JSON and printing).
func Strings(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
