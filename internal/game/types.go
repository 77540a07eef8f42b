// internal/game/types.go
//
// Core type definitions for the solve session.
// Defines:
//   - Status/State: where a session is in its lifecycle.
//   - GuessRecord: one submitted guess with the feedback it received.
//   - Session: state for a single in-progress or finished solve.

package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// MaxRounds is the number of guesses a session allows.
const MaxRounds = 6

var (
	// ErrSessionTerminated is returned for any guess after Won or Lost.
	ErrSessionTerminated = errors.New("session finished")
	// ErrNotInWordList is returned when a guess fails the session's validator.
	ErrNotInWordList = errors.New("not in word list")
	// ErrEmptyCandidatePool means no word is consistent with the history:
	// inconsistent feedback, or a solution outside the starting pool.
	ErrEmptyCandidatePool = entropy.ErrEmptyCandidatePool
)

// Status is the coarse lifecycle state of a session.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// MarshalText encodes the status as playing/won/lost.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText is the inverse of MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "playing":
		*s = StatusInProgress
	case "won":
		*s = StatusWon
	case "lost":
		*s = StatusLost
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// State is InProgress(Round), Won(Round) or Lost (Round = MaxRounds).
type State struct {
	Status Status `json:"status"`
	Round  int    `json:"round"`
}

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s.Status != StatusInProgress }

// GuessRecord is one entry of a session's history. Immutable once appended.
type GuessRecord struct {
	Guess   words.Word       `json:"guess"`
	Pattern feedback.Pattern `json:"pattern"`
	Round   int              `json:"round"`
}

// Session holds the state of a single solve.
// A Session is owned by one caller; it is not safe for concurrent use.
type Session struct {
	ID string // random hex identifier

	solution   words.Word // hidden solution; zero in assist mode
	assist     bool       // feedback supplied by the caller instead of computed
	pool       []words.Word
	vocabulary []words.Word // guess vocabulary for suggestions; nil means pool
	mode       entropy.Mode
	ranker     *entropy.Ranker
	validate   func(words.Word) bool
	history    []GuessRecord
	state      State
}
