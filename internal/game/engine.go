// internal/game/engine.go
//
// Solve session state machine.
// Responsibilities:
//   - Create sessions against a hidden solution (or in assist mode, where the
//     caller reports feedback observed elsewhere).
//   - Validate and apply guesses, scoring them with the feedback oracle.
//   - Shrink the candidate pool after every miss.
//   - Track state transitions: playing → won/lost.
//   - Recommend next guesses through the entropy ranker.
//
// Notes:
//   - The pool and history are owned by the session; accessors return copies.
//   - Suggestions rank over the pool by default. WithVocabulary widens the
//     guess vocabulary to a full dictionary (eliminated words can still be
//     informative guesses).
//   - randomID() is a compact hex identifier for correlating sessions in logs.
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"slices"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrNoSolution is returned by Submit on an assist session, which has no
// hidden solution to score against. Use SubmitFeedback instead.
var ErrNoSolution = errors.New("session has no hidden solution")

// ErrHasSolution is returned by SubmitFeedback on a session with a hidden
// solution; its feedback is always computed.
var ErrHasSolution = errors.New("session scores guesses against its own solution")

// Option configures a Session.
type Option func(*Session)

// WithVocabulary sets the guess vocabulary used by Suggestions.
func WithVocabulary(vocab []words.Word) Option {
	return func(s *Session) {
		s.vocabulary = vocab
	}
}

// WithMode sets the ranking direction of Suggestions. Minimize is the
// adversarial variant.
func WithMode(m entropy.Mode) Option {
	return func(s *Session) {
		s.mode = m
	}
}

// WithRanker sets the ranker used by Suggestions.
func WithRanker(r *entropy.Ranker) Option {
	return func(s *Session) {
		s.ranker = r
	}
}

// WithGuessValidator rejects guesses for which allowed returns false with
// ErrNotInWordList.
func WithGuessValidator(allowed func(words.Word) bool) Option {
	return func(s *Session) {
		s.validate = allowed
	}
}

// New starts a session against solution with the given starting pool.
// The pool is copied; the caller keeps ownership of its slice.
func New(solution string, pool []words.Word, opts ...Option) (*Session, error) {
	sol, err := words.Parse(solution)
	if err != nil {
		return nil, err
	}
	s := newSession(pool, opts)
	s.solution = sol
	return s, nil
}

// NewAssist starts a session without a hidden solution: feedback for each
// guess comes from the caller via SubmitFeedback.
func NewAssist(pool []words.Word, opts ...Option) *Session {
	s := newSession(pool, opts)
	s.assist = true
	return s
}

func newSession(pool []words.Word, opts []Option) *Session {
	s := &Session{
		ID:    randomID(),
		pool:  slices.Clone(pool),
		state: State{Status: StatusInProgress, Round: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ranker == nil {
		s.ranker = entropy.NewRanker()
	}
	sessionsStarted.Inc()
	return s
}

// Submit validates and scores a guess against the hidden solution, mutating
// the session. Validation rules, checked before any mutation:
//   - Session must be in progress (ErrSessionTerminated).
//   - Guess must be exactly 5 letters a–z (words.ErrInvalidWordLength,
//     words.ErrInvalidWord).
//   - Guess must pass the validator, if any (ErrNotInWordList).
func (s *Session) Submit(raw string) (GuessRecord, error) {
	if s.assist {
		return GuessRecord{}, ErrNoSolution
	}
	guess, err := s.checkGuess(raw)
	if err != nil {
		return GuessRecord{}, err
	}
	return s.apply(guess, feedback.Compute(guess, s.solution)), nil
}

// SubmitFeedback records a guess and the pattern it received in an external
// game. Same validation as Submit.
func (s *Session) SubmitFeedback(raw string, p feedback.Pattern) (GuessRecord, error) {
	if !s.assist {
		return GuessRecord{}, ErrHasSolution
	}
	guess, err := s.checkGuess(raw)
	if err != nil {
		return GuessRecord{}, err
	}
	return s.apply(guess, p), nil
}

func (s *Session) checkGuess(raw string) (words.Word, error) {
	if s.state.Terminal() {
		return words.Word{}, ErrSessionTerminated
	}
	guess, err := words.Parse(raw)
	if err != nil {
		return words.Word{}, err
	}
	if s.validate != nil && !s.validate(guess) {
		return words.Word{}, ErrNotInWordList
	}
	return guess, nil
}

// apply appends the record and advances the state machine.
//   - All green → Won(round).
//   - Otherwise the pool is filtered; round MaxRounds → Lost, else round+1.
func (s *Session) apply(guess words.Word, p feedback.Pattern) GuessRecord {
	rec := GuessRecord{Guess: guess, Pattern: p, Round: s.state.Round}
	s.history = append(s.history, rec)

	if p.Solved() {
		s.state.Status = StatusWon
		sessionsFinished.WithLabelValues(StatusWon.String()).Inc()
		return rec
	}

	s.pool = feedback.Filter(s.pool, guess, p)
	if s.state.Round >= MaxRounds {
		s.state.Status = StatusLost
		sessionsFinished.WithLabelValues(StatusLost.String()).Inc()
		return rec
	}
	s.state.Round++
	return rec
}

// Suggestions ranks the next guesses in the session's mode. Valid only while
// in progress with a non-empty pool.
func (s *Session) Suggestions(ctx context.Context, n int) ([]entropy.RankedGuess, error) {
	if s.state.Terminal() {
		return nil, ErrSessionTerminated
	}
	if len(s.pool) == 0 {
		return nil, ErrEmptyCandidatePool
	}
	vocab := s.vocabulary
	if vocab == nil {
		vocab = s.pool
	}
	return s.ranker.Rank(ctx, s.pool, vocab, n, s.mode)
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Rounds is the number of guesses submitted so far; on Won/Lost it is the
// terminal round count handed to scoring.
func (s *Session) Rounds() int { return len(s.history) }

// Pool returns a copy of the remaining candidates.
func (s *Session) Pool() []words.Word { return slices.Clone(s.pool) }

// PoolSize returns the number of remaining candidates.
func (s *Session) PoolSize() int { return len(s.pool) }

// History returns a copy of the guess records, oldest first.
func (s *Session) History() []GuessRecord { return slices.Clone(s.history) }

// Mode returns the ranking direction used by Suggestions.
func (s *Session) Mode() entropy.Mode { return s.mode }

// Solution reveals the hidden solution; ok is false in assist mode.
func (s *Session) Solution() (w words.Word, ok bool) {
	return s.solution, !s.assist
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
