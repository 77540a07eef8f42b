package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const (
	defaultTop   = 10
	maxTop       = 500
	maxBodyBytes = 1 << 20
)

// errBadRequest marks request errors that are not one of the domain sentinels.
var errBadRequest = errors.New("bad request")

// historyEntry is one guess of an externally played game.
type historyEntry struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"` // e.g. "20110" or "gybbg"
}

type candidatesReq struct {
	History []historyEntry `json:"history"`
}

type candidatesRes struct {
	Status     game.Status  `json:"status"`
	Round      int          `json:"round"`
	Count      int          `json:"count"`
	Candidates []words.Word `json:"candidates"`
}

type rankReq struct {
	History    []historyEntry `json:"history"`
	Top        int            `json:"top"`
	Mode       string         `json:"mode"`       // "max" | "min"
	Vocabulary string         `json:"vocabulary"` // "pool" | "all"
}

type rankRes struct {
	Mode       string                `json:"mode"`
	Vocabulary string                `json:"vocabulary"`
	PoolSize   int                   `json:"poolSize"`
	Cached     bool                  `json:"cached"`
	Ranked     []entropy.RankedGuess `json:"ranked"`
}

type feedbackRes struct {
	Guess    words.Word       `json:"guess"`
	Solution words.Word       `json:"solution"`
	Pattern  feedback.Pattern `json:"pattern"`
	Marks    []string         `json:"marks"`
	Solved   bool             `json:"solved"`
}

// handleWordStats reports dictionary sizes.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	all, err := s.words.Words(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sols, err := s.words.Solutions(r.Context())
	if err != nil && !errors.Is(err, words.ErrNoSolutions) {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"answers": len(sols), "allowed": len(all)})
}

// handleFeedback scores ?guess= against ?solution=.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	guess, err := words.Parse(r.URL.Query().Get("guess"))
	if err != nil {
		s.fail(w, r, fmt.Errorf("guess: %w", err))
		return
	}
	solution, err := words.Parse(r.URL.Query().Get("solution"))
	if err != nil {
		s.fail(w, r, fmt.Errorf("solution: %w", err))
		return
	}
	p := feedback.Compute(guess, solution)
	marks := make([]string, len(p))
	for i, m := range p {
		marks[i] = m.String()
	}
	writeJSON(w, http.StatusOK, feedbackRes{
		Guess:    guess,
		Solution: solution,
		Pattern:  p,
		Marks:    marks,
		Solved:   p.Solved(),
	})
}

// handleCandidates replays a history and returns the remaining pool.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesReq
	if !decode(w, r, &req) {
		return
	}
	sess, err := s.replay(r.Context(), req.History)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st := sess.State()
	writeJSON(w, http.StatusOK, candidatesRes{
		Status:     st.Status,
		Round:      st.Round,
		Count:      sess.PoolSize(),
		Candidates: sess.Pool(),
	})
}

// handleRank replays a history and ranks the next guesses.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankReq
	if !decode(w, r, &req) {
		return
	}
	mode, err := entropy.ParseMode(req.Mode)
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	top := req.Top
	if top <= 0 {
		top = defaultTop
	}
	top = min(top, maxTop)

	opts := []game.Option{game.WithMode(mode), game.WithRanker(s.ranker)}
	var vocab []words.Word
	vocabName := "pool"
	switch req.Vocabulary {
	case "", "pool":
	case "all":
		vocabName = "all"
		if vocab, err = s.words.Words(r.Context()); err != nil {
			s.fail(w, r, err)
			return
		}
		opts = append(opts, game.WithVocabulary(vocab))
	default:
		s.fail(w, r, fmt.Errorf("%w: unknown vocabulary %q", errBadRequest, req.Vocabulary))
		return
	}

	sess, err := s.replay(r.Context(), req.History, opts...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if sess.State().Terminal() {
		s.fail(w, r, game.ErrSessionTerminated)
		return
	}
	pool := sess.Pool()
	if len(pool) == 0 {
		s.fail(w, r, game.ErrEmptyCandidatePool)
		return
	}
	if vocab == nil {
		vocab = pool
	}

	res := rankRes{Mode: mode.String(), Vocabulary: vocabName, PoolSize: len(pool)}
	key := store.RankKey(pool, vocab, mode, top)
	if s.cache != nil {
		ranked, ok, err := s.cache.Get(r.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rank cache get")
		}
		if ok {
			res.Cached, res.Ranked = true, ranked
			writeJSON(w, http.StatusOK, res)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.rankTimeout)
	defer cancel()
	ranked, err := sess.Suggestions(ctx, top)
	if errors.Is(err, entropy.ErrRankingIncomplete) {
		log.Warn().Err(err).Str("subject", subject(r)).Int("pool", len(pool)).Msg("ranking incomplete")
		writeJSON(w, http.StatusGatewayTimeout, map[string]any{
			"error":   "ranking_incomplete",
			"message": err.Error(),
			"partial": ranked,
		})
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(r.Context(), key, ranked); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rank cache put")
		}
	}
	res.Ranked = ranked
	writeJSON(w, http.StatusOK, res)
}

// replay builds an assist session from the provider's solutions and feeds it
// the reported history in order.
func (s *Server) replay(ctx context.Context, history []historyEntry, opts ...game.Option) (*game.Session, error) {
	if len(history) > game.MaxRounds {
		return nil, fmt.Errorf("%w: history has %d guesses, max %d", errBadRequest, len(history), game.MaxRounds)
	}
	pool, err := s.words.Solutions(ctx)
	if err != nil {
		return nil, err
	}
	opts = append(opts, game.WithGuessValidator(func(w words.Word) bool {
		ok, err := s.words.IsAllowed(ctx, w)
		if err != nil {
			log.Warn().Err(err).Str("word", w.String()).Msg("word lookup")
		}
		return ok
	}))
	sess := game.NewAssist(pool, opts...)
	for i, h := range history {
		p, err := feedback.ParsePattern(h.Pattern)
		if err != nil {
			return nil, fmt.Errorf("history[%d]: %w", i, err)
		}
		if _, err := sess.SubmitFeedback(h.Guess, p); err != nil {
			return nil, fmt.Errorf("history[%d]: %w", i, err)
		}
	}
	return sess, nil
}

// statusFor maps domain errors to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, words.ErrInvalidWord),
		errors.Is(err, words.ErrInvalidWordLength),
		errors.Is(err, feedback.ErrInvalidPattern):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, game.ErrNotInWordList):
		return http.StatusBadRequest, "not_in_word_list"
	case errors.Is(err, game.ErrSessionTerminated):
		return http.StatusConflict, "session_finished"
	case errors.Is(err, entropy.ErrEmptyCandidatePool):
		return http.StatusConflict, "empty_pool"
	case errors.Is(err, entropy.ErrRankingIncomplete):
		return http.StatusGatewayTimeout, "ranking_incomplete"
	case errors.Is(err, words.ErrNoSolutions):
		return http.StatusServiceUnavailable, "no_solutions"
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": code, "message": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
