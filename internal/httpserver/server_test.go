package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func testConfig() config.Config {
	return config.Config{
		ClientOrigin: "http://localhost:5173",
		RankTimeout:  10 * time.Second,
		RankWorkers:  2,
	}
}

func newTestServer(t *testing.T, cfg config.Config) (*Server, *store.Memory) {
	t.Helper()
	vocab := words.NewVocabulary(
		words.MustParseList("crane", "crate", "crave", "craze", "plant", "slate"),
		words.MustParseList("vents"),
	)
	cache := store.NewMemory(0)
	s := New(cfg, Deps{
		Words:  vocab,
		Ranker: entropy.NewRanker(entropy.WithWorkers(cfg.RankWorkers)),
		Cache:  cache,
	})
	return s, cache
}

func do(t *testing.T, s *Server, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestDiagnostics(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/debug/words", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answers":6,"allowed":7}`, rec.Body.String())

	rec = do(t, s, http.MethodOptions, "/rank", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wordle_sessions_started_total")
}

func TestFeedbackEndpoint(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodGet, "/feedback?guess=speed&solution=ERASE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"guess":"speed","solution":"erase","pattern":"10110",
		"marks":["yellow","gray","yellow","yellow","gray"],"solved":false
	}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/feedback?guess=spe&solution=erase", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decodeBody[map[string]string](t, rec)["error"])
}

func TestCandidatesEndpoint(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	rec := do(t, s, http.MethodPost, "/candidates", candidatesReq{
		History: []historyEntry{{Guess: "crane", Pattern: "22202"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"playing","round":2,"count":3,"candidates":["crate","crave","craze"]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/candidates", candidatesReq{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, decodeBody[candidatesRes](t, rec).Count)

	rec = do(t, s, http.MethodPost, "/candidates", candidatesReq{
		History: []historyEntry{{Guess: "crane", Pattern: "ggggg"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.StatusWon, decodeBody[candidatesRes](t, rec).Status)
}

func TestCandidatesErrors(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"bad json", "not an object", http.StatusBadRequest, "bad_json"},
		{"bad pattern", candidatesReq{History: []historyEntry{{Guess: "crane", Pattern: "22"}}}, http.StatusBadRequest, "invalid_input"},
		{"bad word", candidatesReq{History: []historyEntry{{Guess: "cr4ne", Pattern: "22222"}}}, http.StatusBadRequest, "invalid_input"},
		{"unknown word", candidatesReq{History: []historyEntry{{Guess: "qqqqq", Pattern: "00000"}}}, http.StatusBadRequest, "not_in_word_list"},
		{"guess after win", candidatesReq{History: []historyEntry{
			{Guess: "crane", Pattern: "22222"},
			{Guess: "slate", Pattern: "00000"},
		}}, http.StatusConflict, "session_finished"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/candidates", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeBody[map[string]string](t, rec)["error"])
		})
	}
}

func TestRankEndpoint(t *testing.T) {
	s, cache := newTestServer(t, testConfig())
	req := rankReq{
		History:    []historyEntry{{Guess: "crane", Pattern: "22202"}},
		Top:        1,
		Vocabulary: "all",
	}

	rec := do(t, s, http.MethodPost, "/rank", req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[rankRes](t, rec)
	assert.False(t, res.Cached)
	assert.Equal(t, "max", res.Mode)
	assert.Equal(t, "all", res.Vocabulary)
	assert.Equal(t, 3, res.PoolSize)
	require.Len(t, res.Ranked, 1)
	// vents splits crate/crave/craze into three singletons.
	assert.Equal(t, "vents", res.Ranked[0].Word.String())
	assert.InDelta(t, 1.5849625007, res.Ranked[0].Entropy, 1e-9)
	assert.Equal(t, 1, cache.Len())

	rec = do(t, s, http.MethodPost, "/rank", req)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decodeBody[rankRes](t, rec)
	assert.True(t, again.Cached)
	assert.Equal(t, res.Ranked, again.Ranked)

	rec = do(t, s, http.MethodPost, "/rank", rankReq{History: req.History, Mode: "min"})
	require.Equal(t, http.StatusOK, rec.Code)
	worst := decodeBody[rankRes](t, rec)
	assert.Equal(t, "pool", worst.Vocabulary)
	require.Len(t, worst.Ranked, 3)
	assert.Equal(t, "crate", worst.Ranked[0].Word.String(), "ties break alphabetically")
	assert.Equal(t, 2, cache.Len())
}

func TestRankErrors(t *testing.T) {
	s, cache := newTestServer(t, testConfig())

	cases := []struct {
		name   string
		body   rankReq
		status int
		code   string
	}{
		{"bad mode", rankReq{Mode: "sideways"}, http.StatusBadRequest, "invalid_input"},
		{"bad vocabulary", rankReq{Vocabulary: "some"}, http.StatusBadRequest, "invalid_input"},
		{"solved", rankReq{History: []historyEntry{{Guess: "crane", Pattern: "22222"}}}, http.StatusConflict, "session_finished"},
		{"empty pool", rankReq{History: []historyEntry{{Guess: "crane", Pattern: "00000"}}}, http.StatusConflict, "empty_pool"},
		{"too long", rankReq{History: []historyEntry{
			{"plant", "00000"}, {"plant", "00000"}, {"plant", "00000"}, {"plant", "00000"},
			{"plant", "00000"}, {"plant", "00000"}, {"plant", "00000"},
		}}, http.StatusBadRequest, "invalid_input"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/rank", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, decodeBody[map[string]string](t, rec)["error"])
		})
	}
	assert.Zero(t, cache.Len())
}

func TestRankRequiresToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "test-secret"
	s, _ := newTestServer(t, cfg)
	body := rankReq{Top: 3}

	rec := do(t, s, http.MethodPost, "/rank", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/rank", body, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, _, err := SignToken([]byte("other-secret"), "alice", time.Hour)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/rank", body, "Authorization", "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, _, err := SignToken([]byte(cfg.JWTSecret), "alice", time.Hour)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/rank", body, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decodeBody[rankRes](t, rec).Ranked, 3)

	// Other analysis routes stay open.
	rec = do(t, s, http.MethodPost, "/candidates", candidatesReq{})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokens(t *testing.T) {
	secret := []byte("s")
	tok, exp, err := SignToken(secret, "bob", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sub, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", sub)

	expired, _, err := SignToken(secret, "bob", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.Error(t, err)

	_, _, err = SignToken(secret, "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestStatusFor(t *testing.T) {
	incomplete := fmt.Errorf("%w: 3 of 9: %w", entropy.ErrRankingIncomplete, errors.New("deadline"))
	status, code := statusFor(incomplete)
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, "ranking_incomplete", code)

	status, _ = statusFor(fmt.Errorf("x: %w", words.ErrNoSolutions))
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, code = statusFor(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.True(t, strings.EqualFold(code, "internal"))
}
