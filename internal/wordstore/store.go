// internal/wordstore/store.go
//
// SQLite-backed dictionary implementing words.Provider.
//
// Every row is a legal guess. Solutions are the rows whose corpus frequency
// is at least the configured minimum, so rare words stay guessable but are
// never picked as answers. Each word also carries its base score for the
// scoring package.

package wordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultMinFrequency is the frequency a word needs to count as a solution.
const DefaultMinFrequency = 20

// Store is a word dictionary persisted in SQLite.
type Store struct {
	db           *sql.DB
	minFrequency int64
}

var _ words.Provider = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithMinFrequency sets the frequency threshold for solutions.
func WithMinFrequency(n int64) Option {
	return func(s *Store) {
		s.minFrequency = n
	}
}

// Open opens the database at dsn and applies migrations.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{db: db, minFrequency: DefaultMinFrequency}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Words returns every stored word, alphabetically.
func (s *Store) Words(ctx context.Context) ([]words.Word, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, err
	}
	return scanWords(rows)
}

// Solutions returns the words at or above the frequency threshold,
// alphabetically. Returns words.ErrNoSolutions if there are none.
func (s *Store) Solutions(ctx context.Context) ([]words.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words WHERE frequency >= ? ORDER BY word`, s.minFrequency)
	if err != nil {
		return nil, err
	}
	out, err := scanWords(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("min frequency %d: %w", s.minFrequency, words.ErrNoSolutions)
	}
	return out, nil
}

// IsAllowed reports whether w is stored (any frequency is a legal guess).
func (s *Store) IsAllowed(ctx context.Context, w words.Word) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM words WHERE word=?`, w.String(),
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// RandomSolution picks a random word at or above the frequency threshold.
func (s *Store) RandomSolution(ctx context.Context) (words.Word, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT word FROM words WHERE frequency >= ? ORDER BY RANDOM() LIMIT 1`, s.minFrequency,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return words.Word{}, words.ErrNoSolutions
	}
	if err != nil {
		return words.Word{}, err
	}
	return words.Parse(raw)
}

// BaseScore returns the stored base score of w, or scoring.MaxBaseScore for
// unknown words.
func (s *Store) BaseScore(ctx context.Context, w words.Word) (float64, error) {
	var score float64
	err := s.db.QueryRowContext(ctx, `SELECT score FROM words WHERE word=?`, w.String()).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return scoring.MaxBaseScore, nil
	}
	return score, err
}

// ImportWords inserts ws, ignoring words already present.
// Returns the number of new rows.
func (s *Store) ImportWords(ctx context.Context, ws []words.Word) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (word) VALUES (?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, w := range ws {
		res, err := stmt.ExecContext(ctx, w.String())
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ApplyFrequencies stores the corpus frequency of every word and recomputes
// its base score, scaled between the smallest and largest matched
// frequency. Words missing from freqs get frequency 0 and the maximum score.
// Returns the number of stored words that had a frequency. When nothing
// matches the table is left unchanged.
func (s *Store) ApplyFrequencies(ctx context.Context, freqs map[words.Word]int64) (int, error) {
	all, err := s.Words(ctx)
	if err != nil {
		return 0, err
	}

	var minF, maxF int64
	matched := 0
	for _, w := range all {
		f := freqs[w]
		if f <= 0 {
			continue
		}
		if matched == 0 || f < minF {
			minF = f
		}
		if f > maxF {
			maxF = f
		}
		matched++
	}
	if matched == 0 {
		log.Warn().Int("words", len(all)).Msg("no frequency matches found")
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `UPDATE words SET frequency=?, score=? WHERE word=?`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, w := range all {
		f := max(freqs[w], 0)
		if _, err := stmt.ExecContext(ctx, f, scoring.FrequencyScore(f, minF, maxF), w.String()); err != nil {
			return 0, fmt.Errorf("update %s: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().
		Int("matched", matched).
		Int("unmatched", len(all)-matched).
		Int64("min_frequency", minF).
		Int64("max_frequency", maxF).
		Msg("applied word frequencies")
	return matched, nil
}

// Stats returns (stored words, solutions).
func (s *Store) Stats(ctx context.Context) (total int, solutions int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(CASE WHEN frequency >= ? THEN 1 ELSE 0 END), 0) FROM words`,
		s.minFrequency,
	).Scan(&total, &solutions)
	return total, solutions, err
}

func scanWords(rows *sql.Rows) ([]words.Word, error) {
	defer rows.Close()
	var out []words.Word
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		w, err := words.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("stored word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
