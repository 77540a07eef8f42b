// internal/store/cache.go
//
// Rank cache: ranking the same pool against the same vocabulary always
// yields the same result, so finished rankings are stored under a digest of
// their inputs and served again without recomputation.
//
// Implementations:
//   - Memory (this package): per-process map, optional TTL.
//   - Redis (this package): shared across API replicas, JSON values.
//
// Only complete rankings may be stored. Callers must not Put the partial
// results that accompany entropy.ErrRankingIncomplete.

package store

import (
	"context"
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Cache stores ranking results keyed by RankKey.
type Cache interface {
	// Get returns the cached ranking for key. ok is false on a miss.
	Get(ctx context.Context, key string) (ranked []entropy.RankedGuess, ok bool, err error)

	// Put stores a ranking under key.
	Put(ctx context.Context, key string, ranked []entropy.RankedGuess) error
}

// RankKey derives the cache key for ranking vocabulary against pool.
// It is a hex BLAKE2b-256 digest over the mode, topN and both word lists,
// each list prefixed with its length so the boundary is unambiguous.
func RankKey(pool, vocabulary []words.Word, mode entropy.Mode, topN int) string {
	h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes

	var buf [8]byte
	writeInt := func(n int) {
		binary.BigEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}

	h.Write([]byte(mode.String()))
	writeInt(topN)
	for _, list := range [][]words.Word{pool, vocabulary} {
		writeInt(len(list))
		for _, w := range list {
			h.Write(w[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func recordLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(backend, result).Inc()
}
