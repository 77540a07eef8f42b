package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
	"github.com/robalobadob/wordle/apps/solver/internal/wordstore"
)

// cli carries state shared by every command, filled in before any command runs.
type cli struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Entropy-driven Wordle solver",
		Long:          `Plays, assists and analyzes Wordle games by ranking guesses on the information they reveal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			setupLogging(cfg.LogLevel, cmd.Name() == "serve")
			return nil
		},
	}

	root.AddCommand(
		c.playCmd(),
		c.assistCmd(),
		c.topCmd(),
		c.serveCmd(),
		c.importCmd(),
		c.scoreCmd(),
		c.tokenCmd(),
	)
	return root
}

// setupLogging applies LOG_LEVEL and picks the output format: JSON lines for
// the server, a console writer for interactive commands.
func setupLogging(level string, jsonOutput bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if jsonOutput {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// dictionary is the word source the commands play against.
type dictionary interface {
	words.Provider
	RandomSolution(ctx context.Context) (words.Word, error)
}

// baseScorer is implemented by dictionaries that know word frequencies.
type baseScorer interface {
	BaseScore(ctx context.Context, w words.Word) (float64, error)
}

// openDictionary opens the sqlite word store when WORDS_DB is set, otherwise
// the word list files (or the embedded lists).
func (c *cli) openDictionary(ctx context.Context) (dictionary, func() error, error) {
	if c.cfg.WordsDB != "" {
		st, err := wordstore.Open(ctx, c.cfg.WordsDB, wordstore.WithMinFrequency(c.cfg.MinFrequency))
		if err != nil {
			return nil, nil, fmt.Errorf("open word store: %w", err)
		}
		return st, st.Close, nil
	}
	v, err := words.Load(c.cfg.AnswersFile, c.cfg.AllowedFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load word lists: %w", err)
	}
	a, g := v.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Msg("word lists loaded")
	return v, func() error { return nil }, nil
}

// baseScore returns the frequency score of w, or scoring.MaxBaseScore when
// the dictionary has no frequency data.
func baseScore(ctx context.Context, d dictionary, w words.Word) float64 {
	bs, ok := d.(baseScorer)
	if !ok {
		return scoring.MaxBaseScore
	}
	s, err := bs.BaseScore(ctx, w)
	if err != nil {
		log.Warn().Err(err).Str("word", w.String()).Msg("base score lookup")
		return scoring.MaxBaseScore
	}
	return s
}

func (c *cli) ranker() *entropy.Ranker {
	return entropy.NewRanker(entropy.WithWorkers(c.cfg.RankWorkers))
}

// rankContext bounds one ranking call by RANK_TIMEOUT.
func (c *cli) rankContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.RankTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.RankTimeout)
}
