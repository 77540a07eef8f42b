package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
	"github.com/robalobadob/wordle/apps/solver/internal/wordstore"
)

func (c *cli) topCmd() *cobra.Command {
	var (
		n     int
		worst bool
		vocab string
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank opening guesses over the full solution pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeDict, err := c.openDictionary(ctx)
			if err != nil {
				return err
			}
			defer closeDict()

			pool, err := d.Solutions(ctx)
			if err != nil {
				return err
			}
			guesses := pool
			switch vocab {
			case "", "pool":
			case "all":
				if guesses, err = d.Words(ctx); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown vocabulary %q (want pool or all)", vocab)
			}
			mode := entropy.Maximize
			if worst {
				mode = entropy.Minimize
			}

			rctx, cancel := c.rankContext(ctx)
			defer cancel()
			ranked, err := c.ranker().Rank(rctx, pool, guesses, n, mode)
			if err != nil && !errors.Is(err, entropy.ErrRankingIncomplete) {
				return err
			}
			out := cmd.OutOrStdout()
			r := render.ForWriter(out)
			label := "Best"
			if mode == entropy.Minimize {
				label = "Worst"
			}
			fmt.Fprintf(out, "%s\n", r.Heading(fmt.Sprintf("%s %d of %d guesses over %d solutions",
				label, len(ranked), len(guesses), len(pool))))
			if rerr := r.Ranking(out, ranked); rerr != nil {
				return rerr
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of guesses to list (0 lists all)")
	cmd.Flags().BoolVar(&worst, "worst", false, "list the least informative guesses")
	cmd.Flags().StringVar(&vocab, "vocab", "pool", "guesses to rank: pool|all")
	return cmd
}

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP analysis API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, closeDict, err := c.openDictionary(ctx)
			if err != nil {
				return err
			}
			defer closeDict()

			var cache store.Cache
			if c.cfg.RedisURL != "" {
				rc, err := store.NewRedis(c.cfg.RedisURL, store.WithTTL(c.cfg.CacheTTL))
				if err != nil {
					return err
				}
				defer rc.Close()
				if err := rc.Ping(ctx); err != nil {
					return fmt.Errorf("redis: %w", err)
				}
				cache = rc
			} else {
				cache = store.NewMemory(c.cfg.CacheTTL)
			}

			if addr == "" {
				addr = c.cfg.Addr()
			}
			srv := httpserver.New(c.cfg, httpserver.Deps{Words: d, Ranker: c.ranker(), Cache: cache})
			log.Info().
				Str("addr", addr).
				Bool("auth", c.cfg.AuthEnabled()).
				Bool("redis", c.cfg.RedisURL != "").
				Msg("starting wordle-solver api")
			return srv.Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :$PORT)")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var (
		dbPath   string
		listPath string
		freqPath string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load words and frequencies into the sqlite word store",
		Long: `Inserts a word list (one word per line; the embedded lists when --words is
omitted) into the word store, then optionally applies a frequency file of
"word count" lines, which decides the solutions and the base scores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if dbPath == "" {
				dbPath = c.cfg.WordsDB
			}
			if dbPath == "" {
				return errors.New("no database: set WORDS_DB or pass --db")
			}
			st, err := wordstore.Open(ctx, dbPath, wordstore.WithMinFrequency(c.cfg.MinFrequency))
			if err != nil {
				return err
			}
			defer st.Close()

			// An empty path selects the embedded lists.
			vocab, err := words.Load("", listPath)
			if err != nil {
				return err
			}
			list, err := vocab.Words(ctx)
			if err != nil {
				return err
			}
			inserted, err := st.ImportWords(ctx, list)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d new words (%d read)\n", inserted, len(list))

			if freqPath != "" {
				f, err := os.Open(freqPath)
				if err != nil {
					return err
				}
				defer f.Close()
				freqs, err := wordstore.ReadFrequencies(f)
				if err != nil {
					return fmt.Errorf("read %s: %w", freqPath, err)
				}
				matched, err := st.ApplyFrequencies(ctx, freqs)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "applied %d frequencies\n", matched)
			}

			total, sols, err := st.Stats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "store has %d words, %d solutions (min frequency %d)\n", total, sols, c.cfg.MinFrequency)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path (default $WORDS_DB)")
	cmd.Flags().StringVar(&listPath, "words", "", "word list file")
	cmd.Flags().StringVar(&freqPath, "freq", "", "frequency file")
	return cmd
}

func (c *cli) scoreCmd() *cobra.Command {
	var (
		base     float64
		attempts int
		word     string
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the attempt multipliers or score a finished game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("attempts") {
				fmt.Fprintln(out, "attempts  multiplier")
				for _, row := range scoring.Table() {
					fmt.Fprintf(out, "%8d  %10.2f\n", row.Attempts, row.Multiplier)
				}
				return nil
			}
			if word != "" {
				w, err := words.Parse(word)
				if err != nil {
					return err
				}
				d, closeDict, err := c.openDictionary(cmd.Context())
				if err != nil {
					return err
				}
				defer closeDict()
				base = baseScore(cmd.Context(), d, w)
			}
			fmt.Fprintf(out, "%d\n", scoring.FinalScore(base, attempts))
			return nil
		},
	}
	cmd.Flags().Float64Var(&base, "base", scoring.MaxBaseScore, "word base score (1 common … 10 rare)")
	cmd.Flags().IntVar(&attempts, "attempts", 0, "guesses used, 1-6")
	cmd.Flags().StringVar(&word, "word", "", "take the base score of this word from the word store")
	cmd.MarkFlagsMutuallyExclusive("base", "word")
	return cmd
}

func (c *cli) tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the analysis API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set")
			}
			if ttl == 0 {
				ttl = c.cfg.TokenTTL()
			}
			tok, exp, err := httpserver.SignToken([]byte(c.cfg.JWTSecret), subject, ttl)
			if err != nil {
				return err
			}
			log.Debug().Str("subject", subject).Time("expires", exp).Msg("token minted")
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject (who the token is for)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_EXPIRES_DAYS)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
