package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/scoring"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// showPoolMax is the largest pool printed in full after a guess.
const showPoolMax = 20

// suggestFlags are shared by play and assist.
type suggestFlags struct {
	top         int
	adversarial bool
	vocab       string
}

func (f *suggestFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.top, "top", 5, "number of suggestions to show (0 hides them)")
	cmd.Flags().BoolVar(&f.adversarial, "adversarial", false, "suggest the least informative guesses instead")
	cmd.Flags().StringVar(&f.vocab, "vocab", "pool", "guess vocabulary for suggestions: pool|all")
}

// sessionOptions builds the session options for the flags.
func (c *cli) sessionOptions(ctx context.Context, d dictionary, f suggestFlags) ([]game.Option, error) {
	mode := entropy.Maximize
	if f.adversarial {
		mode = entropy.Minimize
	}
	opts := []game.Option{
		game.WithMode(mode),
		game.WithRanker(c.ranker()),
		game.WithGuessValidator(func(w words.Word) bool {
			ok, err := d.IsAllowed(ctx, w)
			if err != nil {
				log.Warn().Err(err).Str("word", w.String()).Msg("word lookup")
			}
			return ok
		}),
	}
	switch f.vocab {
	case "", "pool":
	case "all":
		all, err := d.Words(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithVocabulary(all))
	default:
		return nil, fmt.Errorf("unknown vocabulary %q (want pool or all)", f.vocab)
	}
	return opts, nil
}

func (c *cli) playCmd() *cobra.Command {
	var (
		flags    suggestFlags
		answer   string
		useDaily bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against a hidden word with entropy suggestions",
		Long: `Picks a hidden word and scores your guesses against it. After every guess
the remaining candidates and the best next guesses are shown.

Type !reveal to see the answer, !pool to list every candidate, q to quit.`,
		Args: cobra.NoArgs,
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
			solution, err := pickSolution(ctx, d, pool, answer, useDaily, c.cfg.DailySalt)
			if err != nil {
				return err
			}
			opts, err := c.sessionOptions(ctx, d, flags)
			if err != nil {
				return err
			}
			sess, err := game.New(solution.String(), pool, opts...)
			if err != nil {
				return err
			}
			log.Debug().Str("session", sess.ID).Int("pool", len(pool)).Msg("game started")

			rp := c.newREPL(cmd, sess, flags.top)
			rp.banner("A word has been picked. Type !reveal to see it, q to quit.")
			return rp.run(ctx, func(line string) (game.GuessRecord, error) {
				return sess.Submit(line)
			}, func() {
				rp.printf("  The answer is %s\n", strings.ToUpper(solution.String()))
			}, func(rounds int) {
				base := baseScore(ctx, d, solution)
				rp.printf("  Score: %d (base %.1f × %.2f)\n",
					scoring.FinalScore(base, rounds), base, scoring.AttemptMultiplier(rounds))
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&answer, "answer", "", "play against this word instead of a random one")
	cmd.Flags().BoolVar(&useDaily, "daily", false, "play today's deterministic word")
	cmd.MarkFlagsMutuallyExclusive("answer", "daily")
	return cmd
}

func (c *cli) assistCmd() *cobra.Command {
	var flags suggestFlags
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Get suggestions for a game played elsewhere",
		Long: `Enter each guess you played followed by the feedback it received, e.g.

  crane 20110     (2/g = green, 1/y = yellow, 0/b/. = gray)

The candidates consistent with everything entered so far and the best next
guesses are shown after every line. Type q to quit.`,
		Args: cobra.NoArgs,
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
			opts, err := c.sessionOptions(ctx, d, flags)
			if err != nil {
				return err
			}
			sess := game.NewAssist(pool, opts...)

			rp := c.newREPL(cmd, sess, flags.top)
			rp.banner("Enter \"<guess> <feedback>\", e.g. crane 20110. q to quit.")
			return rp.run(ctx, func(line string) (game.GuessRecord, error) {
				fields := strings.Fields(line)
				if len(fields) != 2 {
					return game.GuessRecord{}, errors.New("enter a guess and its feedback, e.g. crane 20110")
				}
				p, err := feedback.ParsePattern(fields[1])
				if err != nil {
					return game.GuessRecord{}, err
				}
				return sess.SubmitFeedback(fields[0], p)
			}, nil, nil)
		},
	}
	flags.register(cmd)
	return cmd
}

// pickSolution resolves the hidden word: --answer, --daily, or random.
func pickSolution(ctx context.Context, d dictionary, pool []words.Word, answer string, useDaily bool, salt string) (words.Word, error) {
	switch {
	case answer != "":
		w, err := words.Parse(answer)
		if err != nil {
			return words.Word{}, fmt.Errorf("--answer: %w", err)
		}
		if ok, _ := d.IsAllowed(ctx, w); !ok {
			log.Warn().Str("answer", w.String()).Msg("answer is not in the word list")
		}
		return w, nil
	case useDaily:
		return daily.Pick(time.Now(), salt, pool)
	default:
		return d.RandomSolution(ctx)
	}
}

// repl is the line loop shared by play and assist.
type repl struct {
	c    *cli
	in   *bufio.Scanner
	out  io.Writer
	r    *render.Renderer
	sess *game.Session
	top  int
}

func (c *cli) newREPL(cmd *cobra.Command, sess *game.Session, top int) *repl {
	out := cmd.OutOrStdout()
	return &repl{
		c:    c,
		in:   bufio.NewScanner(cmd.InOrStdin()),
		out:  out,
		r:    render.ForWriter(out),
		sess: sess,
		top:  top,
	}
}

func (rp *repl) printf(format string, args ...any) {
	fmt.Fprintf(rp.out, format, args...)
}

func (rp *repl) banner(msg string) {
	rp.printf("%s\n%s\n", rp.r.Heading("WORDLE SOLVER"), msg)
}

// run reads lines until the session ends, input runs out or the user quits.
// reveal handles !reveal (nil disables it); won is called with the round
// count on a win.
func (rp *repl) run(ctx context.Context, submit func(string) (game.GuessRecord, error), reveal func(), won func(rounds int)) error {
	rp.status(ctx)
	for !rp.sess.State().Terminal() {
		rp.printf("\nguess %d/%d> ", rp.sess.State().Round, game.MaxRounds)
		if !rp.in.Scan() {
			rp.printf("\n")
			return rp.in.Err()
		}
		line := strings.TrimSpace(rp.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			if reveal != nil {
				reveal()
			}
			return nil
		case "!reveal":
			if reveal == nil {
				rp.printf("  Nothing to reveal in assist mode.\n")
			} else {
				reveal()
			}
			continue
		case "!pool":
			_ = rp.r.Pool(rp.out, rp.sess.Pool(), 0)
			continue
		}

		rec, err := submit(line)
		if err != nil {
			rp.printf("  %s\n", describe(err))
			continue
		}
		rp.printf("  %s\n", rp.r.Guess(rec.Guess, rec.Pattern))

		switch rp.sess.State().Status {
		case game.StatusWon:
			rounds := rp.sess.Rounds()
			rp.printf("\n%s\n", rp.r.Heading(fmt.Sprintf("Solved in %d/%d!", rounds, game.MaxRounds)))
			if won != nil {
				won(rounds)
			}
		case game.StatusLost:
			rp.printf("\n%s\n", rp.r.Heading("Out of guesses."))
			if reveal != nil {
				reveal()
			}
		default:
			rp.status(ctx)
		}
	}
	rp.summary()
	return nil
}

// status prints the remaining pool and the next suggestions.
func (rp *repl) status(ctx context.Context) {
	n := rp.sess.PoolSize()
	rp.printf("\n%s\n", rp.r.Dim(fmt.Sprintf("--- round %d/%d | %d candidates ---",
		rp.sess.State().Round, game.MaxRounds, n)))
	switch {
	case n == 0:
		rp.printf("  No candidates left. The feedback is inconsistent or the word is not in the list.\n")
		return
	case n == 1:
		rp.printf("  Only one word left: %s\n", strings.ToUpper(rp.sess.Pool()[0].String()))
		return
	case n <= showPoolMax:
		_ = rp.r.Pool(rp.out, rp.sess.Pool(), 0)
	}
	if rp.top <= 0 {
		return
	}

	rctx, cancel := rp.c.rankContext(ctx)
	defer cancel()
	ranked, err := rp.sess.Suggestions(rctx, rp.top)
	if err != nil && !errors.Is(err, entropy.ErrRankingIncomplete) {
		rp.printf("  %s\n", describe(err))
		return
	}
	label := "best guesses"
	if rp.sess.Mode() == entropy.Minimize {
		label = "worst guesses"
	}
	if err != nil {
		label += " (partial, ranking timed out)"
	}
	rp.printf("  %s:\n", label)
	_ = rp.r.Ranking(rp.out, ranked)
}

// summary prints the share rows of a finished session.
func (rp *repl) summary() {
	rp.printf("\n")
	for _, rec := range rp.sess.History() {
		rp.printf("  %s  %s\n", render.Emoji(rec.Pattern), rec.Guess)
	}
}

// describe turns a submit error into a short user-facing message.
func describe(err error) string {
	switch {
	case errors.Is(err, words.ErrInvalidWordLength):
		return "Please enter a 5-letter word."
	case errors.Is(err, words.ErrInvalidWord):
		return "Only letters a-z, please."
	case errors.Is(err, game.ErrNotInWordList):
		return "Word not in dictionary. Try again."
	case errors.Is(err, feedback.ErrInvalidPattern):
		return "Feedback must be 5 marks: 2/g green, 1/y yellow, 0/b gray."
	case errors.Is(err, game.ErrEmptyCandidatePool):
		return "No candidates remaining."
	case errors.Is(err, game.ErrSessionTerminated):
		return "The game is over."
	}
	return err.Error()
}
