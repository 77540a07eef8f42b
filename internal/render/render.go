// internal/render/render.go
//
// Terminal output for the CLI: colored feedback tiles, share rows, ranking
// tables and candidate listings. Colors degrade with the terminal's profile;
// the Ascii profile prints plain text.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const (
	colorGreen  = "#538d4e"
	colorYellow = "#b59f3b"
	colorGray   = "#3a3a3c"
	colorText   = "#ffffff"
	colorDim    = "#818384"
	colorAccent = "#818cf8"
)

// Renderer formats solver output for one color profile.
type Renderer struct {
	p termenv.Profile
}

// New returns a Renderer for profile p.
func New(p termenv.Profile) *Renderer { return &Renderer{p: p} }

// ForWriter detects the color profile of w (honoring NO_COLOR).
func ForWriter(w io.Writer) *Renderer {
	return New(termenv.NewOutput(w).EnvColorProfile())
}

// Plain reports whether output carries no color.
func (r *Renderer) Plain() bool { return r.p == termenv.Ascii }

func (r *Renderer) tile(c byte, m feedback.Mark) string {
	bg := colorGray
	switch m {
	case feedback.Green:
		bg = colorGreen
	case feedback.Yellow:
		bg = colorYellow
	}
	return r.p.String(" " + strings.ToUpper(string(c)) + " ").
		Foreground(r.p.Color(colorText)).
		Background(r.p.Color(bg)).
		Bold().
		String()
}

// Guess renders a scored guess as colored tiles. In plain mode the word is
// followed by its pattern digits, e.g. "CRANE 20110".
func (r *Renderer) Guess(w words.Word, p feedback.Pattern) string {
	if r.Plain() {
		return strings.ToUpper(w.String()) + " " + p.String()
	}
	var b strings.Builder
	for i := range w {
		b.WriteString(r.tile(w[i], p[i]))
	}
	return b.String()
}

// Emoji renders p as a share row.
func Emoji(p feedback.Pattern) string {
	var b strings.Builder
	for _, m := range p {
		switch m {
		case feedback.Green:
			b.WriteString("🟩")
		case feedback.Yellow:
			b.WriteString("🟨")
		default:
			b.WriteString("⬛")
		}
	}
	return b.String()
}

// Heading renders an accented title.
func (r *Renderer) Heading(s string) string {
	return r.p.String(s).Foreground(r.p.Color(colorAccent)).Bold().String()
}

// Dim renders secondary text.
func (r *Renderer) Dim(s string) string {
	return r.p.String(s).Foreground(r.p.Color(colorDim)).String()
}

// Ranking writes one numbered line per ranked guess with its entropy and a
// bar scaled to entropy.MaxEntropy.
func (r *Renderer) Ranking(w io.Writer, rs []entropy.RankedGuess) error {
	const barWidth = 24
	for i, g := range rs {
		n := int(g.Entropy / entropy.MaxEntropy * barWidth)
		bar := strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
		if _, err := fmt.Fprintf(w, "%3d. %s  %7.4f bits  %s\n",
			i+1, g.Word, g.Entropy, r.Dim(bar)); err != nil {
			return err
		}
	}
	return nil
}

// Pool writes up to limit candidates, space separated, wrapped at perLine.
// A trailing line reports how many were left out.
func (r *Renderer) Pool(w io.Writer, pool []words.Word, limit int) error {
	const perLine = 10
	shown := pool
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for i := 0; i < len(shown); i += perLine {
		line := words.Strings(shown[i:min(i+perLine, len(shown))])
		if _, err := fmt.Fprintln(w, "  "+strings.Join(line, " ")); err != nil {
			return err
		}
	}
	if rest := len(pool) - len(shown); rest > 0 {
		if _, err := fmt.Fprintln(w, r.Dim(fmt.Sprintf("  … and %d more", rest))); err != nil {
			return err
		}
	}
	return nil
}
