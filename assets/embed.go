// assets/embed.go
//
// Embedded default word lists. These ship inside the binary so the solver
// works without a word store or external list files.
//
//   - answers.txt: likely solutions.
//   - allowed.txt: extra legal guesses (the solutions are always legal too).
//
// Lines are trimmed and lowercased; blank lines and '#' comments are skipped.
// Length/alphabet validation happens in the words package.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded solution words.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded extra guess words.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
