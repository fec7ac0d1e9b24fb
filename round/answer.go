package round

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// trailing "(...)" or "[...]" groups, e.g. "Fancy (Japanese ver.)"
var parentheticalSuffix = regexp.MustCompile(`\s*[(\[][^()\[\]]*[)\]]\s*$`)

// StripParenthetical removes trailing parenthetical groups from a song title.
func StripParenthetical(name string) string {
	for {
		stripped := parentheticalSuffix.ReplaceAllString(name, "")
		if stripped == name || stripped == "" {
			return strings.TrimSpace(name)
		}
		name = stripped
	}
}

// CleanAnswer normalises a guess or an accepted answer for comparison:
// lowercase, "&" spelled out, punctuation, symbols and whitespace dropped.
func CleanAnswer(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", "and")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.Is(unicode.Cf, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// typoAllowance is how many edits a guess of an answer this long may be off by.
// Short answers must be exact.
func typoAllowance(answerLen int) int {
	switch {
	case answerLen <= 4:
		return -1
	case answerLen <= 6:
		return 1
	}
	return 2
}

// similar reports whether a cleaned guess is within the typo allowance of any
// cleaned answer.
func similar(guess string, answers []string) bool {
	guessLen := len([]rune(guess))
	for _, a := range answers {
		answerLen := len([]rune(a))
		if abs(guessLen-answerLen) >= 2 {
			continue
		}
		if levenshtein.ComputeDistance(guess, a) <= typoAllowance(answerLen) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
