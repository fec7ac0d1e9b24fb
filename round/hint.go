package round

import (
	"math/rand/v2"
	"strings"
	"unicode"
)

const hiddenCharacterRatio = 0.75

// generateHint hides three quarters of the letters of name, at least one, and
// spaces the characters out.
func generateHint(name string, rng *rand.Rand) string {
	runes := []rune(name)
	var eligible []int
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return strings.Join(strings.Split(name, ""), " ")
	}

	hidden := max(int(float64(len(eligible))*hiddenCharacterRatio), 1)
	rng.Shuffle(len(eligible), func(i, j int) { eligible[i], eligible[j] = eligible[j], eligible[i] })
	for _, i := range eligible[:hidden] {
		runes[i] = '_'
	}

	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
