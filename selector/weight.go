package selector

import "github.com/wfunc/songquiz/models"

// Selection weights by popularity tier. The pool is split into len(tiers) equal
// rank buckets; each bucket doubles (hard) or halves (easy) the weight of the
// previous one.
var (
	weightTiersHard = []float64{1, 2, 4, 8, 16}
	weightTiersEasy = []float64{16, 8, 4, 2, 1}
)

// assignSelectionWeights expects songs in descending popularity order.
func assignSelectionWeights(songs []models.Song, shuffle models.ShuffleType) {
	var tiers []float64
	switch shuffle {
	case models.ShuffleWeightedEasy:
		tiers = weightTiersEasy
	case models.ShuffleWeightedHard:
		tiers = weightTiersHard
	default:
		tiers = []float64{1}
	}

	n := len(songs)
	for i := range songs {
		songs[i].SelectionWeight = tiers[i*len(tiers)/n]
	}
}
