package selector

import (
	"math/rand/v2"
	"sort"

	"github.com/wfunc/songquiz/models"
)

// SelectRandomSong draws one song from pool that is not in ignored. When
// alternatingGender is set and at least one remaining song is of that gender or
// coed, the draw is narrowed to those songs. The second result is false when no
// candidate remains.
func SelectRandomSong(pool []models.Song, ignored map[string]struct{}, alternatingGender models.Gender, shuffle models.ShuffleType, rng *rand.Rand) (models.Song, bool) {
	candidates := make([]models.Song, 0, len(pool))
	for _, s := range pool {
		if _, skip := ignored[s.Key]; !skip {
			candidates = append(candidates, s)
		}
	}

	if alternatingGender != "" {
		var narrowed []models.Song
		for _, s := range candidates {
			if s.Members == alternatingGender || s.Members == models.GenderCoed {
				narrowed = append(narrowed, s)
			}
		}
		if len(narrowed) > 0 {
			candidates = narrowed
		}
	}

	if len(candidates) == 0 {
		return models.Song{}, false
	}

	if shuffle == models.ShufflePopularity {
		// pool order is descending popularity
		return candidates[0], true
	}
	return candidates[weightedIndex(candidates, rng)], true
}

// weightedIndex picks an index with probability proportional to SelectionWeight,
// by binary search over the cumulative weights.
func weightedIndex(songs []models.Song, rng *rand.Rand) int {
	cumulative := make([]float64, len(songs))
	total := 0.0
	for i, s := range songs {
		w := s.SelectionWeight
		if w <= 0 {
			w = 1
		}
		total += w
		cumulative[i] = total
	}

	r := rng.Float64() * total
	idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > r })
	if idx == len(cumulative) {
		idx--
	}
	return idx
}
