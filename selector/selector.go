// Package selector draws non-repeating, weighted songs for a guild's game.
package selector

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/models"
)

// Config holds the repeat-avoidance thresholds.
type Config struct {
	// LastPlayedCapacity bounds the recently played queue.
	LastPlayedCapacity int
	// Pools at or below SmallPoolThreshold songs never remember recent draws.
	SmallPoolThreshold int
	// Pools at or below MediumPoolThreshold halve the recent queue whenever it fills up.
	MediumPoolThreshold int
}

func DefaultConfig() Config {
	return Config{
		LastPlayedCapacity:  10,
		SmallPoolThreshold:  10,
		MediumPoolThreshold: 20,
	}
}

// SongSelector holds one guild's filtered pool and draw history. It is owned by
// a single game session and is not safe for concurrent use.
type SongSelector struct {
	cfg  Config
	rng  *rand.Rand
	pool FilteredPool

	lastPlayed            []string
	uniquePlayed          map[string]struct{}
	lastAlternatingGender models.Gender
}

// New creates a selector. A nil rng seeds one from the clock.
func New(cfg Config, rng *rand.Rand) *SongSelector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
	if cfg.LastPlayedCapacity <= 0 {
		cfg = DefaultConfig()
	}
	return &SongSelector{
		cfg:          cfg,
		rng:          rng,
		uniquePlayed: make(map[string]struct{}),
	}
}

// Reload refilters the catalog for opts and keeps the draw history.
func (s *SongSelector) Reload(c *catalog.Catalog, opts models.GameOptions) FilteredPool {
	s.pool = GetFilteredSongList(c, opts)
	return s.pool
}

func (s *SongSelector) Pool() FilteredPool {
	return s.pool
}

func (s *SongSelector) SongCount() int {
	return len(s.pool.Songs)
}

// QueryRandomSong draws the next song, avoiding recently played songs and, under
// unique shuffle, every song played since the last reset.
func (s *SongSelector) QueryRandomSong(opts models.GameOptions) (models.Song, bool) {
	ignored := make(map[string]struct{}, len(s.lastPlayed)+len(s.uniquePlayed))
	for _, k := range s.lastPlayed {
		ignored[k] = struct{}{}
	}
	for k := range s.uniquePlayed {
		ignored[k] = struct{}{}
	}

	var gender models.Gender
	if opts.IsGenderAlternating() {
		gender = s.lastAlternatingGender
	}

	song, ok := SelectRandomSong(s.pool.Songs, ignored, gender, opts.Shuffle, s.rng)
	if !ok {
		return models.Song{}, false
	}

	s.rememberLastPlayed(song.Key)
	if opts.Shuffle == models.ShuffleUnique {
		s.uniquePlayed[song.Key] = struct{}{}
	}
	return song, true
}

func (s *SongSelector) rememberLastPlayed(key string) {
	poolSize := len(s.pool.Songs)
	if poolSize <= s.cfg.SmallPoolThreshold {
		s.lastPlayed = s.lastPlayed[:0]
		return
	}

	if len(s.lastPlayed) >= s.cfg.LastPlayedCapacity {
		s.lastPlayed = slices.Delete(s.lastPlayed, 0, 1)
		if poolSize <= s.cfg.MediumPoolThreshold {
			s.lastPlayed = slices.Delete(s.lastPlayed, 0, len(s.lastPlayed)/2)
		}
	}
	s.lastPlayed = append(s.lastPlayed, key)
}

// CheckUniqueSongQueue resets the unique history once every song of the pool
// has been played, and reports whether it did. Outside unique shuffle the unique
// history is unused; it is cleared and false is returned, while the recent
// queue is kept so plain shuffles still avoid repeats.
func (s *SongSelector) CheckUniqueSongQueue(opts models.GameOptions) bool {
	if opts.Shuffle != models.ShuffleUnique {
		clear(s.uniquePlayed)
		return false
	}

	for _, song := range s.pool.Songs {
		if _, played := s.uniquePlayed[song.Key]; !played {
			return false
		}
	}
	s.ResetUniqueSongs()
	return true
}

// ResetUniqueSongs forgets every draw, unique and recent.
func (s *SongSelector) ResetUniqueSongs() {
	clear(s.uniquePlayed)
	s.lastPlayed = s.lastPlayed[:0]
}

// CheckAlternatingGender flips the gender of the next draw when alternating
// gender is on, starting from a random one, and clears it otherwise.
func (s *SongSelector) CheckAlternatingGender(opts models.GameOptions) {
	if !opts.IsGenderAlternating() {
		s.lastAlternatingGender = ""
		return
	}

	switch s.lastAlternatingGender {
	case models.GenderMale:
		s.lastAlternatingGender = models.GenderFemale
	case models.GenderFemale:
		s.lastAlternatingGender = models.GenderMale
	default:
		if s.rng.IntN(2) == 0 {
			s.lastAlternatingGender = models.GenderMale
		} else {
			s.lastAlternatingGender = models.GenderFemale
		}
	}
}

func (s *SongSelector) LastAlternatingGender() models.Gender {
	return s.lastAlternatingGender
}

// LastPlayed returns a copy of the recent queue, oldest first.
func (s *SongSelector) LastPlayed() []string {
	return slices.Clone(s.lastPlayed)
}

// UniqueSongCounter reports how many songs of the current pool were played under
// unique shuffle, and how many songs the options can yield at most.
func (s *SongSelector) UniqueSongCounter(opts models.GameOptions) (played, total int) {
	for _, song := range s.pool.Songs {
		if _, ok := s.uniquePlayed[song.Key]; ok {
			played++
		}
	}
	end := opts.LimitEnd
	if end <= 0 {
		end = s.pool.CountBeforeLimit
	}
	total = max(min(s.pool.CountBeforeLimit, end-max(opts.LimitStart, 0)), 0)
	return played, total
}
