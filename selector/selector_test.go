package selector

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/models"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// generateCatalog builds n songs spread over a handful of artists with every
// combination of gender, solo flag, tags, video type and year.
func generateCatalog(n int) *catalog.Catalog {
	genders := []models.Gender{models.GenderMale, models.GenderFemale, models.GenderCoed}
	tags := []string{"", "o", "j", "e", "c", "oz", "d", "x"}
	videoTypes := []string{models.VideoTypeMain, models.VideoTypeMain, "audio"}

	c := &catalog.Catalog{
		Artists: []models.Artist{
			{ID: 1, Name: "one"},
			{ID: 2, Name: "two"},
			{ID: 3, Name: "three"},
			{ID: 4, Name: "one sub", ParentID: 1},
			{ID: 5, Name: "five"},
			{ID: 6, Name: "one sub + five", CollabArtistIDs: []int{4, 5}},
			{ID: 7, Name: "seven"},
		},
	}
	for i := 0; i < n; i++ {
		artist := c.Artists[i%len(c.Artists)]
		c.Songs = append(c.Songs, models.Song{
			Key:            fmt.Sprintf("song-%03d", i),
			Name:           fmt.Sprintf("Song %d", i),
			ArtistName:     artist.Name,
			ArtistID:       artist.ID,
			ParentArtistID: artist.ParentID,
			Members:        genders[i%len(genders)],
			IsSolo:         i%5 == 0,
			PublishDate:    time.Date(2005+i%20, time.June, 1, 0, 0, 0, 0, time.UTC),
			Views:          int64((i * 7919) % 100000),
			Tags:           tags[i%len(tags)],
			VideoType:      videoTypes[i%len(videoTypes)],
		})
	}
	return c
}

func poolOf(n int, gender models.Gender) []models.Song {
	songs := make([]models.Song, n)
	for i := range songs {
		songs[i] = models.Song{
			Key:             fmt.Sprintf("k%02d", i),
			Members:         gender,
			Views:           int64(n - i),
			SelectionWeight: 1,
		}
	}
	return songs
}

func selectorWithPool(songs []models.Song) *SongSelector {
	s := New(DefaultConfig(), testRand())
	s.pool = FilteredPool{Songs: songs, CountBeforeLimit: len(songs)}
	return s
}

func TestGetFilteredSongList_Soundness(t *testing.T) {
	c := generateCatalog(400)

	cases := map[string]func(*models.GameOptions){
		"defaults": func(*models.GameOptions) {},
		"female soloists": func(o *models.GameOptions) {
			o.Genders = []models.Gender{models.GenderFemale}
			o.ArtistType = models.ArtistTypeSoloist
		},
		"groups korean only": func(o *models.GameOptions) {
			o.ArtistType = models.ArtistTypeGroup
			o.Language = models.LanguageKorean
		},
		"ost exclusive all releases": func(o *models.GameOptions) {
			o.Ost = models.OstExclusive
			o.Release = models.ReleaseAll
		},
		"ost included narrow years": func(o *models.GameOptions) {
			o.Ost = models.OstInclude
			o.BeginningYear = 2012
			o.EndYear = 2015
		},
		"include and exclude": func(o *models.GameOptions) {
			o.Genders = []models.Gender{models.GenderCoed}
			o.IncludeArtistIDs = []int{2}
			o.ExcludeArtistIDs = []int{3, 7}
		},
		"include with subunits": func(o *models.GameOptions) {
			o.Genders = []models.Gender{models.GenderMale}
			o.IncludeArtistIDs = []int{1}
		},
		"alternating": func(o *models.GameOptions) {
			o.Genders = []models.Gender{models.GenderAlternating}
			o.Release = models.ReleaseAll
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			opts := models.DefaultGameOptions()
			mutate(&opts)
			pool := GetFilteredSongList(c, opts)
			require.NotEmpty(t, pool.Songs)

			for _, s := range pool.Songs {
				assert.True(t, satisfies(s, opts), "song %s does not satisfy %s", s.Key, name)
			}

			expected := 0
			for _, s := range c.Songs {
				if satisfies(s, opts) {
					expected++
				}
			}
			assert.Equal(t, expected, pool.CountBeforeLimit)
		})
	}
}

// satisfies restates the non-group filters for a single song.
func satisfies(s models.Song, opts models.GameOptions) bool {
	year := s.PublishYear()
	if year < opts.BeginningYear || year > opts.EndYear {
		return false
	}
	if opts.Language == models.LanguageKorean && s.HasAnyTag(models.ForeignLanguageTags) {
		return false
	}
	if opts.Ost == models.OstExclude && s.HasTag(models.TagOST) {
		return false
	}
	if opts.Ost == models.OstExclusive && !s.HasTag(models.TagOST) {
		return false
	}
	if opts.Release == models.ReleaseOfficial && (s.VideoType != models.VideoTypeMain || s.HasAnyTag(models.NonOfficialVideoTags)) {
		return false
	}

	for _, id := range opts.IncludeArtistIDs {
		if s.ArtistID == id || (opts.Subunits == models.SubunitsInclude && s.ParentArtistID == id) {
			return true
		}
	}
	for _, id := range opts.ExcludeArtistIDs {
		if s.ArtistID == id {
			return false
		}
	}
	genderOK := false
	for _, g := range opts.Genders {
		if g == s.Members || (g == models.GenderAlternating && s.Members != "") {
			genderOK = true
		}
	}
	if !genderOK {
		return false
	}
	switch opts.ArtistType {
	case models.ArtistTypeSoloist:
		return s.IsSolo
	case models.ArtistTypeGroup:
		return !s.IsSolo
	}
	return true
}

func TestGetFilteredSongList_GroupsMode(t *testing.T) {
	c := generateCatalog(70)
	opts := models.DefaultGameOptions()
	opts.Release = models.ReleaseAll
	opts.Ost = models.OstInclude
	opts.BeginningYear = 1900
	opts.EndYear = 3000
	opts.GroupArtistIDs = []int{1}

	artistsOf := func(pool FilteredPool) map[int]bool {
		ids := make(map[int]bool)
		for _, s := range pool.Songs {
			ids[s.ArtistID] = true
		}
		return ids
	}

	// the group, its subunit and the collab featuring the subunit
	assert.Equal(t, map[int]bool{1: true, 4: true, 6: true}, artistsOf(GetFilteredSongList(c, opts)))

	opts.Subunits = models.SubunitsExclude
	assert.Equal(t, map[int]bool{1: true}, artistsOf(GetFilteredSongList(c, opts)))
}

func TestGetFilteredSongList_OrderAndWindow(t *testing.T) {
	c := generateCatalog(200)
	opts := models.DefaultGameOptions()
	opts.Release = models.ReleaseAll
	opts.Ost = models.OstInclude
	opts.BeginningYear = 1900
	opts.EndYear = 3000

	full := GetFilteredSongList(c, opts)
	require.Len(t, full.Songs, 200)
	for i := 1; i < len(full.Songs); i++ {
		assert.GreaterOrEqual(t, full.Songs[i-1].Views, full.Songs[i].Views)
	}

	opts.LimitStart = 10
	opts.LimitEnd = 30
	windowed := GetFilteredSongList(c, opts)
	assert.Equal(t, 200, windowed.CountBeforeLimit)
	require.Len(t, windowed.Songs, 20)
	assert.Equal(t, full.Songs[10].Key, windowed.Songs[0].Key)
	assert.Equal(t, full.Songs[29].Key, windowed.Songs[19].Key)
}

func TestGetFilteredSongList_ForcedSong(t *testing.T) {
	c := generateCatalog(20)
	opts := models.DefaultGameOptions()
	opts.ForcePlaySongKey = "song-007"

	pool := GetFilteredSongList(c, opts)
	require.Len(t, pool.Songs, 1)
	assert.Equal(t, "song-007", pool.Songs[0].Key)
	assert.Equal(t, 1, pool.CountBeforeLimit)

	opts.ForcePlaySongKey = "missing"
	pool = GetFilteredSongList(c, opts)
	assert.Empty(t, pool.Songs)
	assert.Zero(t, pool.CountBeforeLimit)
}

func TestSelectionWeights_Monotonic(t *testing.T) {
	c := generateCatalog(137)
	opts := models.DefaultGameOptions()
	opts.Release = models.ReleaseAll
	opts.Ost = models.OstInclude
	opts.BeginningYear = 1900
	opts.EndYear = 3000

	opts.Shuffle = models.ShuffleWeightedEasy
	easy := GetFilteredSongList(c, opts).Songs
	opts.Shuffle = models.ShuffleWeightedHard
	hard := GetFilteredSongList(c, opts).Songs
	opts.Shuffle = models.ShuffleRandom
	random := GetFilteredSongList(c, opts).Songs

	for i := 1; i < len(easy); i++ {
		assert.GreaterOrEqual(t, easy[i-1].SelectionWeight, easy[i].SelectionWeight)
		assert.LessOrEqual(t, hard[i-1].SelectionWeight, hard[i].SelectionWeight)
	}
	assert.Greater(t, easy[0].SelectionWeight, easy[len(easy)-1].SelectionWeight)
	assert.Less(t, hard[0].SelectionWeight, hard[len(hard)-1].SelectionWeight)
	for _, s := range random {
		assert.Equal(t, 1.0, s.SelectionWeight)
	}
}

func TestSelectRandomSong(t *testing.T) {
	rng := testRand()
	pool := poolOf(4, models.GenderFemale)

	ignored := map[string]struct{}{"k00": {}, "k01": {}, "k02": {}}
	song, ok := SelectRandomSong(pool, ignored, "", models.ShuffleRandom, rng)
	require.True(t, ok)
	assert.Equal(t, "k03", song.Key)

	ignored["k03"] = struct{}{}
	_, ok = SelectRandomSong(pool, ignored, "", models.ShuffleRandom, rng)
	assert.False(t, ok)

	_, ok = SelectRandomSong(nil, nil, "", models.ShuffleRandom, rng)
	assert.False(t, ok)
}

func TestSelectRandomSong_Popularity(t *testing.T) {
	pool := poolOf(5, models.GenderMale)
	song, ok := SelectRandomSong(pool, map[string]struct{}{"k00": {}}, "", models.ShufflePopularity, testRand())
	require.True(t, ok)
	assert.Equal(t, "k01", song.Key)
}

func TestSelectRandomSong_FollowsWeights(t *testing.T) {
	rng := testRand()
	pool := poolOf(3, models.GenderMale)
	pool[1].SelectionWeight = 1000

	hits := 0
	for i := 0; i < 1000; i++ {
		song, ok := SelectRandomSong(pool, nil, "", models.ShuffleWeightedHard, rng)
		require.True(t, ok)
		if song.Key == "k01" {
			hits++
		}
	}
	assert.Greater(t, hits, 950)
}

func TestSelectRandomSong_AlternatingGender(t *testing.T) {
	rng := testRand()
	pool := append(poolOf(3, models.GenderMale), models.Song{Key: "f", Members: models.GenderFemale, SelectionWeight: 1})
	pool = append(pool, models.Song{Key: "c", Members: models.GenderCoed, SelectionWeight: 1})

	for i := 0; i < 50; i++ {
		song, ok := SelectRandomSong(pool, nil, models.GenderFemale, models.ShuffleRandom, rng)
		require.True(t, ok)
		assert.Contains(t, []string{"f", "c"}, song.Key)
	}

	// no match for the gender falls back to the whole pool
	males := poolOf(3, models.GenderMale)
	song, ok := SelectRandomSong(males, nil, models.GenderFemale, models.ShuffleRandom, rng)
	require.True(t, ok)
	assert.Equal(t, models.GenderMale, song.Members)
}

func TestQueryRandomSong_UniqueLiveness(t *testing.T) {
	const size = 25
	opts := models.DefaultGameOptions()
	opts.Shuffle = models.ShuffleUnique
	s := selectorWithPool(poolOf(size, models.GenderFemale))

	for cycle := 0; cycle < 3; cycle++ {
		seen := make(map[string]bool)
		for i := 0; i < size; i++ {
			song, ok := s.QueryRandomSong(opts)
			require.True(t, ok, "cycle %d draw %d", cycle, i)
			require.False(t, seen[song.Key], "repeated %s before exhaustion", song.Key)
			seen[song.Key] = true

			reset := s.CheckUniqueSongQueue(opts)
			assert.Equal(t, i == size-1, reset, "cycle %d draw %d", cycle, i)
		}
		assert.Len(t, seen, size)
		assert.Empty(t, s.LastPlayed())
	}
}

func TestCheckUniqueSongQueue_NonUnique(t *testing.T) {
	opts := models.DefaultGameOptions()
	opts.Shuffle = models.ShuffleUnique
	s := selectorWithPool(poolOf(30, models.GenderFemale))
	_, ok := s.QueryRandomSong(opts)
	require.True(t, ok)

	played, _ := s.UniqueSongCounter(opts)
	assert.Equal(t, 1, played)

	opts.Shuffle = models.ShuffleRandom
	assert.False(t, s.CheckUniqueSongQueue(opts))
	played, _ = s.UniqueSongCounter(opts)
	assert.Zero(t, played)
	assert.Len(t, s.LastPlayed(), 1)
}

func TestQueryRandomSong_LastPlayed(t *testing.T) {
	opts := models.DefaultGameOptions()

	t.Run("small pool never remembers", func(t *testing.T) {
		s := selectorWithPool(poolOf(10, models.GenderMale))
		for i := 0; i < 30; i++ {
			_, ok := s.QueryRandomSong(opts)
			require.True(t, ok)
			assert.Empty(t, s.LastPlayed())
		}
	})

	t.Run("medium pool halves when full", func(t *testing.T) {
		s := selectorWithPool(poolOf(15, models.GenderMale))
		for i := 0; i < 10; i++ {
			_, ok := s.QueryRandomSong(opts)
			require.True(t, ok)
		}
		assert.Len(t, s.LastPlayed(), 10)

		before := s.LastPlayed()
		song, ok := s.QueryRandomSong(opts)
		require.True(t, ok)
		after := s.LastPlayed()
		// pop one, drop half of the remaining nine, push the new draw
		require.Len(t, after, 6)
		assert.Equal(t, before[5:], after[:5])
		assert.Equal(t, song.Key, after[5])
	})

	t.Run("large pool is a ring", func(t *testing.T) {
		s := selectorWithPool(poolOf(40, models.GenderMale))
		var drawn []string
		for i := 0; i < 25; i++ {
			song, ok := s.QueryRandomSong(opts)
			require.True(t, ok)
			drawn = append(drawn, song.Key)
			assert.LessOrEqual(t, len(s.LastPlayed()), 10)
		}
		assert.Equal(t, drawn[15:], s.LastPlayed())

		// nothing in the ring repeats
		window := make(map[string]bool)
		for _, k := range s.LastPlayed() {
			assert.False(t, window[k])
			window[k] = true
		}
	})
}

func TestCheckAlternatingGender(t *testing.T) {
	s := New(DefaultConfig(), testRand())
	opts := models.DefaultGameOptions()
	opts.Genders = []models.Gender{models.GenderAlternating}

	s.CheckAlternatingGender(opts)
	first := s.LastAlternatingGender()
	require.Contains(t, []models.Gender{models.GenderMale, models.GenderFemale}, first)

	s.CheckAlternatingGender(opts)
	assert.NotEqual(t, first, s.LastAlternatingGender())
	s.CheckAlternatingGender(opts)
	assert.Equal(t, first, s.LastAlternatingGender())

	s.CheckAlternatingGender(models.DefaultGameOptions())
	assert.Equal(t, models.Gender(""), s.LastAlternatingGender())
}

func TestQueryRandomSong_AlternatingNarrows(t *testing.T) {
	s := New(DefaultConfig(), testRand())
	opts := models.DefaultGameOptions()
	opts.Genders = []models.Gender{models.GenderAlternating}
	opts.Release = models.ReleaseAll
	opts.Ost = models.OstInclude
	opts.BeginningYear = 1900
	opts.EndYear = 3000
	s.Reload(generateCatalog(90), opts)

	for i := 0; i < 20; i++ {
		s.CheckAlternatingGender(opts)
		want := s.LastAlternatingGender()
		song, ok := s.QueryRandomSong(opts)
		require.True(t, ok)
		assert.Contains(t, []models.Gender{want, models.GenderCoed}, song.Members)
	}
}

func TestUniqueSongCounter(t *testing.T) {
	s := New(DefaultConfig(), testRand())
	opts := models.DefaultGameOptions()
	opts.Shuffle = models.ShuffleUnique
	opts.Release = models.ReleaseAll
	opts.Ost = models.OstInclude
	opts.BeginningYear = 1900
	opts.EndYear = 3000
	opts.LimitEnd = 50
	s.Reload(generateCatalog(120), opts)

	for i := 0; i < 7; i++ {
		_, ok := s.QueryRandomSong(opts)
		require.True(t, ok)
	}
	played, total := s.UniqueSongCounter(opts)
	assert.Equal(t, 7, played)
	assert.Equal(t, 50, total)
	assert.Equal(t, 50, s.SongCount())
}

func TestUniqueSongCounter_Unbounded(t *testing.T) {
	s := New(DefaultConfig(), testRand())
	opts := models.DefaultGameOptions()
	opts.Shuffle = models.ShuffleUnique
	opts.Release = models.ReleaseAll
	opts.Ost = models.OstInclude
	opts.BeginningYear = 1900
	opts.EndYear = 3000
	opts.LimitStart = 0
	opts.LimitEnd = 0
	s.Reload(generateCatalog(120), opts)

	_, ok := s.QueryRandomSong(opts)
	require.True(t, ok)
	played, total := s.UniqueSongCounter(opts)
	assert.Equal(t, 1, played)
	assert.Positive(t, total)
	assert.Equal(t, s.SongCount(), total)
}
