package selector

import (
	"slices"

	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/models"
)

// FilteredPool is the windowed result of applying GameOptions to the catalog.
// Songs are ordered by descending view count. CountBeforeLimit is the number of
// matching songs before the [LimitStart, LimitEnd) window was applied.
type FilteredPool struct {
	Songs            []models.Song
	CountBeforeLimit int
}

// Keys returns the stream keys of the pool's songs.
func (p FilteredPool) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(p.Songs))
	for _, s := range p.Songs {
		keys[s.Key] = struct{}{}
	}
	return keys
}

type predicate func(models.Song) bool

// GetFilteredSongList narrows the catalog down to the songs matching opts and
// assigns each a selection weight for opts.Shuffle.
func GetFilteredSongList(c *catalog.Catalog, opts models.GameOptions) FilteredPool {
	if opts.ForcePlaySongKey != "" {
		song, ok := c.SongByKey(opts.ForcePlaySongKey)
		if !ok {
			return FilteredPool{}
		}
		song.SelectionWeight = 1
		return FilteredPool{Songs: []models.Song{song}, CountBeforeLimit: 1}
	}

	filters := []predicate{artistFilter(c, opts)}
	if opts.Language == models.LanguageKorean {
		filters = append(filters, func(s models.Song) bool {
			return !s.HasAnyTag(models.ForeignLanguageTags)
		})
	}
	switch opts.Ost {
	case models.OstExclude:
		filters = append(filters, func(s models.Song) bool { return !s.HasTag(models.TagOST) })
	case models.OstExclusive:
		filters = append(filters, func(s models.Song) bool { return s.HasTag(models.TagOST) })
	}
	if opts.Release == models.ReleaseOfficial {
		filters = append(filters, func(s models.Song) bool {
			return s.VideoType == models.VideoTypeMain && !s.HasAnyTag(models.NonOfficialVideoTags)
		})
	}
	filters = append(filters, func(s models.Song) bool {
		year := s.PublishYear()
		return year >= opts.BeginningYear && year <= opts.EndYear
	})

	var matched []models.Song
	for _, song := range c.Songs {
		if matchesAll(song, filters) {
			matched = append(matched, song)
		}
	}

	slices.SortStableFunc(matched, func(a, b models.Song) int {
		switch {
		case a.Views > b.Views:
			return -1
		case a.Views < b.Views:
			return 1
		}
		return 0
	})

	count := len(matched)
	matched = window(matched, opts.LimitStart, opts.LimitEnd)
	assignSelectionWeights(matched, opts.Shuffle)

	return FilteredPool{Songs: matched, CountBeforeLimit: count}
}

func matchesAll(s models.Song, filters []predicate) bool {
	for _, f := range filters {
		if !f(s) {
			return false
		}
	}
	return true
}

// artistFilter is the union of the explicitly included artists and the
// non-excluded artists narrowed by gender/type (or by the selected groups).
func artistFilter(c *catalog.Catalog, opts models.GameOptions) predicate {
	groupsMode := opts.IsGroupsMode()
	withSubunits := opts.Subunits == models.SubunitsInclude

	includes := idSet(opts.IncludeArtistIDs)
	excludes := idSet(opts.ExcludeArtistIDs)
	groups := idSet(opts.GroupArtistIDs)

	var collabs map[int]struct{}
	if withSubunits && groupsMode {
		collabs = idSet(c.CollabsContaining(c.SubunitsOf(opts.GroupArtistIDs)))
	}

	genders := make(map[models.Gender]struct{})
	if opts.IsGenderAlternating() {
		genders[models.GenderMale] = struct{}{}
		genders[models.GenderFemale] = struct{}{}
		genders[models.GenderCoed] = struct{}{}
	} else {
		for _, g := range opts.Genders {
			genders[g] = struct{}{}
		}
	}

	included := func(s models.Song) bool {
		if groupsMode {
			return false
		}
		if has(includes, s.ArtistID) {
			return true
		}
		return withSubunits && s.ParentArtistID != 0 && has(includes, s.ParentArtistID)
	}

	selected := func(s models.Song) bool {
		if has(excludes, s.ArtistID) {
			return false
		}
		if !groupsMode {
			if _, ok := genders[s.Members]; !ok {
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
		if has(groups, s.ArtistID) {
			return true
		}
		if !withSubunits {
			return false
		}
		return (s.ParentArtistID != 0 && has(groups, s.ParentArtistID)) || has(collabs, s.ArtistID)
	}

	return func(s models.Song) bool {
		return included(s) || selected(s)
	}
}

func window(songs []models.Song, start, end int) []models.Song {
	start = max(start, 0)
	if end <= 0 || end > len(songs) {
		end = len(songs)
	}
	if start >= end {
		return nil
	}
	return songs[start:end]
}

func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func has(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}
