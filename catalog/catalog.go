// Package catalog loads the song catalog the selector filters. The catalog is
// owned by an external store; this package only reads it (and seeds it in tests
// and tooling).
package catalog

import (
	"context"
	"errors"

	"github.com/wfunc/songquiz/models"
)

var ErrUnknownDriver = errors.New("catalog: unknown driver")

// Catalog is an in-memory snapshot of the available songs and artists.
type Catalog struct {
	Songs   []models.Song
	Artists []models.Artist
}

// Source yields catalog snapshots.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Static is a Source over a fixed catalog.
type Static Catalog

func (s *Static) Load(_ context.Context) (*Catalog, error) {
	c := Catalog(*s)
	return &c, nil
}

// SongByKey returns the song with the given stream key.
func (c *Catalog) SongByKey(key string) (models.Song, bool) {
	for _, s := range c.Songs {
		if s.Key == key {
			return s, true
		}
	}
	return models.Song{}, false
}

// SubunitsOf returns the ids of artists whose parent is one of ids.
func (c *Catalog) SubunitsOf(ids []int) []int {
	parents := toSet(ids)
	var out []int
	for _, a := range c.Artists {
		if _, ok := parents[a.ParentID]; ok && a.ParentID != 0 {
			out = append(out, a.ID)
		}
	}
	return out
}

// CollabsContaining returns the ids of collaboration artists that feature any of ids.
func (c *Catalog) CollabsContaining(ids []int) []int {
	members := toSet(ids)
	var out []int
	for _, a := range c.Artists {
		for _, m := range a.CollabArtistIDs {
			if _, ok := members[m]; ok {
				out = append(out, a.ID)
				break
			}
		}
	}
	return out
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
