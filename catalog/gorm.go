package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/wfunc/songquiz/models"
)

// GormSource reads the catalog through an existing gorm connection, typically the
// same postgres database the game records live in.
type GormSource struct {
	db             *gorm.DB
	songsPerArtist int
}

func NewGormSource(db *gorm.DB, songsPerArtist int) *GormSource {
	return &GormSource{db: db, songsPerArtist: songsPerArtist}
}

func (s *GormSource) Load(ctx context.Context) (*Catalog, error) {
	q := s.db.WithContext(ctx).Order("views DESC")
	if s.songsPerArtist > 0 {
		q = q.Where("rank <= ?", s.songsPerArtist)
	}

	var songRows []models.GormSong
	if err := q.Find(&songRows).Error; err != nil {
		return nil, err
	}

	var artistRows []models.GormArtist
	if err := s.db.WithContext(ctx).Order("id").Find(&artistRows).Error; err != nil {
		return nil, err
	}

	c := &Catalog{
		Songs:   make([]models.Song, 0, len(songRows)),
		Artists: make([]models.Artist, 0, len(artistRows)),
	}
	for _, r := range songRows {
		c.Songs = append(c.Songs, models.Song{
			Key:              r.Link,
			Name:             r.SongName,
			OriginalName:     r.OriginalSongName,
			HangulName:       r.HangulSongName,
			ArtistName:       r.ArtistName,
			HangulArtistName: r.HangulArtistName,
			ArtistID:         r.ArtistID,
			ParentArtistID:   r.ParentArtistID,
			Members:          models.Gender(r.Members),
			IsSolo:           r.IsSolo,
			PublishDate:      r.PublishedOn,
			Views:            r.Views,
			Tags:             r.Tags,
			VideoType:        r.VideoType,
			Rank:             r.Rank,
		})
	}
	for _, r := range artistRows {
		c.Artists = append(c.Artists, models.Artist{
			ID:              r.ID,
			Name:            r.Name,
			ParentID:        r.ParentID,
			CollabArtistIDs: r.CollabArtistIDs,
		})
	}
	return c, nil
}
