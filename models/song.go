package models

import (
	"strings"
	"time"
)

// Tag letters carried by catalog songs.
const (
	TagOST = 'o'
)

// ForeignLanguageTags mark songs not sung in Korean (chinese, japanese, english, spanish).
var ForeignLanguageTags = []rune{'z', 'j', 'e', 's'}

// NonOfficialVideoTags mark covers, dance practices, acoustic and other non-main videos.
var NonOfficialVideoTags = []rune{'c', 'd', 'a', 'r', 'v', 'x', 'p'}

// VideoTypeMain is the video type of an official music video.
const VideoTypeMain = "main"

// Song is a read-only catalog entry. SelectionWeight is assigned by the song
// selector for the pool it belongs to and is never stored.
type Song struct {
	Key              string
	Name             string
	OriginalName     string
	HangulName       string
	ArtistName       string
	HangulArtistName string
	ArtistID         int
	ParentArtistID   int
	Members          Gender
	IsSolo           bool
	PublishDate      time.Time
	Views            int64
	Tags             string
	VideoType        string
	Rank             int

	SelectionWeight float64
}

func (s Song) HasTag(tag rune) bool {
	return strings.ContainsRune(s.Tags, tag)
}

func (s Song) HasAnyTag(tags []rune) bool {
	for _, t := range tags {
		if s.HasTag(t) {
			return true
		}
	}
	return false
}

func (s Song) PublishYear() int {
	return s.PublishDate.Year()
}

// Artist is a catalog artist. CollabArtistIDs lists the member artists of a
// collaboration entry; it is empty for regular artists.
type Artist struct {
	ID              int
	Name            string
	ParentID        int
	CollabArtistIDs []int
}
