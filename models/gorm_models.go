// models/gorm_models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// GormSong 曲库中的歌曲
type GormSong struct {
	ID               uint      `gorm:"primaryKey"`
	Link             string    `gorm:"uniqueIndex;not null"`
	SongName         string    `gorm:"not null"`
	OriginalSongName string
	HangulSongName   string
	ArtistName       string    `gorm:"not null"`
	HangulArtistName string
	ArtistID         int       `gorm:"index;not null"`
	ParentArtistID   int       `gorm:"index"`
	Members          string    `gorm:"size:16;not null"`
	IsSolo           bool
	PublishedOn      time.Time `gorm:"index"`
	Views            int64     `gorm:"index"`
	Tags             string    `gorm:"size:32"`
	VideoType        string    `gorm:"size:16"`
	Rank             int
}

func (GormSong) TableName() string {
	return "available_songs"
}

// GormArtist 艺人及其子团/合作关系
type GormArtist struct {
	ID              int    `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	ParentID        int    `gorm:"index"`
	CollabArtistIDs []int  `gorm:"serializer:json"`
}

func (GormArtist) TableName() string {
	return "artists"
}

// GormPlayerStats 玩家经验与等级
type GormPlayerStats struct {
	gorm.Model
	UserID      string `gorm:"uniqueIndex;not null"`
	Exp         int64  `gorm:"default:0"`
	Level       int    `gorm:"default:1"`
	GamesPlayed int    `gorm:"default:0"`
	LastActive  time.Time
}

// GormGameRecord 一局游戏的结果
type GormGameRecord struct {
	gorm.Model
	RecordID     string             `gorm:"uniqueIndex;not null"`
	GuildID      string             `gorm:"index;not null"`
	GameType     string             `gorm:"not null"`
	RoundsPlayed int                `gorm:"default:0"`
	Winners      []string           `gorm:"serializer:json"`
	Players      []PlayerGameResult `gorm:"serializer:json"`
	StartedAt    time.Time
	Duration     int `gorm:"default:0"` // 游戏时长(秒)
}

// PlayerGameResult is one participant's line in a game record.
type PlayerGameResult struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Exp    float64 `json:"exp"`
}
