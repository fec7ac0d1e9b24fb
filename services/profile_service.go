// services/profile_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/wfunc/songquiz/exp"
	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/persistence"
)

var ErrNegativeExp = errors.New("exp gain must not be negative")

// StatsStore is the part of persistence.Database the profile service needs.
type StatsStore interface {
	LoadPlayerStats(userID string) (*models.GormPlayerStats, error)
	UpdatePlayerStats(userID string, fn func(stats *models.GormPlayerStats) error) error
}

// Profile 玩家的等级信息
type Profile struct {
	UserID       string
	Exp          int64
	Level        int
	GamesPlayed  int
	NextLevelExp int64
}

type ProfileService struct {
	store StatsStore
}

func NewProfileService(store StatsStore) *ProfileService {
	return &ProfileService{store: store}
}

// ApplyExp 在事务中累加一局游戏获得的经验并重新计算等级
func (s *ProfileService) ApplyExp(userID string, gained int64) (int, bool, error) {
	if gained < 0 {
		return 0, false, fmt.Errorf("%w: %d", ErrNegativeExp, gained)
	}

	var level int
	var leveledUp bool
	err := s.store.UpdatePlayerStats(userID, func(stats *models.GormPlayerStats) error {
		before := exp.LevelForExp(stats.Exp)
		stats.Exp += gained
		stats.Level = exp.LevelForExp(stats.Exp)
		stats.GamesPlayed++

		level = stats.Level
		leveledUp = stats.Level > before
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	if leveledUp {
		logger.Log.Infof("player %s leveled up to %d", userID, level)
	}
	return level, leveledUp, nil
}

// GetProfile 获取玩家等级信息，没有记录的玩家视为 1 级
func (s *ProfileService) GetProfile(userID string) (Profile, error) {
	stats, err := s.store.LoadPlayerStats(userID)
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return Profile{UserID: userID, Level: 1, NextLevelExp: exp.ExpForLevel(2)}, nil
	}
	if err != nil {
		return Profile{}, err
	}

	level := exp.LevelForExp(stats.Exp)
	return Profile{
		UserID:       userID,
		Exp:          stats.Exp,
		Level:        level,
		GamesPlayed:  stats.GamesPlayed,
		NextLevelExp: exp.ExpForLevel(level + 1),
	}, nil
}
