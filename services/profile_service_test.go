package services

import (
	"errors"
	"testing"

	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/persistence"
)

// MockStatsStore keeps player stats in memory.
type MockStatsStore struct {
	stats map[string]*models.GormPlayerStats
	err   error
}

func NewMockStatsStore() *MockStatsStore {
	return &MockStatsStore{stats: make(map[string]*models.GormPlayerStats)}
}

func (m *MockStatsStore) LoadPlayerStats(userID string) (*models.GormPlayerStats, error) {
	stats, ok := m.stats[userID]
	if !ok {
		return nil, persistence.ErrRecordNotFound
	}
	copied := *stats
	return &copied, nil
}

func (m *MockStatsStore) UpdatePlayerStats(userID string, fn func(stats *models.GormPlayerStats) error) error {
	if m.err != nil {
		return m.err
	}
	stats := models.GormPlayerStats{UserID: userID, Level: 1}
	if existing, ok := m.stats[userID]; ok {
		stats = *existing
	}
	if err := fn(&stats); err != nil {
		return err
	}
	m.stats[userID] = &stats
	return nil
}

func TestProfileService_ApplyExp(t *testing.T) {
	store := NewMockStatsStore()
	service := NewProfileService(store)

	level, leveledUp, err := service.ApplyExp("player-1", 100)
	if err != nil {
		t.Fatalf("ApplyExp failed: %v", err)
	}
	if level != 1 || leveledUp {
		t.Errorf("Expected level 1 without level up, got %d, %v", level, leveledUp)
	}

	level, leveledUp, err = service.ApplyExp("player-1", 140)
	if err != nil {
		t.Fatalf("ApplyExp failed: %v", err)
	}
	if level != 2 || !leveledUp {
		t.Errorf("Expected level 2 with level up, got %d, %v", level, leveledUp)
	}

	stats := store.stats["player-1"]
	if stats.Exp != 240 || stats.GamesPlayed != 2 {
		t.Errorf("Expected 240 exp over 2 games, got %d over %d", stats.Exp, stats.GamesPlayed)
	}
}

func TestProfileService_ApplyExpErrors(t *testing.T) {
	store := NewMockStatsStore()
	service := NewProfileService(store)

	if _, _, err := service.ApplyExp("player-1", -5); !errors.Is(err, ErrNegativeExp) {
		t.Errorf("Expected ErrNegativeExp, got %v", err)
	}

	store.err = errors.New("connection reset")
	if _, _, err := service.ApplyExp("player-1", 5); !errors.Is(err, store.err) {
		t.Errorf("Expected the store error, got %v", err)
	}
}

func TestProfileService_GetProfile(t *testing.T) {
	store := NewMockStatsStore()
	service := NewProfileService(store)

	profile, err := service.GetProfile("new-player")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Level != 1 || profile.NextLevelExp != 240 {
		t.Errorf("Expected a level 1 profile needing 240 exp, got %+v", profile)
	}

	if _, _, err := service.ApplyExp("player-1", 730); err != nil {
		t.Fatalf("ApplyExp failed: %v", err)
	}
	profile, err = service.GetProfile("player-1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile.Level != 3 || profile.Exp != 730 || profile.GamesPlayed != 1 {
		t.Errorf("Expected level 3 with 730 exp and 1 game, got %+v", profile)
	}
}
