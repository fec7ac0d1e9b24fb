package game

import (
	"context"
	"errors"
	"testing"

	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/scoreboard"
)

// MockSource counts catalog loads.
type MockSource struct {
	loads int
	err   error
}

func (m *MockSource) Load(ctx context.Context) (*catalog.Catalog, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return testCatalog(), nil
}

func testPlayers(ids ...string) []*scoreboard.Player {
	players := make([]*scoreboard.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, scoreboard.NewPlayer(id, "name-"+id, "", false))
	}
	return players
}

func TestManager_StartAndGet(t *testing.T) {
	m := NewManager(&MockSource{}, SessionConfig{}, testDeps())

	s, err := m.Start(context.Background(), "guild-1", singleGuessOptions(), models.GameTypeClassic, testPlayers("a", "b"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got, ok := m.Get("guild-1"); !ok || got != s {
		t.Error("Get should return the started session")
	}
	if s.Snapshot().Phase != PhaseRoundActive {
		t.Errorf("Expected the first round to be open, got %s", s.Snapshot().Phase)
	}

	_, err = m.Start(context.Background(), "guild-1", singleGuessOptions(), models.GameTypeClassic, nil)
	if !errors.Is(err, ErrSessionExists) {
		t.Errorf("Expected ErrSessionExists, got %v", err)
	}
	if m.ActiveSessions() != 1 {
		t.Errorf("Expected 1 active session, got %d", m.ActiveSessions())
	}
}

func TestManager_StartFailures(t *testing.T) {
	loadErr := errors.New("catalog offline")
	m := NewManager(&MockSource{err: loadErr}, SessionConfig{}, testDeps())
	if _, err := m.Start(context.Background(), "guild-1", singleGuessOptions(), models.GameTypeClassic, nil); !errors.Is(err, loadErr) {
		t.Errorf("Expected the load error, got %v", err)
	}

	m = NewManager(&MockSource{}, SessionConfig{}, testDeps())
	opts := singleGuessOptions()
	opts.ForcePlaySongKey = "missing"
	if _, err := m.Start(context.Background(), "guild-1", opts, models.GameTypeClassic, nil); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("Expected ErrEmptyPool, got %v", err)
	}
	if m.ActiveSessions() != 0 {
		t.Errorf("A failed start should not leave a session behind, got %d", m.ActiveSessions())
	}
}

func TestManager_GuessAdvancesRound(t *testing.T) {
	m := NewManager(&MockSource{}, SessionConfig{}, testDeps())
	s, err := m.Start(context.Background(), "guild-1", singleGuessOptions(), models.GameTypeClassic, testPlayers("a"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	s.mutex.Lock()
	name, at := s.round.SongName, s.round.StartedAt
	s.mutex.Unlock()

	correct, err := m.Guess("guild-1", "a", name, at)
	if err != nil || !correct {
		t.Fatalf("Expected a correct guess, got %v, %v", correct, err)
	}

	snap := s.Snapshot()
	if snap.RoundNumber != 2 || snap.Phase != PhaseRoundActive {
		t.Errorf("Expected round 2 to be open, got round %d in %s", snap.RoundNumber, snap.Phase)
	}
}

func TestManager_GoalEndsGame(t *testing.T) {
	recorder := &MockRecorder{}
	deps := testDeps()
	deps.Recorder = recorder
	m := NewManager(&MockSource{}, SessionConfig{}, deps)

	opts := singleGuessOptions()
	opts.Goal = 1
	s, err := m.Start(context.Background(), "guild-1", opts, models.GameTypeClassic, testPlayers("a", "b"))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	s.mutex.Lock()
	name, at := s.round.SongName, s.round.StartedAt
	s.mutex.Unlock()

	if _, err := m.Guess("guild-1", "b", name, at); err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if _, ok := m.Get("guild-1"); ok {
		t.Error("Reaching the goal should end and remove the game")
	}
	if len(recorder.records) != 1 || recorder.records[0].Winners[0] != "name-b" {
		t.Errorf("Expected a record won by b, got %+v", recorder.records)
	}
}

func TestManager_NotFound(t *testing.T) {
	m := NewManager(&MockSource{}, SessionConfig{}, testDeps())

	if _, err := m.Guess("nowhere", "a", "gee", testNow); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if _, err := m.Skip("nowhere", "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if _, err := m.End(context.Background(), "nowhere"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Join("nowhere", scoreboard.NewPlayer("a", "A", "", false)); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_JoinLeaveAndShutdown(t *testing.T) {
	m := NewManager(&MockSource{}, SessionConfig{}, testDeps())
	for _, guild := range []string{"guild-1", "guild-2"} {
		if _, err := m.Start(context.Background(), guild, singleGuessOptions(), models.GameTypeClassic, testPlayers("a")); err != nil {
			t.Fatalf("Start(%s) failed: %v", guild, err)
		}
	}

	if err := m.Join("guild-1", scoreboard.NewPlayer("b", "B", "", false)); err != nil {
		t.Errorf("Join failed: %v", err)
	}
	if err := m.Leave("guild-1", "b"); err != nil {
		t.Errorf("Leave failed: %v", err)
	}
	if err := m.Leave("guild-1", "b"); !errors.Is(err, scoreboard.ErrUnknownPlayer) {
		t.Errorf("Expected ErrUnknownPlayer, got %v", err)
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	if m.ActiveSessions() != 0 {
		t.Errorf("Expected no sessions after shutdown, got %d", m.ActiveSessions())
	}
}
