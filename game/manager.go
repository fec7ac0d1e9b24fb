package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/scoreboard"
)

// Manager 管理所有公会的游戏，每个公会最多一局
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex

	source catalog.Source
	cfg    SessionConfig
	deps   Dependencies
	log    *zap.SugaredLogger
}

// NewManager creates a manager that loads a fresh catalog for every game.
func NewManager(source catalog.Source, cfg SessionConfig, deps Dependencies) *Manager {
	fillDefaults(&deps)
	return &Manager{
		sessions: make(map[string]*Session),
		source:   source,
		cfg:      cfg,
		deps:     deps,
		log:      logger.Named("game"),
	}
}

// Start creates a game for the guild, registers players and opens the first round.
func (m *Manager) Start(ctx context.Context, guildID string, opts models.GameOptions, gameType models.GameType, players []*scoreboard.Player) (*Session, error) {
	if _, exists := m.Get(guildID); exists {
		return nil, ErrSessionExists
	}

	cat, err := m.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	s, err := NewSession(guildID, gameType, opts, cat, m.cfg, m.deps)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if err := s.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	s.onRoundEnded = m.advance

	m.mutex.Lock()
	if _, exists := m.sessions[guildID]; exists {
		m.mutex.Unlock()
		return nil, ErrSessionExists
	}
	m.sessions[guildID] = s
	m.mutex.Unlock()

	m.deps.Metrics.SessionStarted(string(gameType))
	if _, err := s.StartRound(ctx); err != nil {
		m.remove(guildID, s)
		m.deps.Metrics.SessionEnded(string(gameType))
		return nil, err
	}
	return s, nil
}

// Get 获取公会当前的游戏
func (m *Manager) Get(guildID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	s, exists := m.sessions[guildID]
	return s, exists
}

// Join adds a player to a running game.
func (m *Manager) Join(guildID string, p *scoreboard.Player) error {
	s, ok := m.Get(guildID)
	if !ok {
		return ErrSessionNotFound
	}
	return s.AddPlayer(p)
}

// Leave removes a player from a running game.
func (m *Manager) Leave(guildID, playerID string) error {
	s, ok := m.Get(guildID)
	if !ok {
		return ErrSessionNotFound
	}
	if !s.RemovePlayer(playerID) {
		return scoreboard.ErrUnknownPlayer
	}
	return nil
}

// End 结束公会的游戏并移出管理器
func (m *Manager) End(ctx context.Context, guildID string) (*models.GormGameRecord, error) {
	m.mutex.Lock()
	s, exists := m.sessions[guildID]
	delete(m.sessions, guildID)
	m.mutex.Unlock()

	if !exists {
		return nil, ErrSessionNotFound
	}
	return s.End(ctx)
}

func (m *Manager) Guess(guildID, playerID, text string, at time.Time) (bool, error) {
	s, ok := m.Get(guildID)
	if !ok {
		return false, ErrSessionNotFound
	}
	return s.SubmitGuess(playerID, text, at)
}

func (m *Manager) Skip(guildID, playerID string) (bool, error) {
	s, ok := m.Get(guildID)
	if !ok {
		return false, ErrSessionNotFound
	}
	return s.Skip(playerID)
}

func (m *Manager) Hint(guildID, playerID string) (string, bool, error) {
	s, ok := m.Get(guildID)
	if !ok {
		return "", false, ErrSessionNotFound
	}
	return s.RequestHint(playerID)
}

// ActiveSessions returns the number of running games.
func (m *Manager) ActiveSessions() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// Shutdown ends every game.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mutex.RLock()
	guilds := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		guilds = append(guilds, id)
	}
	m.mutex.RUnlock()

	var errs []error
	for _, id := range guilds {
		if _, err := m.End(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) remove(guildID string, s *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.sessions[guildID] == s {
		delete(m.sessions, guildID)
	}
}

// advance runs after every round: it ends a finished game or opens the next round.
func (m *Manager) advance(s *Session, summary RoundSummary) {
	if current, ok := m.Get(s.GuildID); !ok || current != s {
		return
	}
	if summary.GameFinished {
		if _, err := m.End(context.Background(), s.GuildID); err != nil {
			m.log.Errorf("guild %s | failed to end game: %v", s.GuildID, err)
		}
		return
	}

	next := func() { m.nextRound(s) }
	if m.deps.Scheduler != nil && m.cfg.NextRoundDelay > 0 {
		m.deps.Scheduler.After(s.GuildID, m.cfg.NextRoundDelay, next)
		return
	}
	next()
}

func (m *Manager) nextRound(s *Session) {
	if current, ok := m.Get(s.GuildID); !ok || current != s {
		return
	}
	_, err := s.StartRound(context.Background())
	switch {
	case err == nil, errors.Is(err, ErrRoundActive), errors.Is(err, ErrSessionFinished):
	default:
		m.log.Warnf("guild %s | could not start the next round, ending game: %v", s.GuildID, err)
		if _, err := m.End(context.Background(), s.GuildID); err != nil {
			m.log.Errorf("guild %s | failed to end game: %v", s.GuildID, err)
		}
	}
}
