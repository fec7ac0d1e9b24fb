// Package game runs one song quiz per guild: it draws songs, opens rounds,
// resolves guesses against the scoreboard and ends the game.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/exp"
	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/network"
	"github.com/wfunc/songquiz/round"
	"github.com/wfunc/songquiz/scoreboard"
	"github.com/wfunc/songquiz/selector"
)

var (
	ErrEmptyPool        = errors.New("game: no songs match these options")
	ErrSessionExists    = errors.New("game: a game is already running in this guild")
	ErrSessionNotFound  = errors.New("game: no game in this guild")
	ErrNoActiveRound    = errors.New("game: no active round")
	ErrRoundActive      = errors.New("game: a round is already active")
	ErrPlayerEliminated = errors.New("game: player is eliminated")
	ErrSessionFinished  = errors.New("game: game has finished")
	ErrUnknownGameType  = errors.New("game: unknown game type")
)

// Broadcaster pushes events to the clients of a guild.
// Defined here to break the import cycle between game and broadcast.
type Broadcaster interface {
	BroadcastToGuild(guildID string, msgID uint16, data []byte) error
}

// Recorder persists finished games.
type Recorder interface {
	SaveGameRecord(record *models.GormGameRecord) error
}

// Profiles applies session exp to a player's persistent profile.
type Profiles interface {
	ApplyExp(userID string, exp int64) (level int, leveledUp bool, err error)
}

// Metrics receives game counters.
type Metrics interface {
	SessionStarted(gameType string)
	SessionEnded(gameType string)
	RoundStarted()
	CorrectGuess(place int)
	ObserveExp(exp int64)
	ObserveGuessLatency(ms int64)
}

// Scheduler runs delayed callbacks; every task of a session uses the guild id as key.
type Scheduler interface {
	After(key string, delay time.Duration, fn func()) int64
	Cancel(id int64)
	CancelKey(key string)
}

// Dependencies are the collaborators of a session. Every field is optional.
type Dependencies struct {
	Broadcaster Broadcaster
	Recorder    Recorder
	Profiles    Profiles
	Metrics     Metrics
	Scheduler   Scheduler

	Aliases *round.Aliases
	// BonusArtists are artist names worth the bonus artist modifier.
	BonusArtists map[string]struct{}
	BonusHours   exp.BonusHours
	// VoteBonus reports whether a player has an active vote bonus.
	VoteBonus func(playerID string) bool

	Rng *rand.Rand
	Now func() time.Time
}

// SessionConfig holds the timings and defaults of a session.
type SessionConfig struct {
	Selector         selector.Config
	RoundTimeout     time.Duration
	MultiGuessDelay  time.Duration
	NextRoundDelay   time.Duration
	EliminationLives int
}

// GuessOutcome is one credited guesser of a finished round.
type GuessOutcome struct {
	PlayerID string
	Points   int
	Exp      int64
}

// RoundSummary describes a round that just ended.
type RoundSummary struct {
	RoundID      string
	RoundNumber  int
	Song         models.Song
	SkipAchieved bool
	Guessers     []GuessOutcome
	// GameFinished is true when the scoreboard says the game is over.
	GameFinished bool
}

// Session 一个公会的一局游戏。所有修改操作都由 mutex 串行化。
type Session struct {
	GuildID   string
	GameType  models.GameType
	Options   models.GameOptions
	RecordID  string
	StartedAt time.Time

	cfg  SessionConfig
	deps Dependencies
	log  *zap.SugaredLogger
	rng  *rand.Rand

	mutex       sync.Mutex
	phase       *PhaseMachine
	catalog     *catalog.Catalog
	selector    *selector.SongSelector
	board       scoreboard.Scoreboard
	round       *round.GameRound
	roundNumber int
	roundTimer  int64
	guessTimer  int64
	lastGuesser string
	streak      int
	record      *models.GormGameRecord

	onRoundEnded func(s *Session, summary RoundSummary)
}

// NewSession creates a session and filters the catalog for opts. It fails with
// ErrEmptyPool when no song matches.
func NewSession(guildID string, gameType models.GameType, opts models.GameOptions, cat *catalog.Catalog, cfg SessionConfig, deps Dependencies) (*Session, error) {
	board, err := newBoard(gameType, opts, cfg)
	if err != nil {
		return nil, err
	}
	fillDefaults(&deps)

	s := &Session{
		GuildID:   guildID,
		GameType:  gameType,
		Options:   opts,
		RecordID:  uuid.NewString(),
		StartedAt: deps.Now(),
		cfg:       cfg,
		deps:      deps,
		log:       logger.Named("game"),
		rng:       deps.Rng,
		phase:     NewPhaseMachine(),
		catalog:   cat,
		selector:  selector.New(cfg.Selector, deps.Rng),
		board:     board,
	}

	pool := s.selector.Reload(cat, opts)
	if len(pool.Songs) == 0 {
		return nil, ErrEmptyPool
	}
	s.log.Infof("guild %s | %s game created, %d songs (%d before limit)", guildID, gameType, len(pool.Songs), pool.CountBeforeLimit)
	return s, nil
}

func newBoard(gameType models.GameType, opts models.GameOptions, cfg SessionConfig) (scoreboard.Scoreboard, error) {
	switch gameType {
	case models.GameTypeClassic, "":
		return scoreboard.NewStandard(opts.Goal), nil
	case models.GameTypeElimination:
		lives := opts.Lives
		if lives <= 0 {
			lives = cfg.EliminationLives
		}
		return scoreboard.NewElimination(lives), nil
	case models.GameTypeTeams:
		return scoreboard.NewTeam(opts.Goal), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownGameType, gameType)
}

func fillDefaults(d *Dependencies) {
	if d.Broadcaster == nil {
		d.Broadcaster = nopBroadcaster{}
	}
	if d.Recorder == nil {
		d.Recorder = nopRecorder{}
	}
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.VoteBonus == nil {
		d.VoteBonus = func(string) bool { return false }
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Rng == nil {
		d.Rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	}
}

// AddPlayer 加入玩家，团队模式下按 p.TeamName 分队
func (s *Session) AddPlayer(p *scoreboard.Player) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.phase.Current() == PhaseFinished {
		return ErrSessionFinished
	}
	return s.board.RegisterPlayer(p)
}

// RemovePlayer 移除离开的玩家
func (s *Session) RemovePlayer(playerID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.board.RemovePlayer(playerID)
}

// UpdateOptions refilters the catalog for new options; they apply from the next
// round. The old options stay in effect when nothing matches the new ones.
func (s *Session) UpdateOptions(opts models.GameOptions) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	pool := s.selector.Reload(s.catalog, opts)
	if len(pool.Songs) == 0 {
		s.selector.Reload(s.catalog, s.Options)
		return 0, ErrEmptyPool
	}
	s.Options = opts
	return len(pool.Songs), nil
}

// StartRound draws the next song and opens a round for it.
func (s *Session) StartRound(ctx context.Context) (*round.GameRound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch s.phase.Current() {
	case PhaseFinished:
		return nil, ErrSessionFinished
	case PhaseRoundActive:
		return nil, ErrRoundActive
	}

	s.selector.CheckAlternatingGender(s.Options)
	song, ok := s.selector.QueryRandomSong(s.Options)
	if !ok {
		// every candidate is remembered; forget them and draw again
		s.selector.ResetUniqueSongs()
		song, ok = s.selector.QueryRandomSong(s.Options)
		if !ok {
			return nil, ErrEmptyPool
		}
	}
	if s.selector.CheckUniqueSongQueue(s.Options) {
		s.log.Infof("guild %s | every song of the pool was played, unique queue reset", s.GuildID)
	}

	_, bonusArtist := s.deps.BonusArtists[song.ArtistName]
	r := round.New(song, round.Params{
		Aliases:       s.deps.Aliases,
		BaseExp:       exp.BaseExp(s.selector.SongCount(), s.rng),
		BonusModifier: exp.RandomRoundBonus(s.rng),
		BonusArtist:   bonusArtist,
		Now:           s.deps.Now(),
		Rng:           s.rng,
	})
	if err := s.phase.ChangePhase(PhaseRoundActive); err != nil {
		return nil, err
	}
	s.round = r
	s.roundNumber++

	if s.deps.Scheduler != nil && s.cfg.RoundTimeout > 0 {
		id := r.ID
		s.roundTimer = s.deps.Scheduler.After(s.GuildID, s.cfg.RoundTimeout, func() { s.closeIfCurrent(id) })
	}
	s.deps.Metrics.RoundStarted()

	s.broadcast(network.MsgTypeRoundStarted, network.RoundStartedEvent{
		RoundID:     r.ID,
		RoundNumber: s.roundNumber,
		SongCount:   s.selector.SongCount(),
	})
	s.log.Debugf("guild %s | round %d started with %s (bonus x%.0f)", s.GuildID, s.roundNumber, r.Key, r.BonusModifier)
	return r, nil
}

// SubmitGuess checks a guess against the active round. The first correct guess
// closes the round, or opens the multi-guess window when enabled.
func (s *Session) SubmitGuess(playerID, text string, at time.Time) (bool, error) {
	s.mutex.Lock()
	r := s.round
	if r == nil || r.Finished {
		s.mutex.Unlock()
		return false, ErrNoActiveRound
	}
	if _, ok := s.board.Player(playerID); !ok {
		s.mutex.Unlock()
		return false, fmt.Errorf("guild %s: %w: %s", s.GuildID, scoreboard.ErrUnknownPlayer, playerID)
	}
	if s.isEliminated(playerID) {
		s.mutex.Unlock()
		return false, ErrPlayerEliminated
	}
	if r.IsCorrectGuesser(playerID) {
		s.mutex.Unlock()
		return false, nil
	}

	points := r.CheckGuess(text, s.Options.GuessMode, s.Options.TyposAllowed())
	if points == 0 {
		s.mutex.Unlock()
		return false, nil
	}
	r.UserCorrect(playerID, points, at)
	s.deps.Metrics.ObserveGuessLatency(r.ElapsedMs(at))

	var summary *RoundSummary
	if len(r.CorrectGuessers()) == 1 {
		if s.Options.MultiGuess && s.cfg.MultiGuessDelay > 0 && s.deps.Scheduler != nil {
			id := r.ID
			s.guessTimer = s.deps.Scheduler.After(s.GuildID, s.cfg.MultiGuessDelay, func() { s.closeIfCurrent(id) })
		} else {
			summary = s.closeRoundLocked()
		}
	}
	s.mutex.Unlock()

	s.notifyRoundEnded(summary)
	return true, nil
}

// Skip records a skip vote. The round ends once a majority of the players still
// in the game voted.
func (s *Session) Skip(playerID string) (bool, error) {
	s.mutex.Lock()
	r := s.round
	if r == nil || r.Finished {
		s.mutex.Unlock()
		return false, ErrNoActiveRound
	}
	if _, ok := s.board.Player(playerID); !ok {
		s.mutex.Unlock()
		return false, fmt.Errorf("guild %s: %w: %s", s.GuildID, scoreboard.ErrUnknownPlayer, playerID)
	}

	r.UserSkipped(playerID)
	var summary *RoundSummary
	if r.CheckSkip(s.activePlayers()) {
		s.log.Infof("guild %s | skip achieved (%d votes)", s.GuildID, r.NumSkippers())
		summary = s.closeRoundLocked()
	}
	s.mutex.Unlock()

	s.notifyRoundEnded(summary)
	return summary != nil, nil
}

// RequestHint records a hint request. Once a majority asked, the hint is
// revealed and the round's exp is halved.
func (s *Session) RequestHint(playerID string) (string, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	r := s.round
	if r == nil || r.Finished {
		return "", false, ErrNoActiveRound
	}
	if _, ok := s.board.Player(playerID); !ok {
		return "", false, fmt.Errorf("guild %s: %w: %s", s.GuildID, scoreboard.ErrUnknownPlayer, playerID)
	}

	r.HintRequested(playerID)
	if !r.CheckHint(s.activePlayers()) {
		return "", false, nil
	}
	hint := r.Hint(s.Options.GuessMode)
	s.broadcast(network.MsgTypeHintReply, network.HintReplyEvent{Hint: hint, Used: true})
	return hint, true, nil
}

// CloseRound ends the active round, crediting whoever guessed so far.
func (s *Session) CloseRound() (RoundSummary, error) {
	s.mutex.Lock()
	summary := s.closeRoundLocked()
	s.mutex.Unlock()

	if summary == nil {
		return RoundSummary{}, ErrNoActiveRound
	}
	s.notifyRoundEnded(summary)
	return *summary, nil
}

// closeIfCurrent is the timer callback; it ignores timers of earlier rounds.
func (s *Session) closeIfCurrent(roundID string) {
	s.mutex.Lock()
	if s.round == nil || s.round.ID != roundID {
		s.mutex.Unlock()
		return
	}
	summary := s.closeRoundLocked()
	s.mutex.Unlock()

	s.notifyRoundEnded(summary)
}

func (s *Session) notifyRoundEnded(summary *RoundSummary) {
	if summary != nil && s.onRoundEnded != nil {
		s.onRoundEnded(s, *summary)
	}
}

// closeRoundLocked finishes the round and resolves its guessers as one batch.
// It returns nil when there was nothing to close.
func (s *Session) closeRoundLocked() *RoundSummary {
	r := s.round
	if r == nil || !r.Finish() {
		return nil
	}
	if s.deps.Scheduler != nil {
		s.deps.Scheduler.Cancel(s.roundTimer)
		s.deps.Scheduler.Cancel(s.guessTimer)
	}

	guessers := r.CorrectGuessers()
	if len(guessers) == 0 {
		s.lastGuesser, s.streak = "", 0
	} else if guessers[0].PlayerID == s.lastGuesser {
		s.streak++
	} else {
		s.lastGuesser, s.streak = guessers[0].PlayerID, 1
	}

	participants := s.board.NumPlayers()
	if s.GameType == models.GameTypeTeams {
		// team games scale by the distinct guessers of this round
		distinct := make(map[string]struct{}, len(guessers))
		for _, g := range guessers {
			distinct[g.PlayerID] = struct{}{}
		}
		participants = len(distinct)
	}
	powerHour := s.deps.BonusHours.Active()

	results := make([]scoreboard.GuessResult, 0, len(guessers))
	outcomes := make([]GuessOutcome, 0, len(guessers))
	for i, g := range guessers {
		p, _ := s.board.Player(g.PlayerID)
		options := exp.OptionsMultiplier(exp.OptionsModifiers(exp.OptionsContext{
			Options:        s.Options,
			VoteBonus:      s.deps.VoteBonus(g.PlayerID),
			FirstGameOfDay: p.FirstGameOfDay,
			PowerHour:      powerHour,
			SongCount:      s.selector.SongCount(),
		}))
		gain := exp.ComputeRoundExperience(options, exp.RoundContext{
			Participants:  participants,
			Streak:        s.streak,
			GuessMs:       r.ElapsedMs(g.At),
			Place:         i + 1,
			BonusArtist:   r.BonusArtist,
			BonusModifier: r.BonusModifier,
		}, r.ExpReward())

		results = append(results, scoreboard.GuessResult{PlayerID: g.PlayerID, PointsEarned: g.Points, ExpGain: float64(gain)})
		outcomes = append(outcomes, GuessOutcome{PlayerID: g.PlayerID, Points: g.Points, Exp: gain})
	}

	if err := s.board.Resolve(results); err != nil {
		s.log.Errorf("guild %s | round %s ended without a winner: %v", s.GuildID, r.Key, err)
		outcomes = nil
	}
	for i, o := range outcomes {
		s.deps.Metrics.CorrectGuess(i + 1)
		s.deps.Metrics.ObserveExp(o.Exp)
		s.log.Infof("guild %s | song correctly guessed by %s (place %d), gaining %s exp", s.GuildID, o.PlayerID, i+1, humanize.Comma(o.Exp))
	}
	if len(outcomes) == 0 && !r.SkipAchieved {
		s.log.Infof("guild %s | nobody guessed %s", s.GuildID, r.Key)
	}

	if err := s.phase.ChangePhase(PhaseRoundEnded); err != nil {
		s.log.Warnf("guild %s | %v", s.GuildID, err)
	}

	summary := &RoundSummary{
		RoundID:      r.ID,
		RoundNumber:  s.roundNumber,
		Song:         r.Song,
		SkipAchieved: r.SkipAchieved,
		Guessers:     outcomes,
		GameFinished: s.board.IsFinished(),
	}

	events := make([]network.GuessEvent, 0, len(outcomes))
	for _, o := range outcomes {
		events = append(events, network.GuessEvent{PlayerID: o.PlayerID, Points: o.Points, Exp: o.Exp})
	}
	s.broadcast(network.MsgTypeRoundEnded, network.RoundEndedEvent{
		RoundID:      r.ID,
		SongName:     r.SongName,
		ArtistName:   r.ArtistName,
		Key:          r.Key,
		PublishYear:  r.PublishYear,
		SkipAchieved: r.SkipAchieved,
		Guessers:     events,
	})
	s.broadcast(network.MsgTypeScoreboard, s.scoreboardEventLocked(summary.GameFinished))
	return summary
}

// End finishes the game and persists its record. Calling End again returns the
// same record.
func (s *Session) End(ctx context.Context) (*models.GormGameRecord, error) {
	s.mutex.Lock()
	if s.record != nil {
		rec := s.record
		s.mutex.Unlock()
		return rec, nil
	}

	s.closeRoundLocked()
	if s.deps.Scheduler != nil {
		s.deps.Scheduler.CancelKey(s.GuildID)
	}
	if err := s.phase.ChangePhase(PhaseFinished); err != nil {
		s.log.Warnf("guild %s | %v", s.GuildID, err)
	}

	rec := s.buildRecordLocked()
	s.record = rec
	s.broadcast(network.MsgTypeGameEnded, network.GameEndedEvent{
		RecordID: rec.RecordID,
		Winners:  rec.Winners,
		Rounds:   rec.RoundsPlayed,
	})
	s.mutex.Unlock()

	s.deps.Metrics.SessionEnded(string(s.GameType))

	var errs []error
	if err := s.deps.Recorder.SaveGameRecord(rec); err != nil {
		s.log.Errorf("guild %s | failed to save game record: %v", s.GuildID, err)
		errs = append(errs, err)
	}
	if s.deps.Profiles != nil {
		for _, p := range rec.Players {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				break
			}
			gained := int64(p.Exp)
			if gained <= 0 {
				continue
			}
			level, leveledUp, err := s.deps.Profiles.ApplyExp(p.UserID, gained)
			if err != nil {
				s.log.Errorf("guild %s | failed to apply exp for %s: %v", s.GuildID, p.UserID, err)
				errs = append(errs, err)
				continue
			}
			if leveledUp {
				s.log.Infof("guild %s | %s reached level %d", s.GuildID, p.Name, level)
			}
		}
	}

	s.log.Infof("guild %s | game ended after %d rounds, winners %v", s.GuildID, rec.RoundsPlayed, rec.Winners)
	return rec, errors.Join(errs...)
}

func (s *Session) buildRecordLocked() *models.GormGameRecord {
	now := s.deps.Now()
	teams, isTeam := s.board.(*scoreboard.TeamScoreboard)

	players := s.board.Players()
	results := make([]models.PlayerGameResult, 0, len(players))
	for _, p := range players {
		gained := p.Exp
		if isTeam {
			gained *= teams.ExpMultiplier(p.ID)
		}
		results = append(results, models.PlayerGameResult{
			UserID: p.ID,
			Name:   p.Name,
			Score:  p.Score,
			Exp:    gained,
		})
		s.log.Debugf("guild %s | %s finished with %d and %s exp", s.GuildID, p.Name, p.Score, humanize.Comma(int64(gained)))
	}

	var winners []string
	for _, w := range s.board.Winners() {
		winners = append(winners, w.Name)
	}

	return &models.GormGameRecord{
		RecordID:     s.RecordID,
		GuildID:      s.GuildID,
		GameType:     string(s.GameType),
		RoundsPlayed: s.roundNumber,
		Winners:      winners,
		Players:      results,
		StartedAt:    s.StartedAt,
		Duration:     int(now.Sub(s.StartedAt).Seconds()),
	}
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	GuildID     string
	GameType    models.GameType
	Phase       Phase
	RoundNumber int
	RoundID     string
	SongCount   int
	Standings   []scoreboard.Standing
	Winners     []scoreboard.Standing
	Players     []scoreboard.Player
	Finished    bool
}

func (s *Session) Snapshot() Snapshot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snap := Snapshot{
		GuildID:     s.GuildID,
		GameType:    s.GameType,
		Phase:       s.phase.Current(),
		RoundNumber: s.roundNumber,
		SongCount:   s.selector.SongCount(),
		Standings:   s.board.Standings(),
		Winners:     s.board.Winners(),
		Players:     s.board.Players(),
		Finished:    s.phase.Current() == PhaseFinished || s.board.IsFinished(),
	}
	if s.round != nil {
		snap.RoundID = s.round.ID
	}
	return snap
}

// IsFinished reports whether the game has ended or its scoreboard says it should.
func (s *Session) IsFinished() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.phase.Current() == PhaseFinished || s.board.IsFinished()
}

// UniqueSongCounter reports progress through the pool under unique shuffle.
func (s *Session) UniqueSongCounter() (played, total int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selector.UniqueSongCounter(s.Options)
}

func (s *Session) isEliminated(playerID string) bool {
	e, ok := s.board.(*scoreboard.Elimination)
	return ok && e.IsPlayerEliminated(playerID)
}

// activePlayers counts the players who can still vote.
func (s *Session) activePlayers() int {
	e, ok := s.board.(*scoreboard.Elimination)
	if !ok {
		return s.board.NumPlayers()
	}
	alive := 0
	for _, p := range e.Players() {
		if !p.IsEliminated() {
			alive++
		}
	}
	return alive
}

func (s *Session) scoreboardEventLocked(finished bool) network.ScoreboardEvent {
	return network.ScoreboardEvent{
		GuildID:   s.GuildID,
		Standings: toPayload(s.board.Standings()),
		Winners:   toPayload(s.board.Winners()),
		Finished:  finished,
	}
}

func toPayload(standings []scoreboard.Standing) []network.StandingPayload {
	out := make([]network.StandingPayload, 0, len(standings))
	for _, st := range standings {
		out = append(out, network.StandingPayload{ID: st.ID, Name: st.Name, Score: st.Score, Members: st.Members})
	}
	return out
}

func (s *Session) broadcast(msgID uint16, payload any) {
	data, err := network.Encode(payload)
	if err != nil {
		s.log.Errorf("guild %s | failed to encode message %d: %v", s.GuildID, msgID, err)
		return
	}
	if err := s.deps.Broadcaster.BroadcastToGuild(s.GuildID, msgID, data); err != nil {
		s.log.Debugf("guild %s | broadcast %d: %v", s.GuildID, msgID, err)
	}
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToGuild(string, uint16, []byte) error { return nil }

type nopRecorder struct{}

func (nopRecorder) SaveGameRecord(*models.GormGameRecord) error { return nil }

type nopMetrics struct{}

func (nopMetrics) SessionStarted(string)     {}
func (nopMetrics) SessionEnded(string)       {}
func (nopMetrics) RoundStarted()             {}
func (nopMetrics) CorrectGuess(int)          {}
func (nopMetrics) ObserveExp(int64)          {}
func (nopMetrics) ObserveGuessLatency(int64) {}
