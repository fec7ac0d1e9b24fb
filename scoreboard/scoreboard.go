// Package scoreboard keeps per-session scores for the three game modes. All
// variants share one contract: register players, resolve a batch of correct
// guesses atomically, report the leaders and whether the game is over.
package scoreboard

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlayer = errors.New("scoreboard: unknown player")
	ErrPlayerExists  = errors.New("scoreboard: player already registered")
	ErrNoTeam        = errors.New("scoreboard: player has no team")
)

// GuessResult is one correct guesser of a round.
type GuessResult struct {
	PlayerID     string
	PointsEarned int
	ExpGain      float64
}

// Standing is one entry of the scoreboard: a player, or a team in team mode.
type Standing struct {
	ID      string
	Name    string
	Score   int
	Members []string
}

// Scoreboard is implemented by Standard, Elimination and TeamScoreboard.
type Scoreboard interface {
	RegisterPlayer(p *Player) error
	RemovePlayer(id string) bool
	// Resolve applies every correct guess of one round. The whole batch is
	// validated first; on error nothing is applied.
	Resolve(results []GuessResult) error
	// Winners returns the entries tied for the best standing, in registration order.
	Winners() []Standing
	Standings() []Standing
	IsFinished() bool

	Player(id string) (Player, bool)
	Players() []Player
	NumPlayers() int
}

// leaderTracker caches the leaders of a scoreboard.
type leaderTracker struct {
	leaders []Standing
	best    int
}

// recompute walks entries once, keeping a running best. An entry equal to the
// running best ties in; a strictly better one replaces the leader set.
func (lt *leaderTracker) recompute(entries []Standing, better func(a, b int) bool) {
	lt.leaders = lt.leaders[:0]
	for i, e := range entries {
		switch {
		case i == 0 || better(e.Score, lt.best):
			lt.best = e.Score
			lt.leaders = append(lt.leaders[:0], e)
		case e.Score == lt.best:
			lt.leaders = append(lt.leaders, e)
		}
	}
	if len(entries) == 0 {
		lt.best = 0
	}
}

func (lt *leaderTracker) winners() []Standing {
	out := make([]Standing, len(lt.leaders))
	copy(out, lt.leaders)
	return out
}

func higher(a, b int) bool { return a > b }

func unknownPlayer(id string) error {
	return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
}

var (
	_ Scoreboard = (*Standard)(nil)
	_ Scoreboard = (*Elimination)(nil)
	_ Scoreboard = (*TeamScoreboard)(nil)
)
