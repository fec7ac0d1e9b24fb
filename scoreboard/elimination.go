package scoreboard

// DefaultLives 淘汰模式的初始生命数
const DefaultLives = 10

// Elimination tracks lives. Every round, each player who did not guess
// correctly loses a life; the player with the most lives leads.
type Elimination struct {
	ledger
	leaderTracker
	startingLives int
	// peakPlayers is the most players the game ever had, so a game that
	// started with several players still ends when one survivor remains.
	peakPlayers int
}

// NewElimination creates a lives scoreboard. lives <= 0 uses DefaultLives.
func NewElimination(lives int) *Elimination {
	if lives <= 0 {
		lives = DefaultLives
	}
	return &Elimination{ledger: newLedger(), startingLives: lives}
}

func (e *Elimination) StartingLives() int {
	return e.startingLives
}

// RegisterPlayer adds p with the scoreboard's starting lives.
func (e *Elimination) RegisterPlayer(p *Player) error {
	return e.RegisterPlayerWithLives(p, e.startingLives)
}

// RegisterPlayerWithLives 以自定义生命数加入玩家
func (e *Elimination) RegisterPlayerWithLives(p *Player, lives int) error {
	p.Score = lives
	if err := e.add(p); err != nil {
		return err
	}
	e.peakPlayers = max(e.peakPlayers, e.NumPlayers())
	e.recompute(e.standings(), higher)
	return nil
}

func (e *Elimination) RemovePlayer(id string) bool {
	if !e.remove(id) {
		return false
	}
	e.recompute(e.standings(), higher)
	return true
}

// Resolve grants experience to the guessers and takes a life from everyone
// else. An empty batch takes a life from every player.
func (e *Elimination) Resolve(results []GuessResult) error {
	if err := e.validate(results); err != nil {
		return err
	}
	guessed := make(map[string]struct{}, len(results))
	for _, r := range results {
		p, _ := e.get(r.PlayerID)
		p.IncrementExp(r.ExpGain)
		guessed[r.PlayerID] = struct{}{}
	}
	e.each(func(p *Player) {
		if _, ok := guessed[p.ID]; !ok {
			p.DecrementLives()
		}
	})
	e.recompute(e.standings(), higher)
	return nil
}

func (e *Elimination) Winners() []Standing {
	return e.winners()
}

func (e *Elimination) Standings() []Standing {
	return e.standings()
}

// IsPlayerEliminated reports whether the player is out of lives. Unknown
// players count as eliminated.
func (e *Elimination) IsPlayerEliminated(id string) bool {
	p, ok := e.get(id)
	return !ok || p.IsEliminated()
}

// IsFinished is true when everyone is out of lives, or when a single player
// survives a game that had more than one player.
func (e *Elimination) IsFinished() bool {
	alive := 0
	e.each(func(p *Player) {
		if !p.IsEliminated() {
			alive++
		}
	})
	return alive == 0 || (alive == 1 && e.peakPlayers > 1)
}

// GameFinished ignores goal; elimination games end on lives alone.
func (e *Elimination) GameFinished(int) bool {
	return e.IsFinished()
}

// GetLivesOfWeakestPlayer returns the fewest lives among the players still
// alive. The second result is false when nobody is alive.
func (e *Elimination) GetLivesOfWeakestPlayer() (int, bool) {
	weakest, found := 0, false
	e.each(func(p *Player) {
		if p.IsEliminated() {
			return
		}
		if !found || p.Score < weakest {
			weakest, found = p.Score, true
		}
	})
	return weakest, found
}
