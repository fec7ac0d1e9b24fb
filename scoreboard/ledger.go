package scoreboard

import "slices"

// ledger owns the players of a scoreboard in registration order. Every variant
// embeds one by value.
type ledger struct {
	players map[string]*Player
	order   []string
}

func newLedger() ledger {
	return ledger{players: make(map[string]*Player)}
}

func (l *ledger) add(p *Player) error {
	if _, exists := l.players[p.ID]; exists {
		return ErrPlayerExists
	}
	l.players[p.ID] = p
	l.order = append(l.order, p.ID)
	return nil
}

func (l *ledger) remove(id string) bool {
	if _, exists := l.players[id]; !exists {
		return false
	}
	delete(l.players, id)
	if i := slices.Index(l.order, id); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	return true
}

func (l *ledger) get(id string) (*Player, bool) {
	p, ok := l.players[id]
	return p, ok
}

// validate 先校验整批猜中者，全部合法才会修改状态
func (l *ledger) validate(results []GuessResult) error {
	for _, r := range results {
		if _, ok := l.players[r.PlayerID]; !ok {
			return unknownPlayer(r.PlayerID)
		}
	}
	return nil
}

func (l *ledger) each(fn func(p *Player)) {
	for _, id := range l.order {
		fn(l.players[id])
	}
}

func (l *ledger) standings() []Standing {
	out := make([]Standing, 0, len(l.order))
	l.each(func(p *Player) {
		out = append(out, Standing{ID: p.ID, Name: p.Name, Score: p.Score})
	})
	return out
}

// Player returns a copy of the player with the given id.
func (l *ledger) Player(id string) (Player, bool) {
	p, ok := l.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Players returns copies of all players in registration order.
func (l *ledger) Players() []Player {
	out := make([]Player, 0, len(l.order))
	l.each(func(p *Player) { out = append(out, *p) })
	return out
}

func (l *ledger) NumPlayers() int {
	return len(l.order)
}
