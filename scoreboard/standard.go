package scoreboard

// Standard awards points; the highest score leads.
type Standard struct {
	ledger
	leaderTracker
	goal int
}

// NewStandard 创建计分榜，goal <= 0 表示没有目标分
func NewStandard(goal int) *Standard {
	return &Standard{ledger: newLedger(), goal: goal}
}

func (s *Standard) RegisterPlayer(p *Player) error {
	if err := s.add(p); err != nil {
		return err
	}
	s.recompute(s.standings(), higher)
	return nil
}

func (s *Standard) RemovePlayer(id string) bool {
	if !s.remove(id) {
		return false
	}
	s.recompute(s.standings(), higher)
	return true
}

func (s *Standard) Resolve(results []GuessResult) error {
	if err := s.validate(results); err != nil {
		return err
	}
	for _, r := range results {
		p, _ := s.get(r.PlayerID)
		p.IncrementScore(r.PointsEarned)
		p.IncrementExp(r.ExpGain)
	}
	s.recompute(s.standings(), higher)
	return nil
}

func (s *Standard) Winners() []Standing {
	return s.winners()
}

func (s *Standard) Standings() []Standing {
	return s.standings()
}

// GameFinished reports whether a leader has reached goal. It is false when no
// goal is set.
func (s *Standard) GameFinished(goal int) bool {
	return goal > 0 && len(s.leaders) > 0 && s.best >= goal
}

func (s *Standard) IsFinished() bool {
	return s.GameFinished(s.goal)
}
