package scoreboard

import "slices"

// WinningTeamExpBonus multiplies the session exp of the members of the sole
// leading team when more than one team played.
const WinningTeamExpBonus = 1.1

// TeamScoreboard groups players into named teams. Members keep personal scores
// as in Standard, and a team earns at most one point per round no matter how
// many of its members guessed.
type TeamScoreboard struct {
	ledger
	leaderTracker
	teams     map[string]*Team
	teamOrder []string
	goal      int
}

// NewTeam creates a team scoreboard. goal <= 0 means the game has no goal.
func NewTeam(goal int) *TeamScoreboard {
	return &TeamScoreboard{
		ledger: newLedger(),
		teams:  make(map[string]*Team),
		goal:   goal,
	}
}

// RegisterPlayer adds p to the team named p.TeamName, creating the team if needed.
func (t *TeamScoreboard) RegisterPlayer(p *Player) error {
	if p.TeamName == "" {
		return ErrNoTeam
	}
	if err := t.add(p); err != nil {
		return err
	}
	t.teamFor(p.TeamName).addPlayer(p.ID)
	t.recompute(t.Standings(), higher)
	return nil
}

// JoinTeam registers p on teamName, moving it off its current team if it
// already plays. A moved player keeps its personal score and exp.
func (t *TeamScoreboard) JoinTeam(teamName string, p *Player) error {
	if teamName == "" {
		return ErrNoTeam
	}
	existing, ok := t.get(p.ID)
	if !ok {
		p.TeamName = teamName
		return t.RegisterPlayer(p)
	}
	if existing.TeamName == teamName {
		return nil
	}
	t.leaveTeam(existing)
	existing.TeamName = teamName
	t.teamFor(teamName).addPlayer(existing.ID)
	t.recompute(t.Standings(), higher)
	return nil
}

func (t *TeamScoreboard) teamFor(name string) *Team {
	team, ok := t.teams[name]
	if !ok {
		team = newTeam(name)
		t.teams[name] = team
		t.teamOrder = append(t.teamOrder, name)
	}
	return team
}

// leaveTeam takes p off its team. An emptied team is dropped unless it is the
// last team standing.
func (t *TeamScoreboard) leaveTeam(p *Player) {
	team, ok := t.teams[p.TeamName]
	if !ok {
		return
	}
	team.removePlayer(p.ID)
	if team.NumPlayers() == 0 && len(t.teams) > 1 {
		delete(t.teams, team.Name)
		if i := slices.Index(t.teamOrder, team.Name); i >= 0 {
			t.teamOrder = slices.Delete(t.teamOrder, i, i+1)
		}
	}
}

func (t *TeamScoreboard) RemovePlayer(id string) bool {
	p, ok := t.get(id)
	if !ok {
		return false
	}
	t.leaveTeam(p)
	t.remove(id)
	t.recompute(t.Standings(), higher)
	return true
}

// Resolve credits each guesser as Standard does and gives each scoring team one
// point. ExpGain is credited as given; callers scale it by the round's distinct
// guessers before flooring.
func (t *TeamScoreboard) Resolve(results []GuessResult) error {
	if err := t.validate(results); err != nil {
		return err
	}

	scored := make(map[string]struct{})
	for _, r := range results {
		p, _ := t.get(r.PlayerID)
		p.IncrementScore(r.PointsEarned)
		p.IncrementExp(r.ExpGain)
		scored[p.TeamName] = struct{}{}
	}
	for name := range scored {
		if team, ok := t.teams[name]; ok {
			team.Score++
		}
	}

	t.recompute(t.Standings(), higher)
	return nil
}

// Winners returns the leading teams.
func (t *TeamScoreboard) Winners() []Standing {
	return t.winners()
}

// Standings 按创建顺序返回所有队伍
func (t *TeamScoreboard) Standings() []Standing {
	out := make([]Standing, 0, len(t.teamOrder))
	for _, name := range t.teamOrder {
		team := t.teams[name]
		out = append(out, Standing{ID: name, Name: name, Score: team.Score, Members: team.Members()})
	}
	return out
}

// Team returns the team with the given name.
func (t *TeamScoreboard) Team(name string) (*Team, bool) {
	team, ok := t.teams[name]
	return team, ok
}

func (t *TeamScoreboard) NumTeams() int {
	return len(t.teams)
}

// TeamOf 返回玩家所属队伍名
func (t *TeamScoreboard) TeamOf(playerID string) (string, bool) {
	p, ok := t.get(playerID)
	if !ok {
		return "", false
	}
	return p.TeamName, true
}

// ExpMultiplier returns WinningTeamExpBonus for members of the sole leading
// team when more than one team played, and 1 otherwise.
func (t *TeamScoreboard) ExpMultiplier(playerID string) float64 {
	name, ok := t.TeamOf(playerID)
	if !ok || len(t.teams) < 2 || len(t.leaders) != 1 {
		return 1
	}
	if t.leaders[0].ID == name {
		return WinningTeamExpBonus
	}
	return 1
}

// GameFinished reports whether any team has reached goal. It is false when no
// goal is set.
func (t *TeamScoreboard) GameFinished(goal int) bool {
	return goal > 0 && len(t.leaders) > 0 && t.best >= goal
}

func (t *TeamScoreboard) IsFinished() bool {
	return t.GameFinished(t.goal)
}
