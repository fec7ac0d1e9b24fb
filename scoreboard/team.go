package scoreboard

import "slices"

// Team 是团队模式下的一支队伍。队伍得分独立于成员得分，每回合最多加 1 分。
type Team struct {
	Name    string
	Score   int
	members []string
}

func newTeam(name string) *Team {
	return &Team{Name: name}
}

// Members 返回成员 ID，按加入顺序
func (t *Team) Members() []string {
	return slices.Clone(t.members)
}

func (t *Team) HasPlayer(id string) bool {
	return slices.Contains(t.members, id)
}

func (t *Team) NumPlayers() int {
	return len(t.members)
}

func (t *Team) addPlayer(id string) {
	if !t.HasPlayer(id) {
		t.members = append(t.members, id)
	}
}

func (t *Team) removePlayer(id string) {
	if i := slices.Index(t.members, id); i >= 0 {
		t.members = slices.Delete(t.members, i, i+1)
	}
}
