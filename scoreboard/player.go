package scoreboard

// Player 是一名玩家在一局游戏中的累计成绩
type Player struct {
	ID        string
	Name      string
	AvatarURL string
	// Score 的含义取决于计分模式：普通模式为得分，淘汰模式为剩余生命
	Score int
	// Exp 是本局获得的经验
	Exp float64
	// FirstGameOfDay 由外部提供，影响经验加成
	FirstGameOfDay bool
	// TeamName 仅在团队模式下使用
	TeamName string
}

// NewPlayer creates a player with no score.
func NewPlayer(id, name, avatarURL string, firstGameOfDay bool) *Player {
	return &Player{
		ID:             id,
		Name:           name,
		AvatarURL:      avatarURL,
		FirstGameOfDay: firstGameOfDay,
	}
}

// IncrementScore adds points.
func (p *Player) IncrementScore(points int) {
	p.Score += points
}

// IncrementExp adds exp.
func (p *Player) IncrementExp(exp float64) {
	p.Exp += exp
}

// DecrementLives takes one life, never going below 0.
func (p *Player) DecrementLives() {
	if p.Score > 0 {
		p.Score--
	}
}

// IsEliminated 淘汰模式下生命耗尽
func (p *Player) IsEliminated() bool {
	return p.Score <= 0
}
