package exp

import (
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// RoundContext describes one correct guess within a round.
type RoundContext struct {
	// Participants is the number of players in the game. Team games pass 1 and
	// let the team scoreboard scale by the round's distinct guessers.
	Participants int
	// Streak is the current streak of the round's first guesser.
	Streak int
	// GuessMs is how long the guess took.
	GuessMs int64
	// Place is 1 for the first correct guesser, 2 for the second, and so on.
	Place int
	BonusArtist bool
	// BonusModifier is the random bonus baked into the round; zero counts as 1.
	BonusModifier float64
}

// ParticipantMultiplier scales exp from 1x for a single player up to 1.5x at
// ParticipantCap players.
func ParticipantMultiplier(participants int) float64 {
	return participantScale(participants).InexactFloat64()
}

func participantScale(participants int) decimal.Decimal {
	n := min(max(participants, 1), ParticipantCap)
	// 1 + 0.1 * (n - 1)
	return decimal.New(int64(9+n), -1)
}

// roundBonuses is the round multiplier before dividing by place.
func roundBonuses(rc RoundContext) decimal.Decimal {
	m := participantScale(rc.Participants)
	if rc.GuessMs < QuickGuessMs {
		m = m.Mul(decimal.NewFromFloat(QuickGuess.Value()))
	}
	if rc.Streak >= GuessStreakThreshold {
		m = m.Mul(decimal.NewFromFloat(GuessStreak.Value()))
	}
	if rc.BonusArtist {
		m = m.Mul(decimal.NewFromFloat(BonusArtist.Value()))
	}
	if rc.BonusModifier > 0 {
		m = m.Mul(decimal.NewFromFloat(rc.BonusModifier))
	}
	return m
}

func place(rc RoundContext) decimal.Decimal {
	return decimal.NewFromInt(int64(max(rc.Place, 1)))
}

// RoundMultiplier is the per guess multiplier, divided by the guesser's place.
func RoundMultiplier(rc RoundContext) decimal.Decimal {
	return roundBonuses(rc).Div(place(rc))
}

// ComputeRoundExperience returns floor(options × round × baseExp). The place
// division happens last so that equal shares stay exact.
func ComputeRoundExperience(options decimal.Decimal, rc RoundContext, baseExp float64) int64 {
	total := options.Mul(roundBonuses(rc)).Mul(decimal.NewFromFloat(baseExp)).Div(place(rc))
	return total.Floor().IntPart()
}

// BaseExp is the exp a round of a pool of songCount songs is worth, with up to
// 5% random jitter either way.
func BaseExp(songCount int, rng *rand.Rand) float64 {
	base := 2000 / (1 + math.Exp(1-0.0005*(float64(songCount)-1500)))
	jitter := base * 0.05 * rng.Float64()
	if rng.IntN(2) == 0 {
		jitter = -jitter
	}
	return base + jitter
}

var randomRoundBonuses = []ModifierType{
	RandomGuessBonusCommon,
	RandomGuessBonusRare,
	RandomGuessBonusEpic,
	RandomGuessBonusLegendary,
}

// RandomRoundBonus returns 1 for 99% of rounds, and one of the random guess
// bonuses otherwise.
func RandomRoundBonus(rng *rand.Rand) float64 {
	if rng.Float64() >= 0.01 {
		return 1
	}
	return randomRoundBonuses[rng.IntN(len(randomRoundBonuses))].Value()
}
