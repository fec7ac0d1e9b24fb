// Package exp computes the experience a correct guess is worth.
package exp

import (
	"github.com/shopspring/decimal"

	"github.com/wfunc/songquiz/models"
)

// ModifierType names one experience bonus or penalty.
type ModifierType int

const (
	PowerHour ModifierType = iota
	BonusArtist
	Vote
	GuessStreak
	QuickGuess
	MultipleChoiceEasy
	MultipleChoiceMedium
	MultipleChoiceHard
	ShufflePopularity
	ShuffleWeightedEasy
	ArtistGuess
	ArtistGuessGroupsSelected
	RandomGuessBonusCommon
	RandomGuessBonusRare
	RandomGuessBonusEpic
	RandomGuessBonusLegendary
	BelowSongCountThreshold
	Typo
	HintUsed
	FirstGameOfDay
)

var modifierValues = map[ModifierType]float64{
	PowerHour:                 2,
	BonusArtist:               2,
	Vote:                      2,
	GuessStreak:               1.2,
	QuickGuess:                1.1,
	MultipleChoiceEasy:        0.25,
	MultipleChoiceMedium:      0.5,
	MultipleChoiceHard:        0.75,
	ShufflePopularity:         0.2,
	ShuffleWeightedEasy:       0.5,
	ArtistGuess:               0.3,
	ArtistGuessGroupsSelected: 0,
	RandomGuessBonusCommon:    2,
	RandomGuessBonusRare:      5,
	RandomGuessBonusEpic:      10,
	RandomGuessBonusLegendary: 50,
	BelowSongCountThreshold:   0,
	Typo:                      0.8,
	HintUsed:                  0.5,
	FirstGameOfDay:            1.5,
}

// Value returns the multiplier of t.
func (t ModifierType) Value() float64 {
	return modifierValues[t]
}

const (
	// ParticipantCap is the participant count above which the participant bonus stops growing.
	ParticipantCap = 6
	// GuessStreakThreshold is the streak length that earns GuessStreak.
	GuessStreakThreshold = 5
	// QuickGuessMs is the guess time under which QuickGuess applies.
	QuickGuessMs = 3500
	// SongCountThreshold is the pool size under which no exp is earned.
	SongCountThreshold = 10
)

// Modifier is one active bonus or penalty of a game.
type Modifier struct {
	Type        ModifierType
	DisplayName string
	IsPenalty   bool
}

func (m Modifier) Value() float64 {
	return m.Type.Value()
}

// OptionsContext is what the options multiplier depends on besides the game options.
type OptionsContext struct {
	Options models.GameOptions
	// VoteBonus and FirstGameOfDay are per player flags supplied by the caller.
	VoteBonus      bool
	FirstGameOfDay bool
	// PowerHour is true during a power hour or on a weekend.
	PowerHour bool
	// SongCount is the size of the filtered pool after the limit window.
	SongCount int
}

// OptionsModifiers lists the modifiers active for ctx in a fixed order.
func OptionsModifiers(ctx OptionsContext) []Modifier {
	var mods []Modifier
	if ctx.VoteBonus {
		mods = append(mods, Modifier{Type: Vote, DisplayName: "Vote Bonus"})
	}
	if ctx.PowerHour {
		mods = append(mods, Modifier{Type: PowerHour, DisplayName: "Power Hour Bonus"})
	}
	if ctx.FirstGameOfDay {
		mods = append(mods, Modifier{Type: FirstGameOfDay, DisplayName: "First Game of the Day Bonus"})
	}

	opts := ctx.Options
	if opts.TyposAllowed() {
		mods = append(mods, Modifier{Type: Typo, DisplayName: "Typos Allowed Penalty", IsPenalty: true})
	}

	switch opts.Shuffle {
	case models.ShufflePopularity:
		mods = append(mods, Modifier{Type: ShufflePopularity, DisplayName: "Popularity Shuffle Penalty", IsPenalty: true})
	case models.ShuffleWeightedEasy:
		mods = append(mods, Modifier{Type: ShuffleWeightedEasy, DisplayName: "Weighted Easy Shuffle Penalty", IsPenalty: true})
	}

	switch opts.AnswerType {
	case models.AnswerMultipleChoiceEasy:
		mods = append(mods, Modifier{Type: MultipleChoiceEasy, DisplayName: "Multiple Choice Penalty", IsPenalty: true})
	case models.AnswerMultipleChoiceMed:
		mods = append(mods, Modifier{Type: MultipleChoiceMedium, DisplayName: "Multiple Choice Penalty", IsPenalty: true})
	case models.AnswerMultipleChoiceHard:
		mods = append(mods, Modifier{Type: MultipleChoiceHard, DisplayName: "Multiple Choice Penalty", IsPenalty: true})
	}

	if ctx.SongCount < SongCountThreshold {
		mods = append(mods, Modifier{Type: BelowSongCountThreshold, DisplayName: "Low Song Count Penalty", IsPenalty: true})
	}

	if opts.GuessMode == models.GuessModeArtist || opts.GuessMode == models.GuessModeBoth {
		if opts.IsGroupsMode() {
			mods = append(mods, Modifier{Type: ArtistGuessGroupsSelected, DisplayName: "Artist/Group Guess Mode Penalty", IsPenalty: true})
		} else {
			mods = append(mods, Modifier{Type: ArtistGuess, DisplayName: "Artist/Group Guess Mode Penalty", IsPenalty: true})
		}
	}
	return mods
}

// OptionsMultiplier is the product of the values of mods.
func OptionsMultiplier(mods []Modifier) decimal.Decimal {
	product := decimal.NewFromInt(1)
	for _, m := range mods {
		product = product.Mul(decimal.NewFromFloat(m.Value()))
	}
	return product
}
