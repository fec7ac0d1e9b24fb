package exp

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/songquiz/models"
)

func plainOptions() OptionsContext {
	return OptionsContext{Options: models.DefaultGameOptions(), SongCount: 500}
}

func typesOf(mods []Modifier) []ModifierType {
	out := make([]ModifierType, len(mods))
	for i, m := range mods {
		out[i] = m.Type
	}
	return out
}

func TestOptionsModifiers_None(t *testing.T) {
	mods := OptionsModifiers(plainOptions())
	assert.Empty(t, mods)
	assert.True(t, OptionsMultiplier(mods).Equal(decimal.NewFromInt(1)))
}

func TestOptionsModifiers_All(t *testing.T) {
	ctx := plainOptions()
	ctx.VoteBonus = true
	ctx.PowerHour = true
	ctx.FirstGameOfDay = true
	ctx.Options.AnswerType = models.AnswerMultipleChoiceMed
	ctx.Options.Shuffle = models.ShuffleWeightedEasy
	ctx.Options.GuessMode = models.GuessModeBoth

	mods := OptionsModifiers(ctx)
	assert.Equal(t, []ModifierType{Vote, PowerHour, FirstGameOfDay, ShuffleWeightedEasy, MultipleChoiceMedium, ArtistGuess}, typesOf(mods))

	// 2 * 2 * 1.5 * 0.5 * 0.5 * 0.3
	assert.Equal(t, "0.45", OptionsMultiplier(mods).String())

	for _, m := range mods {
		assert.Equal(t, m.Value() < 1, m.IsPenalty, m.DisplayName)
	}
}

func TestOptionsModifiers_Penalties(t *testing.T) {
	ctx := plainOptions()
	ctx.Options.AnswerType = models.AnswerTypingTypos
	ctx.Options.Shuffle = models.ShufflePopularity
	ctx.Options.GuessMode = models.GuessModeArtist
	ctx.Options.GroupArtistIDs = []int{1}
	ctx.SongCount = 9

	mods := OptionsModifiers(ctx)
	assert.Equal(t, []ModifierType{Typo, ShufflePopularity, BelowSongCountThreshold, ArtistGuessGroupsSelected}, typesOf(mods))
	assert.True(t, OptionsMultiplier(mods).IsZero())
}

func TestParticipantMultiplier(t *testing.T) {
	assert.InDelta(t, 1.0, ParticipantMultiplier(0), 1e-9)
	assert.InDelta(t, 1.0, ParticipantMultiplier(1), 1e-9)
	assert.InDelta(t, 1.2, ParticipantMultiplier(3), 1e-9)
	assert.InDelta(t, 1.5, ParticipantMultiplier(6), 1e-9)
	assert.InDelta(t, 1.5, ParticipantMultiplier(40), 1e-9)
}

func TestComputeRoundExperience_NoModifiers(t *testing.T) {
	one := OptionsMultiplier(nil)
	for _, base := range []float64{0, 1, 99.5, 300, 1234.56789, 1999.999} {
		for place := 1; place <= 5; place++ {
			rc := RoundContext{Participants: 1, GuessMs: 10_000, Place: place, BonusModifier: 1}
			want := int64(math.Floor(base / float64(place)))
			assert.Equal(t, want, ComputeRoundExperience(one, rc, base), "base %v place %d", base, place)
		}
	}
}

func TestComputeRoundExperience_Bonuses(t *testing.T) {
	rc := RoundContext{
		Participants:  6,
		Streak:        GuessStreakThreshold,
		GuessMs:       1200,
		Place:         2,
		BonusArtist:   true,
		BonusModifier: 5,
	}
	// 1.5 * 1.1 * 1.2 * 2 * 5 / 2
	assert.Equal(t, "9.9", RoundMultiplier(rc).String())

	options := decimal.NewFromFloat(0.5)
	// 0.5 * 19.8 * 1000 / 2
	assert.Equal(t, int64(4950), ComputeRoundExperience(options, rc, 1000))
}

func TestBaseExp(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, count := range []int{0, 10, 1500, 5000} {
		expected := 2000 / (1 + math.Exp(1-0.0005*(float64(count)-1500)))
		for i := 0; i < 100; i++ {
			got := BaseExp(count, rng)
			assert.InDelta(t, expected, got, expected*0.05+1e-9)
		}
	}
	// more songs is worth more
	assert.Less(t, 2000/(1+math.Exp(1-0.0005*(10.0-1500))), 2000/(1+math.Exp(1-0.0005*(5000.0-1500))))
}

func TestRandomRoundBonus(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	allowed := []float64{1, 2, 5, 10, 50}
	bonus := 0
	for i := 0; i < 20000; i++ {
		v := RandomRoundBonus(rng)
		require.Contains(t, allowed, v)
		if v != 1 {
			bonus++
		}
	}
	assert.Greater(t, bonus, 100)
	assert.Less(t, bonus, 320)
}

func TestBonusHours(t *testing.T) {
	bh, err := NewBonusHours("", []int{22})
	require.NoError(t, err)

	at := func(s string) func() time.Time {
		return func() time.Time {
			ts, err := time.Parse(time.RFC3339, s)
			require.NoError(t, err)
			return ts
		}
	}

	// Saturday 02:00 UTC is still Friday evening in New York
	bh.Now = at("2026-10-17T02:00:00Z")
	assert.False(t, bh.IsWeekend())
	assert.True(t, bh.IsPowerHour())
	assert.True(t, bh.Active())

	bh.Now = at("2026-10-17T16:00:00Z")
	assert.True(t, bh.IsWeekend())
	assert.False(t, bh.IsPowerHour())

	bh.Now = at("2026-10-14T16:00:00Z")
	assert.False(t, bh.Active())

	_, err = NewBonusHours("Not/AZone", nil)
	assert.Error(t, err)
}

func TestLevels(t *testing.T) {
	assert.Equal(t, int64(0), ExpForLevel(1))
	assert.Equal(t, int64(240), ExpForLevel(2))
	assert.Equal(t, int64(240+490), ExpForLevel(3))

	assert.Equal(t, 1, LevelForExp(0))
	assert.Equal(t, 1, LevelForExp(239))
	assert.Equal(t, 2, LevelForExp(240))
	assert.Equal(t, 2, LevelForExp(729))
	assert.Equal(t, 3, LevelForExp(730))
	assert.Equal(t, MaxLevel-1, LevelForExp(math.MaxInt64))
}
