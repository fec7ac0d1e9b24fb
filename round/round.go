// Package round models a single song being guessed.
package round

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wfunc/songquiz/exp"
	"github.com/wfunc/songquiz/models"
)

// Aliases holds the alternative accepted answers, by song key and by artist name.
type Aliases struct {
	Songs   map[string][]string
	Artists map[string][]string
}

// Params are the round settings decided by the session.
type Params struct {
	Aliases *Aliases
	BaseExp float64
	// BonusModifier is the random bonus of the round; see exp.RandomRoundBonus.
	BonusModifier float64
	BonusArtist   bool
	Now           time.Time
	Rng           *rand.Rand
}

// CorrectGuess is one correct guesser of the round.
type CorrectGuess struct {
	PlayerID string
	Points   int
	At       time.Time
}

// GameRound is one song being guessed. It is owned by a single session.
type GameRound struct {
	ID   string
	Song models.Song

	SongName    string
	ArtistName  string
	Key         string
	PublishYear int
	StartedAt   time.Time

	BaseExp       float64
	BonusModifier float64
	BonusArtist   bool

	SkipAchieved bool
	Finished     bool
	HintUsed     bool
	SongHint     string
	ArtistHint   string

	acceptedSongAnswers   []string
	acceptedArtistAnswers []string
	skippers              map[string]struct{}
	hintRequesters        map[string]struct{}
	correctGuessers       []CorrectGuess
}

// New opens a round for song.
func New(song models.Song, p Params) *GameRound {
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	if p.BonusModifier <= 0 {
		p.BonusModifier = 1
	}
	if p.Rng == nil {
		p.Rng = rand.New(rand.NewPCG(uint64(p.Now.UnixNano()), rand.Uint64()))
	}
	aliases := p.Aliases
	if aliases == nil {
		aliases = &Aliases{}
	}

	songName := StripParenthetical(song.Name)
	songAnswers := []string{songName}
	if song.OriginalName != "" {
		songAnswers = append(songAnswers, StripParenthetical(song.OriginalName))
	}
	if song.HangulName != "" {
		songAnswers = append(songAnswers, StripParenthetical(song.HangulName))
	}
	songAnswers = append(songAnswers, aliases.Songs[song.Key]...)

	var artistAnswers, artistAliases []string
	for _, name := range strings.Split(song.ArtistName, "+") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		artistAnswers = append(artistAnswers, name)
		artistAliases = append(artistAliases, aliases.Artists[name]...)
	}
	if song.HangulArtistName != "" {
		artistAnswers = append(artistAnswers, song.HangulArtistName)
	}
	artistAnswers = append(artistAnswers, artistAliases...)

	return &GameRound{
		ID:                    uuid.NewString(),
		Song:                  song,
		SongName:              songName,
		ArtistName:            song.ArtistName,
		Key:                   song.Key,
		PublishYear:           song.PublishYear(),
		StartedAt:             p.Now,
		BaseExp:               p.BaseExp,
		BonusModifier:         p.BonusModifier,
		BonusArtist:           p.BonusArtist,
		SongHint:              generateHint(songName, p.Rng),
		ArtistHint:            generateHint(song.ArtistName, p.Rng),
		acceptedSongAnswers:   cleanAll(songAnswers),
		acceptedArtistAnswers: cleanAll(artistAnswers),
		skippers:              make(map[string]struct{}),
		hintRequesters:        make(map[string]struct{}),
	}
}

func cleanAll(answers []string) []string {
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		if c := CleanAnswer(a); c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// AcceptedSongAnswers returns the cleaned accepted song answers.
func (r *GameRound) AcceptedSongAnswers() []string {
	return slices.Clone(r.acceptedSongAnswers)
}

// AcceptedArtistAnswers returns the cleaned accepted artist answers.
func (r *GameRound) AcceptedArtistAnswers() []string {
	return slices.Clone(r.acceptedArtistAnswers)
}

func matches(guess string, answers []string, typosAllowed bool) bool {
	cleaned := CleanAnswer(guess)
	if cleaned == "" {
		return false
	}
	if slices.Contains(answers, cleaned) {
		return true
	}
	return typosAllowed && similar(cleaned, answers)
}

// CheckGuess returns the points a guess is worth under mode: 1 when correct, 0
// otherwise.
func (r *GameRound) CheckGuess(guess string, mode models.GuessModeType, typosAllowed bool) int {
	songCorrect := matches(guess, r.acceptedSongAnswers, typosAllowed)
	artistCorrect := matches(guess, r.acceptedArtistAnswers, typosAllowed)

	switch mode {
	case models.GuessModeArtist:
		if artistCorrect {
			return 1
		}
	case models.GuessModeBoth:
		if songCorrect || artistCorrect {
			return 1
		}
	default:
		if songCorrect {
			return 1
		}
	}
	return 0
}

// UserCorrect records a correct guesser once, in order of arrival.
func (r *GameRound) UserCorrect(playerID string, points int, at time.Time) bool {
	if r.IsCorrectGuesser(playerID) {
		return false
	}
	r.correctGuessers = append(r.correctGuessers, CorrectGuess{PlayerID: playerID, Points: points, At: at})
	return true
}

func (r *GameRound) IsCorrectGuesser(playerID string) bool {
	return slices.ContainsFunc(r.correctGuessers, func(g CorrectGuess) bool { return g.PlayerID == playerID })
}

// CorrectGuessers returns the correct guessers in order of arrival.
func (r *GameRound) CorrectGuessers() []CorrectGuess {
	return slices.Clone(r.correctGuessers)
}

// ElapsedMs is the time from the start of the round to at.
func (r *GameRound) ElapsedMs(at time.Time) int64 {
	return at.Sub(r.StartedAt).Milliseconds()
}

// UserSkipped records a skip vote.
func (r *GameRound) UserSkipped(playerID string) {
	r.skippers[playerID] = struct{}{}
}

func (r *GameRound) NumSkippers() int {
	return len(r.skippers)
}

// majority is more than half of participants.
func majority(votes, participants int) bool {
	return votes >= participants/2+1
}

// CheckSkip marks the skip achieved once a majority of participants voted.
func (r *GameRound) CheckSkip(participants int) bool {
	if !r.SkipAchieved && majority(len(r.skippers), participants) {
		r.SkipAchieved = true
	}
	return r.SkipAchieved
}

// HintRequested records a hint request.
func (r *GameRound) HintRequested(playerID string) {
	r.hintRequesters[playerID] = struct{}{}
}

func (r *GameRound) NumHintRequests() int {
	return len(r.hintRequesters)
}

// CheckHint marks the hint used once a majority of participants asked for it.
func (r *GameRound) CheckHint(participants int) bool {
	if !r.HintUsed && majority(len(r.hintRequesters), participants) {
		r.HintUsed = true
	}
	return r.HintUsed
}

// Hint returns the masked answer for mode.
func (r *GameRound) Hint(mode models.GuessModeType) string {
	if mode == models.GuessModeArtist {
		return r.ArtistHint
	}
	return r.SongHint
}

// ExpReward is the base exp of the round, halved once the hint was used.
func (r *GameRound) ExpReward() float64 {
	reward := r.BaseExp
	if r.HintUsed {
		reward *= exp.HintUsed.Value()
	}
	return reward
}

// Finish ends the round. It returns false when the round had already ended.
func (r *GameRound) Finish() bool {
	if r.Finished {
		return false
	}
	r.Finished = true
	return true
}
