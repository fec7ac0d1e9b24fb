package models

// Gender is the member category of an artist.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderCoed        Gender = "coed"
	GenderAlternating Gender = "alternating"
)

type ArtistType string

const (
	ArtistTypeSoloist ArtistType = "soloist"
	ArtistTypeGroup   ArtistType = "group"
	ArtistTypeBoth    ArtistType = "both"
)

type SubunitsPreference string

const (
	SubunitsInclude SubunitsPreference = "include"
	SubunitsExclude SubunitsPreference = "exclude"
)

type OstPreference string

const (
	OstInclude   OstPreference = "include"
	OstExclude   OstPreference = "exclude"
	OstExclusive OstPreference = "exclusive"
)

type LanguageType string

const (
	LanguageKorean LanguageType = "korean"
	LanguageAll    LanguageType = "all"
)

type ReleaseType string

const (
	ReleaseOfficial ReleaseType = "official"
	ReleaseAll      ReleaseType = "all"
)

// ShuffleType governs selection weighting and repeat avoidance.
type ShuffleType string

const (
	ShuffleRandom       ShuffleType = "random"
	ShuffleUnique       ShuffleType = "unique"
	ShuffleWeightedEasy ShuffleType = "weighted_easy"
	ShuffleWeightedHard ShuffleType = "weighted_hard"
	ShufflePopularity   ShuffleType = "popularity"
)

type AnswerType string

const (
	AnswerTyping             AnswerType = "typing"
	AnswerTypingTypos        AnswerType = "typingtypos"
	AnswerMultipleChoiceEasy AnswerType = "easy"
	AnswerMultipleChoiceMed  AnswerType = "medium"
	AnswerMultipleChoiceHard AnswerType = "hard"
)

// IsMultipleChoice reports whether the answer type presents buttons instead of free text.
func (a AnswerType) IsMultipleChoice() bool {
	switch a {
	case AnswerMultipleChoiceEasy, AnswerMultipleChoiceMed, AnswerMultipleChoiceHard:
		return true
	}
	return false
}

type GuessModeType string

const (
	GuessModeSongName GuessModeType = "song"
	GuessModeArtist   GuessModeType = "artist"
	GuessModeBoth     GuessModeType = "both"
)

type GameType string

const (
	GameTypeClassic     GameType = "classic"
	GameTypeElimination GameType = "elimination"
	GameTypeTeams       GameType = "teams"
)

const (
	DefaultBeginningYear = 2008
	DefaultEndYear       = 2026
	DefaultLimit         = 500
)

// GameOptions is an immutable snapshot of a guild's game settings. The
// configuration layer validates combinations before they reach the game core.
type GameOptions struct {
	IncludeArtistIDs []int
	ExcludeArtistIDs []int
	// GroupArtistIDs non-empty means group-select mode.
	GroupArtistIDs []int

	Genders    []Gender
	ArtistType ArtistType
	Subunits   SubunitsPreference
	Ost        OstPreference
	Language   LanguageType
	Release    ReleaseType

	BeginningYear int
	EndYear       int
	LimitStart    int
	LimitEnd      int

	Shuffle    ShuffleType
	AnswerType AnswerType
	GuessMode  GuessModeType
	MultiGuess bool

	// Goal ends a game once reached; zero means no goal.
	Goal int
	// Lives is the starting lives of an elimination game; zero uses the configured default.
	Lives int

	ForcePlaySongKey string
}

// DefaultGameOptions mirrors the settings of a guild that never changed anything.
func DefaultGameOptions() GameOptions {
	return GameOptions{
		Genders:       []Gender{GenderFemale, GenderMale, GenderCoed},
		ArtistType:    ArtistTypeBoth,
		Subunits:      SubunitsInclude,
		Ost:           OstExclude,
		Language:      LanguageAll,
		Release:       ReleaseOfficial,
		BeginningYear: DefaultBeginningYear,
		EndYear:       DefaultEndYear,
		LimitStart:    0,
		LimitEnd:      DefaultLimit,
		Shuffle:       ShuffleRandom,
		AnswerType:    AnswerTyping,
		GuessMode:     GuessModeSongName,
		MultiGuess:    true,
	}
}

func (o GameOptions) IsGroupsMode() bool {
	return len(o.GroupArtistIDs) > 0
}

func (o GameOptions) IsGenderAlternating() bool {
	for _, g := range o.Genders {
		if g == GenderAlternating {
			return true
		}
	}
	return false
}

func (o GameOptions) TyposAllowed() bool {
	return o.AnswerType == AnswerTypingTypos
}

func (o GameOptions) IsGoalSet() bool {
	return o.Goal > 0
}
