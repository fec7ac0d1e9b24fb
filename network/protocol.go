package network

import (
	"encoding/json"

	"github.com/wfunc/songquiz/models"
)

// 消息ID。1xx 为大厅操作，2xx 为回合内操作，3xx 为服务端推送。
const (
	MsgTypeHeartbeat = 1

	MsgTypeStartGame = 101
	MsgTypeJoinGame  = 102
	MsgTypeLeaveGame = 103
	MsgTypeEndGame   = 104

	MsgTypeGuess = 201
	MsgTypeSkip  = 202
	MsgTypeHint  = 203

	MsgTypeRoundStarted = 301
	MsgTypeRoundEnded   = 302
	MsgTypeScoreboard   = 303
	MsgTypeGameEnded    = 304
	MsgTypeGuessResult  = 305
	MsgTypeHintReply    = 306
	MsgTypeError        = 399
)

// PlayerInfo identifies a player joining a game.
type PlayerInfo struct {
	PlayerID       string `json:"player_id"`
	Name           string `json:"name"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	TeamName       string `json:"team_name,omitempty"`
	FirstGameOfDay bool   `json:"first_game_of_day,omitempty"`
}

type StartGameRequest struct {
	GuildID  string              `json:"guild_id"`
	GameType models.GameType     `json:"game_type"`
	Options  *models.GameOptions `json:"options,omitempty"`
	Player   PlayerInfo          `json:"player"`
}

type JoinGameRequest struct {
	GuildID string     `json:"guild_id"`
	Player  PlayerInfo `json:"player"`
}

type GuessRequest struct {
	Text string `json:"text"`
}

type RoundStartedEvent struct {
	RoundID     string `json:"round_id"`
	RoundNumber int    `json:"round_number"`
	SongCount   int    `json:"song_count"`
}

type GuessEvent struct {
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
	Exp      int64  `json:"exp"`
}

type RoundEndedEvent struct {
	RoundID      string       `json:"round_id"`
	SongName     string       `json:"song_name"`
	ArtistName   string       `json:"artist_name"`
	Key          string       `json:"key"`
	PublishYear  int          `json:"publish_year"`
	SkipAchieved bool         `json:"skip_achieved"`
	Guessers     []GuessEvent `json:"guessers"`
}

type StandingPayload struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Members []string `json:"members,omitempty"`
}

type ScoreboardEvent struct {
	GuildID   string            `json:"guild_id"`
	Standings []StandingPayload `json:"standings"`
	Winners   []StandingPayload `json:"winners"`
	Finished  bool              `json:"finished"`
}

type GameEndedEvent struct {
	RecordID string   `json:"record_id"`
	Winners  []string `json:"winners"`
	Rounds   int      `json:"rounds"`
}

type GuessResultEvent struct {
	Correct bool `json:"correct"`
}

type HintReplyEvent struct {
	Hint string `json:"hint,omitempty"`
	Used bool   `json:"used"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

// Encode marshals a payload for Send.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode unmarshals a packet body into v.
func Decode(p *Packet, v any) error {
	return json.Unmarshal(p.Data, v)
}
