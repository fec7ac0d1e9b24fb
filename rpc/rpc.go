package rpc

import (
	"errors"
	"net"
	"net/rpc"
	"time"

	"github.com/wfunc/songquiz/game"
	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
	rpc      *rpc.Server
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  listener.Addr().String(),
		rpc:      rpc.NewServer(),
	}, nil
}

// Register publishes a service's methods on this server.
func (s *Server) Register(service any) error {
	return s.rpc.Register(service)
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.address
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if errors.Is(err, net.ErrClosed) {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go s.rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// History loads finished games.
type History interface {
	LoadGameRecords(guildID string, limit int) ([]models.GormGameRecord, error)
}

const maxRecentGames = 50

// GameService is the struct that exposes RPC methods.
type GameService struct {
	games    *game.Manager
	profiles *services.ProfileService
	history  History
}

// NewGameService creates a new GameService. history may be nil when no
// database is configured.
func NewGameService(games *game.Manager, profiles *services.ProfileService, history History) *GameService {
	return &GameService{games: games, profiles: profiles, history: history}
}

// Methods follow the net/rpc signature: exported method, exported arguments,
// second argument is a pointer, return type is error.
type GetScoreboardArgs struct {
	GuildID string
}

type StandingReply struct {
	ID      string
	Name    string
	Score   int
	Members []string
}

type GetScoreboardReply struct {
	GameType    string
	Phase       string
	RoundNumber int
	Standings   []StandingReply
	Winners     []string
	Finished    bool
}

func (gs *GameService) GetScoreboard(args *GetScoreboardArgs, reply *GetScoreboardReply) error {
	s, ok := gs.games.Get(args.GuildID)
	if !ok {
		return game.ErrSessionNotFound
	}

	snap := s.Snapshot()
	reply.GameType = string(snap.GameType)
	reply.Phase = string(snap.Phase)
	reply.RoundNumber = snap.RoundNumber
	reply.Finished = snap.Finished
	for _, st := range snap.Standings {
		reply.Standings = append(reply.Standings, StandingReply{ID: st.ID, Name: st.Name, Score: st.Score, Members: st.Members})
	}
	for _, w := range snap.Winners {
		reply.Winners = append(reply.Winners, w.Name)
	}
	return nil
}

type GetPlayerProfileArgs struct {
	UserID string
}

type GetPlayerProfileReply struct {
	Profile services.Profile
}

func (gs *GameService) GetPlayerProfile(args *GetPlayerProfileArgs, reply *GetPlayerProfileReply) error {
	profile, err := gs.profiles.GetProfile(args.UserID)
	if err != nil {
		return err
	}
	reply.Profile = profile
	return nil
}

type GetRecentGamesArgs struct {
	GuildID string
	Limit   int
}

type GameSummary struct {
	RecordID     string
	GameType     string
	RoundsPlayed int
	Winners      []string
	StartedAt    time.Time
	Duration     time.Duration
}

type GetRecentGamesReply struct {
	Games []GameSummary
}

func (gs *GameService) GetRecentGames(args *GetRecentGamesArgs, reply *GetRecentGamesReply) error {
	if gs.history == nil {
		return errors.New("game history is not available")
	}
	limit := args.Limit
	if limit <= 0 || limit > maxRecentGames {
		limit = maxRecentGames
	}

	records, err := gs.history.LoadGameRecords(args.GuildID, limit)
	if err != nil {
		return err
	}
	for _, r := range records {
		reply.Games = append(reply.Games, GameSummary{
			RecordID:     r.RecordID,
			GameType:     r.GameType,
			RoundsPlayed: r.RoundsPlayed,
			Winners:      r.Winners,
			StartedAt:    r.StartedAt,
			Duration:     time.Duration(r.Duration) * time.Second,
		})
	}
	return nil
}
