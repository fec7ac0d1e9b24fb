package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/songquiz/game"
	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/network"
	gamerpc "github.com/wfunc/songquiz/rpc"
	"github.com/wfunc/songquiz/scoreboard"
	"github.com/wfunc/songquiz/services"
	"github.com/wfunc/songquiz/session"
)

// ConnectionMetrics is the part of the monitor the gateway reports to.
type ConnectionMetrics interface {
	IncOnlinePlayers()
	DecOnlinePlayers()
	IncMessagesReceived()
}

// Options wires the gateway to the rest of the server.
type Options struct {
	Addr     string
	RPCAddr  string
	Games    *game.Manager
	Sessions *session.Manager
	Profiles *services.ProfileService
	History  gamerpc.History
	Metrics  ConnectionMetrics
	// DefaultOptions are used when a start request carries no options.
	DefaultOptions models.GameOptions
	Heartbeat      time.Duration
}

type GameServer struct {
	addr           string
	rpcAddr        string
	upgrader       websocket.Upgrader
	games          *game.Manager
	sessionManager *session.Manager
	profiles       *services.ProfileService
	history        gamerpc.History
	metrics        ConnectionMetrics
	rpcServer      *gamerpc.Server
	httpServer     *http.Server
	defaults       models.GameOptions
	heartbeat      time.Duration
	shutdownChan   chan struct{}
}

func NewGameServer(opts Options) *GameServer {
	s := &GameServer{
		addr:           opts.Addr,
		rpcAddr:        opts.RPCAddr,
		games:          opts.Games,
		sessionManager: opts.Sessions,
		profiles:       opts.Profiles,
		history:        opts.History,
		metrics:        opts.Metrics,
		defaults:       opts.DefaultOptions,
		heartbeat:      opts.Heartbeat,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	return s
}

// Routes 注册 HTTP 路由
func (s *GameServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	r.Get("/guilds/{guildID}/scoreboard", s.handleScoreboard)
	return r
}

func (s *GameServer) Start() error {
	if s.rpcAddr != "" {
		rpcServer, err := gamerpc.NewServer(s.rpcAddr)
		if err != nil {
			return err
		}
		// 注册RPC服务
		if err := rpcServer.Register(gamerpc.NewGameService(s.games, s.profiles, s.history)); err != nil {
			return err
		}
		s.rpcServer = rpcServer
		go s.rpcServer.Start()
	}

	s.httpServer = &http.Server{Addr: s.addr, Handler: s.Routes()}
	logger.Log.Infof("Game server listening on %s", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *GameServer) Shutdown(ctx context.Context) error {
	close(s.shutdownChan)
	if s.rpcServer != nil {
		s.rpcServer.Stop()
	}
	if err := s.games.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Failed to end games on shutdown: %v", err)
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *GameServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"games":       s.games.ActiveSessions(),
		"connections": s.sessionManager.Count(),
	})
}

func (s *GameServer) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	guildID := chi.URLParam(r, "guildID")
	g, ok := s.games.Get(guildID)
	if !ok {
		writeJSON(w, http.StatusNotFound, network.ErrorEvent{Message: game.ErrSessionNotFound.Error()})
		return
	}

	snap := g.Snapshot()
	writeJSON(w, http.StatusOK, network.ScoreboardEvent{
		GuildID:   guildID,
		Standings: standingPayloads(snap.Standings),
		Winners:   standingPayloads(snap.Winners),
		Finished:  snap.Finished,
	})
}

func standingPayloads(standings []scoreboard.Standing) []network.StandingPayload {
	out := make([]network.StandingPayload, 0, len(standings))
	for _, st := range standings {
		out = append(out, network.StandingPayload{ID: st.ID, Name: st.Name, Score: st.Score, Members: st.Members})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.Warnf("Failed to write response: %v", err)
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	if s.heartbeat > 0 {
		wsConn.SetHeartbeat(s.heartbeat)
	}
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.metrics.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.metrics.DecOnlinePlayers()
		// 断线的玩家离开游戏，游戏本身继续
		if playerID, guildID := sess.Identity(); guildID != "" {
			_ = s.games.Leave(guildID, playerID)
		}
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.metrics.IncMessagesReceived()
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		_ = sess.Send(network.MsgTypeHeartbeat, nil)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess, packet)
	case network.MsgTypeJoinGame:
		s.handleJoinGame(sess, packet)
	case network.MsgTypeLeaveGame:
		s.handleLeaveGame(sess)
	case network.MsgTypeEndGame:
		s.handleEndGame(sess)
	case network.MsgTypeGuess:
		s.handleGuess(sess, packet)
	case network.MsgTypeSkip:
		s.handleSkip(sess)
	case network.MsgTypeHint:
		s.handleHint(sess)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

func newPlayer(info network.PlayerInfo) *scoreboard.Player {
	p := scoreboard.NewPlayer(info.PlayerID, info.Name, info.AvatarURL, info.FirstGameOfDay)
	p.TeamName = info.TeamName
	return p
}

func (s *GameServer) handleStartGame(sess *session.Session, packet *network.Packet) {
	var req network.StartGameRequest
	if err := network.Decode(packet, &req); err != nil || req.GuildID == "" || req.Player.PlayerID == "" {
		s.replyError(sess, errors.New("invalid start request"))
		return
	}
	opts := s.defaults
	if req.Options != nil {
		opts = *req.Options
	}

	// 先绑定，首回合的广播才能送达
	sess.Bind(req.Player.PlayerID, req.GuildID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.games.Start(ctx, req.GuildID, opts, req.GameType, []*scoreboard.Player{newPlayer(req.Player)}); err != nil {
		if !errors.Is(err, game.ErrSessionExists) {
			sess.Bind(req.Player.PlayerID, "")
		}
		s.replyError(sess, err)
		return
	}
	logger.Log.Infof("Session %s started a %s game in guild %s", sess.GetID(), req.GameType, req.GuildID)
}

func (s *GameServer) handleJoinGame(sess *session.Session, packet *network.Packet) {
	var req network.JoinGameRequest
	if err := network.Decode(packet, &req); err != nil || req.GuildID == "" || req.Player.PlayerID == "" {
		s.replyError(sess, errors.New("invalid join request"))
		return
	}
	if err := s.games.Join(req.GuildID, newPlayer(req.Player)); err != nil {
		s.replyError(sess, err)
		return
	}
	sess.Bind(req.Player.PlayerID, req.GuildID)
	logger.Log.Infof("Session %s joined guild %s", sess.GetID(), req.GuildID)
}

func (s *GameServer) handleLeaveGame(sess *session.Session) {
	playerID, guildID := sess.Identity()
	if guildID == "" {
		return
	}
	if err := s.games.Leave(guildID, playerID); err != nil {
		s.replyError(sess, err)
	}
	sess.Bind(playerID, "")
}

func (s *GameServer) handleEndGame(sess *session.Session) {
	_, guildID := sess.Identity()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.games.End(ctx, guildID); err != nil {
		s.replyError(sess, err)
	}
}

func (s *GameServer) handleGuess(sess *session.Session, packet *network.Packet) {
	var req network.GuessRequest
	if err := network.Decode(packet, &req); err != nil {
		s.replyError(sess, errors.New("invalid guess"))
		return
	}
	playerID, guildID := sess.Identity()
	correct, err := s.games.Guess(guildID, playerID, req.Text, time.Now())
	if err != nil {
		s.replyError(sess, err)
		return
	}
	s.reply(sess, network.MsgTypeGuessResult, network.GuessResultEvent{Correct: correct})
}

func (s *GameServer) handleSkip(sess *session.Session) {
	playerID, guildID := sess.Identity()
	if _, err := s.games.Skip(guildID, playerID); err != nil {
		s.replyError(sess, err)
	}
}

func (s *GameServer) handleHint(sess *session.Session) {
	playerID, guildID := sess.Identity()
	hint, used, err := s.games.Hint(guildID, playerID)
	if err != nil {
		s.replyError(sess, err)
		return
	}
	if !used {
		s.reply(sess, network.MsgTypeHintReply, network.HintReplyEvent{Hint: hint, Used: used})
	}
}

func (s *GameServer) reply(sess *session.Session, msgID uint16, payload any) {
	data, err := network.Encode(payload)
	if err != nil {
		logger.Log.Errorf("Failed to encode reply %d: %v", msgID, err)
		return
	}
	if err := sess.Send(msgID, data); err != nil {
		logger.Log.Debugf("Failed to send reply %d to %s: %v", msgID, sess.GetID(), err)
	}
}

func (s *GameServer) replyError(sess *session.Session, err error) {
	s.reply(sess, network.MsgTypeError, network.ErrorEvent{Message: err.Error()})
}

type nopMetrics struct{}

func (nopMetrics) IncOnlinePlayers()    {}
func (nopMetrics) DecOnlinePlayers()    {}
func (nopMetrics) IncMessagesReceived() {}
