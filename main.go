package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wfunc/songquiz/broadcast"
	"github.com/wfunc/songquiz/catalog"
	"github.com/wfunc/songquiz/config"
	"github.com/wfunc/songquiz/exp"
	"github.com/wfunc/songquiz/game"
	"github.com/wfunc/songquiz/logger"
	"github.com/wfunc/songquiz/models"
	"github.com/wfunc/songquiz/monitor"
	"github.com/wfunc/songquiz/persistence"
	"github.com/wfunc/songquiz/selector"
	"github.com/wfunc/songquiz/server"
	"github.com/wfunc/songquiz/services"
	"github.com/wfunc/songquiz/session"
	"github.com/wfunc/songquiz/timer"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger.Init(cfg.Log.Level)
	defer logger.Sync()

	// Initialize Database
	db, err := persistence.NewGormPostgreSQL(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Log.Info("Database connection successful.")

	// Song catalog. "gorm" reads it from the records database.
	var songs catalog.Source
	if cfg.Catalog.Driver == "gorm" {
		songs = catalog.NewGormSource(db.Gorm(), cfg.Catalog.SongsPerArtist)
	} else {
		sqlSource, err := catalog.NewSQLSource(cfg.Catalog.Driver, cfg.Catalog.DSN, cfg.Catalog.SongsPerArtist)
		if err != nil {
			logger.Log.Fatalf("Failed to open catalog: %v", err)
		}
		defer sqlSource.Close()
		songs = sqlSource
	}

	bonusHours, err := exp.NewBonusHours(cfg.Game.Timezone, cfg.Game.PowerHours)
	if err != nil {
		logger.Log.Fatalf("Invalid bonus hours: %v", err)
	}
	bonusArtists := make(map[string]struct{}, len(cfg.Game.BonusArtists))
	for _, name := range cfg.Game.BonusArtists {
		bonusArtists[name] = struct{}{}
	}

	mon := monitor.NewMonitor("songquiz")
	go mon.StartServer(cfg.Server.MetricsAddress)

	timers := timer.NewTimerManager(0)
	defer timers.Stop()

	sessions := session.NewManager()
	profiles := services.NewProfileService(db)

	games := game.NewManager(songs, game.SessionConfig{
		Selector: selector.Config{
			LastPlayedCapacity:  cfg.Selector.LastPlayedCapacity,
			SmallPoolThreshold:  cfg.Selector.SmallPoolThreshold,
			MediumPoolThreshold: cfg.Selector.MediumPoolThreshold,
		},
		RoundTimeout:     cfg.Game.RoundTimeout,
		MultiGuessDelay:  cfg.Game.MultiGuessDelay,
		NextRoundDelay:   cfg.Game.NextRoundDelay,
		EliminationLives: cfg.Game.EliminationLives,
	}, game.Dependencies{
		Broadcaster:  broadcast.NewGuildBroadcaster(sessions),
		Recorder:     db,
		Profiles:     profiles,
		Metrics:      mon,
		Scheduler:    timers,
		BonusArtists: bonusArtists,
		BonusHours:   bonusHours,
	})

	defaults := models.DefaultGameOptions()
	if cfg.Game.Goal > 0 {
		defaults.Goal = cfg.Game.Goal
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(server.Options{
		Addr:           cfg.Server.HTTPAddress,
		RPCAddr:        cfg.Server.RPCAddress,
		Games:          games,
		Sessions:       sessions,
		Profiles:       profiles,
		History:        db,
		Metrics:        mon,
		DefaultOptions: defaults,
		Heartbeat:      cfg.Server.Heartbeat,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Log.Info("Shutting down game server...")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := gameServer.Shutdown(ctx); err != nil {
			logger.Log.Errorf("Shutdown failed: %v", err)
		}
	}()

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
