package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"museumguard/gallery"
	"museumguard/game"
	"museumguard/logger"
	"museumguard/progress"
	"museumguard/store"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	logger.Init()
	log := logger.Log
	if envErr != nil && !os.IsNotExist(envErr) {
		log.WithError(envErr).Warn("Could not load .env file.")
	}

	config := configFromEnv(game.DefaultConfig())

	dbPath := flag.String("db", config.DBPath, "SQLite file for saved progress (empty or :memory: keeps it in memory)")
	startLevel := flag.Int("level", config.StartLevel, "level index to start on")
	showSamples := flag.Bool("show-samples", config.ShowSamples, "draw floor sample points")
	profileDir := flag.String("profile-dir", config.ProfileDir, "write CPU profiles of slow update ticks here")
	flag.Parse()

	config.DBPath = *dbPath
	config.StartLevel = *startLevel
	config.ShowSamples = *showSamples
	config.ProfileDir = *profileDir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStore(config)
	defer st.Close()

	tracker := progress.NewTracker(ctx, st, progress.StoreWinSignal{Store: st})

	session, err := gallery.NewSession(ctx, gallery.Levels(), gallery.DefaultConfig(), tracker, config.StartLevel)
	if err != nil {
		log.WithError(err).Fatal("Failed to start session.")
	}

	g, err := game.NewGame(ctx, config, session)
	if err != nil {
		log.WithError(err).Fatal("Failed to create game.")
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("Game exited with error.")
	}
}

// configFromEnv overlays MUSEUM_GUARD_* variables on the defaults
func configFromEnv(config game.Config) game.Config {
	if v, ok := os.LookupEnv("MUSEUM_GUARD_DB"); ok {
		config.DBPath = v
	}
	if v := os.Getenv("MUSEUM_GUARD_START_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.StartLevel = n
		} else {
			logger.Log.WithField("value", v).Warn("Ignoring invalid MUSEUM_GUARD_START_LEVEL.")
		}
	}
	if v := os.Getenv("MUSEUM_GUARD_DEBUG"); v != "" {
		config.ShowSamples, _ = strconv.ParseBool(v)
	}
	config.ProfileDir = os.Getenv("MUSEUM_GUARD_PROFILE_DIR")
	return config
}

// openStore falls back to memory when the database cannot be opened so the game stays playable
func openStore(config game.Config) store.Store {
	if config.InMemory() {
		logger.Log.Info("Progress kept in memory.")
		return store.NewMemoryStore()
	}
	st, err := store.OpenSQLite(config.DBPath)
	if err != nil {
		logger.Log.WithError(err).WithField("db", config.DBPath).Warn("Falling back to in-memory progress.")
		return store.NewMemoryStore()
	}
	logger.Log.WithField("db", config.DBPath).Info("Progress database opened.")
	return st
}
