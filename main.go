package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/devfolio/assets"
	"github.com/robalobadob/devfolio/internal/game"
	"github.com/robalobadob/devfolio/internal/httpserver"
	"github.com/robalobadob/devfolio/internal/scores"
	"github.com/robalobadob/devfolio/internal/store"
	"github.com/robalobadob/devfolio/internal/symbols"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := symbols.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load symbols")
	}
	grids, err := loadGrids()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load difficulty grids")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/devfolio.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()
	if err := migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	best := scores.NewSQLiteStore(db)

	sessions := store.NewMemoryStore(func() (*game.Controller, *scores.Extension) {
		c := game.NewController(&game.Builder{Grids: grids, Alphabet: symbols.Alphabet()})
		return c, scores.Attach(c, best, scores.NewStopwatch(nil))
	})

	ttl := time.Duration(getEnvInt("SESSION_TTL_MIN", 30)) * time.Minute
	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		secret = "dev-insecure-secret"
		log.Warn().Msg("SESSION_SECRET not set; using development secret")
	}
	tokens, err := httpserver.NewTokens(secret, ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("session tokens")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go sweep(ctx, sessions, ttl)

	difficulties := make([]string, 0, len(grids))
	for _, d := range []game.Difficulty{game.Easy, game.Hard} {
		if _, ok := grids[d]; ok {
			difficulties = append(difficulties, string(d))
		}
	}

	srv := httpserver.New(httpserver.Config{
		Sessions:     sessions,
		Scores:       best,
		Tokens:       tokens,
		Difficulties: difficulties,
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Int("symbols", symbols.Stats()).Msg("starting devfolio server")
	if err := srv.Start(ctx, ":"+port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// loadGrids reads DIFFICULTY_FILE when set, else the embedded table.
func loadGrids() (game.Grids, error) {
	path := getEnv("DIFFICULTY_FILE", "")
	if path == "" {
		return game.DefaultGrids()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return game.ParseGrids(data)
}

// sweep drops idle sessions every minute until ctx ends.
func sweep(ctx context.Context, s store.Store, ttl time.Duration) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(ctx, ttl); n > 0 {
				log.Info().Int("sessions", n).Msg("swept idle game sessions")
			}
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnv(k, "")); err == nil && n > 0 {
		return n
	}
	return def
}
