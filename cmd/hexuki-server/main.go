package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Zoidburgh/hexuki/internal/engine"
	"github.com/Zoidburgh/hexuki/internal/puzzle"
	"github.com/Zoidburgh/hexuki/internal/server"
	"github.com/Zoidburgh/hexuki/internal/storage"
)

var (
	addr       = flag.String("addr", ":8080", "listen address")
	puzzleDB   = flag.String("puzzles", "", "puzzle library path (default: platform data dir)")
	maxDepth   = flag.Int("depth", 12, "default analysis depth")
	moveTimeMs = flag.Int("movetime", 10000, "default analysis time limit in milliseconds")
)

func main() {
	flag.Parse()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := engine.DefaultConfig()
	cfg.MaxDepth = *maxDepth
	cfg.TimeLimit = time.Duration(*moveTimeMs) * time.Millisecond

	puzzlePath := *puzzleDB
	if puzzlePath == "" {
		p, err := storage.GetPuzzleDBPath()
		if err != nil {
			log.Fatal().Err(err).Msg("resolve puzzle db path")
		}
		puzzlePath = p
	}
	puzzles, err := puzzle.Open(puzzlePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", puzzlePath).Msg("open puzzle library")
	}
	defer puzzles.Close()

	srv := server.New(log, puzzles, cfg)

	done := make(chan struct{})
	go srv.Hub().Run(done)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info().Str("addr", *addr).Msg("analysis server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
