package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/Zoidburgh/hexuki/internal/board"
	"github.com/Zoidburgh/hexuki/internal/engine"
	"github.com/Zoidburgh/hexuki/internal/protocol"
	"github.com/Zoidburgh/hexuki/internal/storage"
)

var (
	positionStr = flag.String("position", "", "search this position string and exit (default: interactive protocol)")
	depth       = flag.Int("depth", 0, "maximum search depth (0 = stored preference)")
	moveTimeMs  = flag.Int("movetime", 0, "time limit in milliseconds (0 = stored preference)")
	ttSizeMB    = flag.Int("tt", 0, "transposition table target size in MB (0 = stored preference)")
	verbose     = flag.Bool("verbose", false, "print a diagnostic line per completed depth")
	noStorage   = flag.Bool("no-storage", false, "skip the preference database")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	cfg := loadConfig(log)
	if *depth > 0 {
		cfg.MaxDepth = *depth
	}
	if *moveTimeMs > 0 {
		cfg.TimeLimit = time.Duration(*moveTimeMs) * time.Millisecond
	}
	if *ttSizeMB > 0 {
		cfg.TTSizeMB = *ttSizeMB
	}
	cfg.Verbose = *verbose

	if *positionStr != "" {
		runOnce(*positionStr, cfg)
		return
	}

	if err := protocol.New(os.Stdin, os.Stdout, cfg).Run(); err != nil {
		log.Fatal().Err(err).Msg("protocol loop failed")
	}
}

// loadConfig starts from the engine defaults and overlays stored
// preferences when the database is available.
func loadConfig(log zerolog.Logger) engine.Config {
	cfg := engine.DefaultConfig()
	if *noStorage {
		return cfg
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Warn().Err(err).Msg("preference database unavailable, using defaults")
		return cfg
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Warn().Err(err).Msg("could not load preferences, using defaults")
		return cfg
	}
	cfg.MaxDepth = prefs.MaxDepth
	cfg.TimeLimit = prefs.TimeLimit
	cfg.TTSizeMB = prefs.TTSizeMB
	return cfg
}

func runOnce(position string, cfg engine.Config) {
	pos := board.ParsePosition(position)
	result := engine.FindBestMove(pos, cfg)
	fmt.Printf("bestmove %s score %d depth %d nodes %d time %dms timeout %v tt %d/%d\n",
		result.BestMove, result.Score, result.Depth, result.Nodes,
		result.Time.Milliseconds(), result.Timeout, result.TTHits, result.TTHits+result.TTMisses)
}
