package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/storage"
)

// localNamespace holds the terminal player's leaderboard identity.
const localNamespace = "local"

// loadEngineConfig loads YAML tuning and applies the difficulty preset.
func loadEngineConfig() (config.EngineConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func logLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// fileLogger logs to --log-file, since stderr belongs to the game screen.
// It returns a discarding logger when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	path := expandHome(flagLogFile)
	if path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel(),
	})
	return logger, func() { f.Close() }
}

// stderrLogger is used by the servers.
func stderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel(),
	})
}

// openStore opens the local database, degrading to nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// leaderboardOptions merges the config file's leaderboard section with flags.
func leaderboardOptions(cfg config.EngineConfig, logger *log.Logger) leaderboard.Options {
	opts := leaderboard.Options{
		BaseURL:   cfg.Leaderboard.BaseURL,
		PublicKey: cfg.Leaderboard.PublicKey,
		Timeout:   cfg.Leaderboard.Timeout,
		Limit:     cfg.Leaderboard.DisplayLimit,
		Logger:    logger,
	}
	if flagAPI != "" {
		opts.BaseURL = flagAPI
	}
	if flagKey != "" {
		opts.PublicKey = flagKey
	}
	return opts
}

// newBoard creates the local player's leaderboard client. Identity and
// cached standings live in the store's local namespace, or in memory when
// there is no store.
func newBoard(store *storage.Store, opts leaderboard.Options) *leaderboard.Client {
	var kv leaderboard.Store
	if store != nil {
		kv = store.KV(localNamespace)
	}
	return leaderboard.New(kv, opts)
}
