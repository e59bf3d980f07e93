// Package boardserver is a reference implementation of the remote
// leaderboard API consumed by the leaderboard client:
//
//	GET  /authorize      issue an identity token
//	GET  /get?key=K      all entries, best first
//	POST /entry/upload   multipart {key, username, score, extra, userGuid}
//	GET  /live?key=K     websocket feed of new entries
//
// The server trusts submitted scores.
package boardserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/storage"
)

// Config holds configuration for the board server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8787").
	Address string

	// PublicKey must accompany every read and upload.
	PublicKey string

	// DBPath is the SQLite database holding the entries.
	DBPath string

	// MaxUploadBytes bounds the multipart body.
	MaxUploadBytes int64
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:        ":8787",
		PublicKey:      "retromorph",
		DBPath:         "~/.retromorph/board.db",
		MaxUploadBytes: 64 << 10,
	}
}

// Server serves the leaderboard API from a storage.Store.
type Server struct {
	config  Config
	store   *storage.Store
	logger  *log.Logger
	hub     *hub
	newGUID func() string
	http    *http.Server
}

// New creates a server over an open store. A nil logger logs to stderr.
func New(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "retromorph-board",
		})
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	s := &Server{
		config:  cfg,
		store:   store,
		logger:  logger,
		hub:     newHub(),
		newGUID: uuid.NewString,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the API routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /authorize", s.handleAuthorize)
	mux.HandleFunc("GET /get", s.handleGet)
	mux.HandleFunc("POST /entry/upload", s.handleUpload)
	mux.HandleFunc("GET /live", s.handleLive)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return s.loggingMiddleware(mux)
}

func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	guid := s.newGUID()
	s.logger.Info("identity issued", "guid", guid, "remote", r.RemoteAddr)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(guid))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r.URL.Query().Get("key")) {
		http.Error(w, "invalid key", http.StatusForbidden)
		return
	}
	entries, err := s.store.BoardEntries(0)
	if err != nil {
		s.logger.Error("board query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	board := leaderboard.WireBoard{Entries: make([]leaderboard.WireEntry, len(entries))}
	for i, e := range entries {
		board.Entries[i] = leaderboard.WireEntry{
			Username: e.Username,
			Score:    e.Score,
			UserGUID: e.UserGUID,
			Rank:     i + 1,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(board); err != nil {
		s.logger.Warn("board encode failed", "error", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	if !s.authorized(r.FormValue("key")) {
		http.Error(w, "invalid key", http.StatusForbidden)
		return
	}

	entry, err := parseEntry(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inserted, err := s.store.AddBoardEntry(entry)
	if err != nil {
		s.logger.Error("entry not saved", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if inserted {
		s.logger.Info("entry uploaded", "username", entry.Username, "score", entry.Score)
		s.broadcast(entry)
	} else {
		s.logger.Debug("duplicate upload ignored", "key", entry.UserGUID)
	}
	_, _ = w.Write([]byte("ok"))
}

var (
	errMissingName  = errors.New("username is required")
	errMissingGUID  = errors.New("userGuid is required")
	errInvalidScore = errors.New("score must be a non-negative integer")
)

func parseEntry(r *http.Request) (storage.BoardEntry, error) {
	name := strings.TrimSpace(r.FormValue("username"))
	if name == "" {
		return storage.BoardEntry{}, errMissingName
	}
	guid := strings.TrimSpace(r.FormValue("userGuid"))
	if guid == "" {
		return storage.BoardEntry{}, errMissingGUID
	}
	score, err := strconv.Atoi(strings.TrimSpace(r.FormValue("score")))
	if err != nil || score < 0 {
		return storage.BoardEntry{}, errInvalidScore
	}
	return storage.BoardEntry{
		Username: name,
		Score:    score,
		UserGUID: guid,
		Extra:    r.FormValue("extra"),
	}, nil
}

// broadcast pushes a new entry to live subscribers with its current rank.
func (s *Server) broadcast(e storage.BoardEntry) {
	if s.hub.count() == 0 {
		return
	}
	rank := 0
	if entries, err := s.store.BoardEntries(0); err == nil {
		for i, other := range entries {
			if other.UserGUID == e.UserGUID {
				rank = i + 1
				break
			}
		}
	}
	s.hub.publish(leaderboard.LiveEvent{
		Type: leaderboard.LiveEntryType,
		Entry: leaderboard.WireEntry{
			Username: e.Username,
			Score:    e.Score,
			UserGUID: e.UserGUID,
			Rank:     rank,
		},
	})
}

func (s *Server) authorized(key string) bool {
	return s.config.PublicKey == "" || key == s.config.PublicKey
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	s.logger.Info("starting board server", "address", ln.Addr().String())

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
	return s.Shutdown()
}

// Shutdown gracefully stops the server and closes live connections.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.hub.closeAll()
	return s.http.Shutdown(ctx)
}
