// Package leaderboard is the best-effort online leaderboard client.
//
// Scores are committed optimistically to a locally cached standings list,
// then uploaded. Failed uploads are queued durably and retried after the next
// successful fetch or commit. Network failures never reach gameplay: they are
// logged and surface only as Offline() == true.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

var (
	ErrInvalidName = errors.New("leaderboard: username must be 3-10 characters")
	ErrNoIdentity  = errors.New("leaderboard: no user identity")
	ErrUnreachable = errors.New("leaderboard: server unreachable")
)

const (
	MinNameLen     = 3
	MaxNameLen     = 10
	DefaultLimit   = 10
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// Entry is one displayed leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Rank  int    `json:"rank"`
	Mine  bool   `json:"isMine"`
}

// Submission is a score waiting to be uploaded.
type Submission struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds, also the key suffix
}

// Stats aggregates the last fetched board.
type Stats struct {
	TotalGames   int
	TotalPlayers int
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	PublicKey  string
	Timeout    time.Duration // Per request; DefaultTimeout when zero
	Limit      int           // Displayed rows; DefaultLimit when zero
	HTTPClient *http.Client
	Logger     *log.Logger
	Now        func() time.Time
}

// Client talks to the remote leaderboard API. It is safe for concurrent use;
// network operations are serialized.
type Client struct {
	baseURL string
	key     string
	timeout time.Duration
	limit   int
	http    *http.Client
	logger  *log.Logger
	now     func() time.Time
	store   Store

	op sync.Mutex // held for the duration of a network operation

	mu        sync.Mutex
	username  string
	guid      string
	entries   []Entry
	pending   []Submission
	offline   bool
	stats     Stats
	lastStamp int64
}

// New creates a client and restores identity and cached state from store.
func New(store Store, opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		key:     opts.PublicKey,
		timeout: opts.Timeout,
		limit:   opts.Limit,
		http:    opts.HTTPClient,
		logger:  opts.Logger,
		now:     opts.Now,
		store:   store,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.limit <= 0 {
		c.limit = DefaultLimit
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	c.load()
	return c
}

// ValidateName checks the username length after trimming spaces.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinNameLen || n > MaxNameLen {
		return ErrInvalidName
	}
	return nil
}

// Username returns the stored username, or "" when none is set.
func (c *Client) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// GUID returns the stored identity token, or "" when none was issued yet.
func (c *Client) GUID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.guid
}

// Offline reports whether the last network operation failed.
func (c *Client) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Standings returns a copy of the displayed leaderboard.
func (c *Client) Standings() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

// Pending returns a copy of the queued submissions, oldest first.
func (c *Client) Pending() []Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Submission(nil), c.pending...)
}

// Stats returns aggregates from the last successful fetch.
func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// SetUsername validates and stores the username.
func (c *Client) SetUsername(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	c.mu.Lock()
	c.username = name
	c.mu.Unlock()
	return c.persist(KeyUsername, name)
}

// RegisterUser stores the username, obtains an identity and submits the
// score that prompted registration (if any).
func (c *Client) RegisterUser(ctx context.Context, name string, score int) error {
	if err := c.SetUsername(name); err != nil {
		return err
	}
	if score > 0 {
		return c.CommitScore(ctx, name, score)
	}
	c.op.Lock()
	defer c.op.Unlock()
	_, err := c.ensureGUID(ctx)
	return err
}

// CommitScore records a finished game. The local standings are updated
// immediately; the upload is queued when the server cannot be reached.
// Without an identity the attempt is abandoned and nothing is queued.
func (c *Client) CommitScore(ctx context.Context, name string, score int) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	c.insertLocked(Entry{Name: name, Score: score, Mine: true})
	entries := c.entries
	c.mu.Unlock()
	c.persistJSON(KeyEntries, entries)

	guid, err := c.ensureGUID(ctx)
	if err != nil {
		c.logger.Warn("score not submitted, no identity", "name", name, "score", score, "err", err)
		return err
	}

	sub := Submission{Name: name, Score: score, Timestamp: c.stamp()}
	if err := c.submit(ctx, guid, sub); err != nil {
		c.mu.Lock()
		c.pending = append(c.pending, sub)
		c.offline = true
		pending := c.pending
		c.mu.Unlock()
		c.persistJSON(KeyPending, pending)
		c.logger.Warn("score queued", "name", name, "score", score, "pending", len(pending), "err", err)
		return err
	}

	c.setOffline(false)
	c.drain(ctx, guid)
	return nil
}

// FetchGlobal refreshes the standings and stats, then drains the pending
// queue. An unparseable body yields an empty board, not an error.
func (c *Client) FetchGlobal(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()

	body, err := c.get(ctx, "/get?key="+url.QueryEscape(c.key))
	if err != nil {
		c.setOffline(true)
		c.logger.Warn("leaderboard fetch failed", "err", err)
		return err
	}

	rows, err := decodeEntries(body)
	if err != nil {
		c.logger.Debug("leaderboard body not understood", "err", err)
		rows = nil
	}

	c.mu.Lock()
	guid := c.guid
	c.entries, c.stats = c.standingsFrom(rows, guid)
	c.offline = false
	entries := c.entries
	c.mu.Unlock()
	c.persistJSON(KeyEntries, entries)

	if guid != "" {
		c.drain(ctx, guid)
	}
	return nil
}

// standingsFrom sorts rows by score and keeps the display limit.
func (c *Client) standingsFrom(rows []remoteEntry, guid string) ([]Entry, Stats) {
	players := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		players[guidPrefix(r.GUID)] = struct{}{}
	}
	stats := Stats{TotalGames: len(rows), TotalPlayers: len(players)}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	rows = rows[:min(len(rows), c.limit)]

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{
			Name:  r.Username,
			Score: r.Score,
			Rank:  i + 1,
			Mine:  guid != "" && guidPrefix(r.GUID) == guid,
		}
	}
	return entries, stats
}

// drain uploads queued submissions in order, stopping at the first failure.
// Callers hold c.op.
func (c *Client) drain(ctx context.Context, guid string) {
	sent := 0
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.mu.Unlock()
			break
		}
		sub := c.pending[0]
		c.mu.Unlock()

		if err := c.submit(ctx, guid, sub); err != nil {
			c.setOffline(true)
			c.logger.Warn("pending drain stopped", "sent", sent, "left", len(c.Pending()), "err", err)
			return
		}

		c.mu.Lock()
		c.pending = append([]Submission(nil), c.pending[1:]...)
		pending := c.pending
		c.mu.Unlock()
		c.persistJSON(KeyPending, pending)
		sent++
	}
	if sent > 0 {
		c.logger.Info("pending scores submitted", "count", sent)
	}
}

// ensureGUID returns the stored identity, asking /authorize once when
// there is none. Callers hold c.op.
func (c *Client) ensureGUID(ctx context.Context) (string, error) {
	if guid := c.GUID(); guid != "" {
		return guid, nil
	}
	body, err := c.get(ctx, "/authorize")
	if err != nil {
		c.setOffline(true)
		return "", fmt.Errorf("%w: %w", ErrNoIdentity, err)
	}
	guid := strings.TrimSpace(string(body))
	if guid == "" {
		return "", fmt.Errorf("%w: empty authorize response", ErrNoIdentity)
	}

	c.mu.Lock()
	c.guid = guid
	c.mu.Unlock()
	if err := c.persist(KeyGUID, guid); err != nil {
		c.logger.Warn("identity not persisted", "err", err)
	}
	c.logger.Info("identity issued", "guid", guid)
	return guid, nil
}

// stamp returns a strictly increasing millisecond timestamp so that two
// submissions from this client never share a key.
func (c *Client) stamp() int64 {
	ms := c.now().UnixMilli()
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms <= c.lastStamp {
		ms = c.lastStamp + 1
	}
	c.lastStamp = ms
	return ms
}

// SubmissionKey is the per-submission identity sent as userGuid.
func SubmissionKey(guid string, timestamp int64) string {
	return guid + "-" + strconv.FormatInt(timestamp, 10)
}

func (c *Client) submit(ctx context.Context, guid string, sub Submission) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ k, v string }{
		{"key", c.key},
		{"username", sub.Name},
		{"score", strconv.Itoa(sub.Score)},
		{"extra", ""},
		{"userGuid", SubmissionKey(guid, sub.Timestamp)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.k, f.v); err != nil {
			return fmt.Errorf("leaderboard: encode form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("leaderboard: encode form: %w", err)
	}

	_, err := c.do(ctx, http.MethodPost, "/entry/upload", &buf, w.FormDataContentType())
	return err
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: no server configured", ErrUnreachable)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnreachable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrUnreachable, method, path, resp.StatusCode)
	}
	return data, nil
}

// insertLocked adds an optimistic row and re-ranks. Callers hold c.mu.
func (c *Client) insertLocked(e Entry) {
	entries := append(append([]Entry(nil), c.entries...), e)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	entries = entries[:min(len(entries), c.limit)]
	for i := range entries {
		entries[i].Rank = i + 1
	}
	c.entries = entries
}

func (c *Client) setOffline(v bool) {
	c.mu.Lock()
	c.offline = v
	c.mu.Unlock()
}

func (c *Client) load() {
	if v, ok, err := c.store.Get(KeyUsername); err == nil && ok {
		c.username = v
	}
	if v, ok, err := c.store.Get(KeyGUID); err == nil && ok {
		c.guid = v
	}
	c.loadJSON(KeyEntries, &c.entries)
	c.loadJSON(KeyPending, &c.pending)
	for _, p := range c.pending {
		c.lastStamp = max(c.lastStamp, p.Timestamp)
	}
}

func (c *Client) loadJSON(key string, v any) {
	raw, ok, err := c.store.Get(key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "err", err)
		return
	}
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		c.logger.Debug("cache entry discarded", "key", key, "err", err)
	}
}

func (c *Client) persist(key, value string) error {
	if err := c.store.Set(key, value); err != nil {
		return fmt.Errorf("leaderboard: save %s: %w", key, err)
	}
	return nil
}

func (c *Client) persistJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.persist(key, string(data)); err != nil {
		c.logger.Warn("cache write failed", "err", err)
	}
}
