package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Follow streams newly uploaded entries from the server's /live feed until
// ctx is cancelled or the connection drops. Mine is set for entries that
// carry this client's GUID.
func (c *Client) Follow(ctx context.Context, fn func(Entry)) error {
	wsURL, err := liveURL(c.baseURL, c.key)
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, resp, err := dialer.DialContext(ctx, wsURL, http.Header{})
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			return fmt.Errorf("%w: live feed: %s", ErrUnreachable, resp.Status)
		}
		return fmt.Errorf("%w: live feed: %w", ErrUnreachable, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	guid := c.GUID()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: live feed: %w", ErrUnreachable, err)
		}
		var ev LiveEvent
		if err := json.Unmarshal(data, &ev); err != nil || ev.Type != LiveEntryType {
			c.logger.Debug("live message skipped", "err", err)
			continue
		}
		fn(Entry{
			Name:  ev.Entry.Username,
			Score: ev.Entry.Score,
			Rank:  ev.Entry.Rank,
			Mine:  guid != "" && guidPrefix(ev.Entry.UserGUID) == guid,
		})
	}
}

// liveURL maps an http(s) base URL to the ws(s) feed address.
func liveURL(base, key string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("%w: no server configured", ErrUnreachable)
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("leaderboard: bad base url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/live"
	u.RawQuery = url.Values{"key": {key}}.Encode()
	return u.String(), nil
}
