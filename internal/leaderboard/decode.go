package leaderboard

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// remoteEntry is one row of the /get response after field-name fallbacks.
type remoteEntry struct {
	Username string
	Score    int
	GUID     string
	Rank     int
}

// decodeEntries accepts either a bare array or an object with an "entries"
// array. Rows that are not objects are skipped; an unusable body yields no
// entries and an error.
func decodeEntries(body []byte) ([]remoteEntry, error) {
	body = bytes.TrimSpace(body)

	var rows []map[string]json.RawMessage
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &rawRows{&rows}); err != nil {
			return nil, err
		}
	} else {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, err
		}
		raw, ok := pick(wrapper, "entries", "Entries")
		if !ok {
			return nil, nil
		}
		if err := json.Unmarshal(raw, &rawRows{&rows}); err != nil {
			return nil, err
		}
	}

	out := make([]remoteEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, remoteEntry{
			Username: stringField(row, "Username", "username"),
			Score:    intField(row, "Score", "score", "Value", "value"),
			GUID:     stringField(row, "UserGuid", "userGuid"),
			Rank:     intField(row, "Rank", "rank"),
		})
	}
	return out, nil
}

// rawRows decodes an array of objects, dropping elements of any other shape.
type rawRows struct {
	rows *[]map[string]json.RawMessage
}

func (r *rawRows) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	for _, item := range items {
		var m map[string]json.RawMessage
		if json.Unmarshal(item, &m) == nil && m != nil {
			*r.rows = append(*r.rows, m)
		}
	}
	return nil
}

func pick(m map[string]json.RawMessage, names ...string) (json.RawMessage, bool) {
	for _, n := range names {
		if v, ok := m[n]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func stringField(m map[string]json.RawMessage, names ...string) string {
	raw, ok := pick(m, names...)
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// intField reads a number or a numeric string. Fractions are truncated.
func intField(m map[string]json.RawMessage, names ...string) int {
	raw, ok := pick(m, names...)
	if !ok {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return int(f)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// minStampDigits is the width of a Unix millisecond timestamp since 2001.
// Shorter numeric tails are part of the GUID itself (a UUID's last group is
// 12 characters).
const minStampDigits = 13

// guidPrefix strips the millisecond suffix from a composite "<guid>-<ms>"
// key. Plain GUIDs pass through unchanged.
func guidPrefix(key string) string {
	i := strings.LastIndexByte(key, '-')
	if i <= 0 || len(key)-i-1 < minStampDigits {
		return key
	}
	for _, r := range key[i+1:] {
		if r < '0' || r > '9' {
			return key
		}
	}
	return key[:i]
}
