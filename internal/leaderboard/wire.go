package leaderboard

// WireEntry is the canonical /get row the reference server emits. The client
// also accepts the other casings listed in decodeEntries.
type WireEntry struct {
	Username string `json:"Username"`
	Score    int    `json:"Score"`
	UserGUID string `json:"UserGuid"`
	Rank     int    `json:"Rank"`
}

// WireBoard is the /get response body.
type WireBoard struct {
	Entries []WireEntry `json:"entries"`
}

// LiveEvent is one message on the /live websocket feed.
type LiveEvent struct {
	Type  string    `json:"type"` // "entry"
	Entry WireEntry `json:"data"`
}

// LiveEntryType marks a newly uploaded entry.
const LiveEntryType = "entry"
