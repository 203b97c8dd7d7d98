package models

// Clue is the hint a leader gives their agents: a single word and how many
// board cards it is meant to cover. Cleared on every turn handover.
type Clue struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Message is one entry in a room's chat feed. System entries (joins, reveals,
// turn changes, wins) share the feed with player chat and are marked IsLog.
type Message struct {
	Team    TeamColor `json:"team"`
	User    string    `json:"user"`
	Message string    `json:"message"`
	IsLog   bool      `json:"isLog,omitempty"`
}
