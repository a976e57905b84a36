package models

// Round is one complete entry of scores. Scores are keyed by player ID; a
// player without an entry contributed 0 to that round.
type Round struct {
	Timestamp string         `json:"ts"`
	Scores    map[string]int `json:"scores"`
}

// Score returns the player's score for the round, 0 when absent
func (r Round) Score(playerID string) int {
	return r.Scores[playerID]
}

// Clone returns a deep copy of the round
func (r Round) Clone() Round {
	scores := make(map[string]int, len(r.Scores))
	for id, v := range r.Scores {
		scores[id] = v
	}
	return Round{Timestamp: r.Timestamp, Scores: scores}
}
