package models

// AppState is the whole scorekeeper state. Totals are never stored here; they
// are derived from Players and Rounds on every read.
type AppState struct {
	Players       []Player          `json:"players"`
	Rounds        []Round           `json:"rounds"`
	PendingInputs map[string]string `json:"currentInputs"`
	View          View              `json:"view"`
	EditIndex     *int              `json:"editIndex"`
}

// NewAppState returns an empty state on the setup view
func NewAppState() *AppState {
	return &AppState{
		Players:       []Player{},
		Rounds:        []Round{},
		PendingInputs: make(map[string]string),
		View:          ViewSetup,
	}
}

// Player looks up a player by ID
func (s *AppState) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerNames returns the names for the given IDs, in order
func (s *AppState) PlayerNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Player(id); ok {
			names = append(names, p.Name)
		} else {
			names = append(names, "Unknown")
		}
	}
	return names
}

// Clone returns a deep copy of the state
func (s *AppState) Clone() *AppState {
	c := &AppState{
		Players:       append([]Player{}, s.Players...),
		Rounds:        make([]Round, len(s.Rounds)),
		PendingInputs: make(map[string]string, len(s.PendingInputs)),
		View:          s.View,
	}
	for i, r := range s.Rounds {
		c.Rounds[i] = r.Clone()
	}
	for id, v := range s.PendingInputs {
		c.PendingInputs[id] = v
	}
	if s.EditIndex != nil {
		idx := *s.EditIndex
		c.EditIndex = &idx
	}
	return c
}
