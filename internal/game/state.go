package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

// Transitions mutate the state they are given. On error the state is left
// untouched.

// ResetToNewGame clears players and rounds and starts setup with two default players
func ResetToNewGame(state *models.AppState) {
	*state = *models.NewAppState()
	_ = AddPlayer(state)
	_ = AddPlayer(state)
}

// EnsureDefaultPlayers adds the two default players when setup starts empty
func EnsureDefaultPlayers(state *models.AppState) {
	if state.View == models.ViewSetup && len(state.Players) == 0 {
		_ = AddPlayer(state)
		_ = AddPlayer(state)
	}
}

// AddPlayer appends a player named after its position, with a zero pending input
func AddPlayer(state *models.AppState) error {
	if len(state.Players) >= MaxPlayers {
		return ErrTooManyPlayers
	}
	p := models.Player{ID: NewPlayerID(), Name: DefaultPlayerName(len(state.Players) + 1)}
	state.Players = append(state.Players, p)
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string)
	}
	state.PendingInputs[p.ID] = DefaultInput
	return nil
}

// RemovePlayer drops a player from the roster, from every round and from the
// pending inputs. At least MinPlayers must remain.
func RemovePlayer(state *models.AppState, playerID string) error {
	idx := indexOfPlayer(state, playerID)
	if idx < 0 {
		return ErrUnknownPlayer
	}
	if len(state.Players)-1 < MinPlayers {
		return ErrTooFewPlayers
	}
	state.Players = append(state.Players[:idx:idx], state.Players[idx+1:]...)
	delete(state.PendingInputs, playerID)
	for _, r := range state.Rounds {
		delete(r.Scores, playerID)
	}
	return nil
}

// RenamePlayer sets a trimmed name with control characters replaced by
// spaces; blank names are rejected and the old name kept
func RenamePlayer(state *models.AppState, playerID, name string) error {
	idx := indexOfPlayer(state, playerID)
	if idx < 0 {
		return ErrUnknownPlayer
	}
	name = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name))
	if name == "" {
		return ErrEmptyName
	}
	state.Players[idx].Name = name
	return nil
}

// SetInput stores the raw pending text for a player
func SetInput(state *models.AppState, playerID, value string) error {
	if indexOfPlayer(state, playerID) < 0 {
		return ErrUnknownPlayer
	}
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string)
	}
	state.PendingInputs[playerID] = value
	return nil
}

// SetInputs stores several pending texts at once. Every player must exist.
func SetInputs(state *models.AppState, inputs map[string]string) error {
	for id := range inputs {
		if indexOfPlayer(state, id) < 0 {
			return ErrUnknownPlayer
		}
	}
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string, len(inputs))
	}
	for id, value := range inputs {
		state.PendingInputs[id] = value
	}
	return nil
}

// StartGame moves from setup to scoring
func StartGame(state *models.AppState) error {
	if len(state.Players) < MinPlayers {
		return ErrTooFewPlayers
	}
	if len(state.Players) > MaxPlayers {
		return ErrTooManyPlayers
	}
	fillMissingInputs(state)
	state.View = models.ViewScore
	return nil
}

// SubmitRound validates every pending input and appends a round stamped at now
func SubmitRound(state *models.AppState, now time.Time) error {
	if ComputeTotals(state.Players, state.Rounds).End.Ended {
		return ErrGameEnded
	}

	inputs := make(map[string]string, len(state.Players))
	for _, p := range state.Players {
		raw, ok := state.PendingInputs[p.ID]
		if !ok {
			raw = DefaultInput
		}
		if strings.TrimSpace(raw) == "" {
			return ErrMissingScore
		}
		inputs[p.ID] = raw
	}

	scores, err := parseScores(state.Players, inputs)
	if err != nil {
		return err
	}

	state.Rounds = append(state.Rounds, models.Round{Timestamp: Timestamp(now), Scores: scores})
	resetInputs(state)
	return nil
}

// UndoLastRound removes the most recent round
func UndoLastRound(state *models.AppState) error {
	if len(state.Rounds) == 0 {
		return ErrNoRounds
	}
	state.Rounds = state.Rounds[:len(state.Rounds)-1]
	return nil
}

// ClearHistory removes every round, keeping players
func ClearHistory(state *models.AppState) error {
	if len(state.Rounds) == 0 {
		return ErrHistoryEmpty
	}
	state.Rounds = []models.Round{}
	resetInputs(state)
	return nil
}

// ResetScores drops every round and returns to scoring with the same roster
func ResetScores(state *models.AppState) {
	state.Rounds = []models.Round{}
	resetInputs(state)
	state.EditIndex = nil
	state.View = models.ViewScore
}

// OpenHistory shows the round list
func OpenHistory(state *models.AppState) {
	state.View = models.ViewHistory
}

// BackToScore returns to score entry
func BackToScore(state *models.AppState) {
	state.EditIndex = nil
	state.View = models.ViewScore
}

// OpenEdit selects a historical round for editing
func OpenEdit(state *models.AppState, index int) error {
	if index < 0 || index >= len(state.Rounds) {
		return fmt.Errorf("open round %d: %w", index+1, ErrInvalidRound)
	}
	state.EditIndex = &index
	state.View = models.ViewEdit
	return nil
}

// CancelEdit drops the selection and returns to history
func CancelEdit(state *models.AppState) {
	state.EditIndex = nil
	state.View = models.ViewHistory
}

// SaveEdit replaces the selected round's scores for every current player.
// Entries of players no longer on the roster are kept. Totals need no update
// since they are always recomputed.
func SaveEdit(state *models.AppState, inputs map[string]string) error {
	if state.EditIndex == nil || *state.EditIndex < 0 || *state.EditIndex >= len(state.Rounds) {
		return ErrInvalidRound
	}
	idx := *state.EditIndex

	parsed, err := parseScores(state.Players, inputs)
	if err != nil {
		return err
	}

	round := state.Rounds[idx].Clone()
	for id, v := range parsed {
		round.Scores[id] = v
	}
	state.Rounds[idx].Scores = round.Scores

	state.EditIndex = nil
	state.View = models.ViewHistory
	return nil
}

// EditInputs returns the prefilled inputs for the round being edited
func EditInputs(state *models.AppState) (map[string]string, error) {
	if state.EditIndex == nil || *state.EditIndex < 0 || *state.EditIndex >= len(state.Rounds) {
		return nil, ErrInvalidRound
	}
	round := state.Rounds[*state.EditIndex]
	inputs := make(map[string]string, len(state.Players))
	for _, p := range state.Players {
		inputs[p.ID] = strconv.Itoa(round.Score(p.ID))
	}
	return inputs, nil
}

// Repair fixes a loaded state so every view can render it
func Repair(state *models.AppState) {
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string)
	}
	if state.Rounds == nil {
		state.Rounds = []models.Round{}
	}
	for i := range state.Rounds {
		if state.Rounds[i].Scores == nil {
			state.Rounds[i].Scores = make(map[string]int)
		}
	}
	if len(state.Players) > MaxPlayers {
		state.Players = state.Players[:MaxPlayers]
	}
	fillMissingInputs(state)
	if !state.View.Valid() || (len(state.Players) == 0 && state.View != models.ViewSetup) {
		state.View = models.ViewSetup
	}
	if state.View == models.ViewEdit {
		if state.EditIndex == nil || *state.EditIndex < 0 || *state.EditIndex >= len(state.Rounds) {
			state.View = models.ViewHistory
			state.EditIndex = nil
		}
	}
}

func parseScores(players []models.Player, inputs map[string]string) (map[string]int, error) {
	scores := make(map[string]int, len(players))
	for _, p := range players {
		v, ok := ParseScore(inputs[p.ID])
		if !ok {
			return nil, &ScoreError{PlayerID: p.ID, PlayerName: p.Name}
		}
		scores[p.ID] = v
	}
	return scores, nil
}

func fillMissingInputs(state *models.AppState) {
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string)
	}
	for _, p := range state.Players {
		if _, ok := state.PendingInputs[p.ID]; !ok {
			state.PendingInputs[p.ID] = DefaultInput
		}
	}
}

func resetInputs(state *models.AppState) {
	if state.PendingInputs == nil {
		state.PendingInputs = make(map[string]string)
	}
	for _, p := range state.Players {
		state.PendingInputs[p.ID] = DefaultInput
	}
}

func indexOfPlayer(state *models.AppState, playerID string) int {
	for i, p := range state.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
