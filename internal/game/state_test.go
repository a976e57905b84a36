package game

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func startedState(t *testing.T, n int) *models.AppState {
	t.Helper()
	state := models.NewAppState()
	for i := 0; i < n; i++ {
		if err := AddPlayer(state); err != nil {
			t.Fatalf("add player: %v", err)
		}
	}
	if err := StartGame(state); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return state
}

func submit(t *testing.T, state *models.AppState, scores ...string) {
	t.Helper()
	for i, p := range state.Players {
		if err := SetInput(state, p.ID, scores[i]); err != nil {
			t.Fatalf("set input: %v", err)
		}
	}
	if err := SubmitRound(state, testNow); err != nil {
		t.Fatalf("submit round: %v", err)
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{" 42 ", 42, true},
		{"-7", -7, true},
		{"+7", 0, false},
		{"1.5", 0, false},
		{"1,000", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseScore(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseScore(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAddPlayerLimits(t *testing.T) {
	state := models.NewAppState()
	for i := 0; i < MaxPlayers; i++ {
		if err := AddPlayer(state); err != nil {
			t.Fatalf("add player %d: %v", i+1, err)
		}
	}
	if err := AddPlayer(state); !errors.Is(err, ErrTooManyPlayers) {
		t.Fatalf("ninth player err = %v, want ErrTooManyPlayers", err)
	}
	if state.Players[2].Name != "Player 3" {
		t.Fatalf("default name = %q, want %q", state.Players[2].Name, "Player 3")
	}
	if state.PendingInputs[state.Players[0].ID] != DefaultInput {
		t.Fatalf("pending input = %q, want %q", state.PendingInputs[state.Players[0].ID], DefaultInput)
	}
}

func TestRemovePlayerKeepsOthersTotals(t *testing.T) {
	state := startedState(t, 3)
	submit(t, state, "5", "10", "15")
	submit(t, state, "1", "2", "3")

	before := ComputeTotals(state.Players, state.Rounds).Now
	removed := state.Players[1].ID
	if err := RemovePlayer(state, removed); err != nil {
		t.Fatalf("remove: %v", err)
	}
	after := ComputeTotals(state.Players, state.Rounds).Now

	for _, p := range state.Players {
		if before[p.ID] != after[p.ID] {
			t.Fatalf("total for %s changed: %d -> %d", p.Name, before[p.ID], after[p.ID])
		}
	}
	for i, r := range state.Rounds {
		if _, ok := r.Scores[removed]; ok {
			t.Fatalf("round %d still has removed player", i+1)
		}
	}
	if _, ok := state.PendingInputs[removed]; ok {
		t.Fatal("pending input for removed player kept")
	}
	if err := RemovePlayer(state, state.Players[0].ID); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("remove below minimum err = %v, want ErrTooFewPlayers", err)
	}
}

func TestRenamePlayer(t *testing.T) {
	state := startedState(t, 2)
	id := state.Players[0].ID
	if err := RenamePlayer(state, id, "  Ada "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := RenamePlayer(state, id, "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank rename err = %v, want ErrEmptyName", err)
	}
	if state.Players[0].Name != "Ada" {
		t.Fatalf("name = %q, want %q", state.Players[0].Name, "Ada")
	}
	if err := RenamePlayer(state, "nope", "X"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown player err = %v", err)
	}
}

func TestRenamePlayerReplacesControlCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ann\nBee", "Ann Bee"},
		{"Ann\r\nevent: save-status", "Ann  event: save-status"},
		{"\tZoë\x00", "Zoë"},
	}
	for _, tt := range tests {
		state := startedState(t, 2)
		if err := RenamePlayer(state, state.Players[0].ID, tt.in); err != nil {
			t.Fatalf("rename %q: %v", tt.in, err)
		}
		if got := state.Players[0].Name; got != tt.want {
			t.Fatalf("rename %q = %q, want %q", tt.in, got, tt.want)
		}
	}

	state := startedState(t, 2)
	if err := RenamePlayer(state, state.Players[0].ID, "\n\r"); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("control-only rename err = %v, want ErrEmptyName", err)
	}
}

func TestSetInputsIsAllOrNothing(t *testing.T) {
	state := startedState(t, 2)
	a, b := state.Players[0].ID, state.Players[1].ID
	if err := SetInputs(state, map[string]string{a: "5", b: "-2"}); err != nil {
		t.Fatalf("set inputs: %v", err)
	}
	if state.PendingInputs[a] != "5" || state.PendingInputs[b] != "-2" {
		t.Fatalf("inputs = %v", state.PendingInputs)
	}
	if err := SetInputs(state, map[string]string{a: "9", "nope": "1"}); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("err = %v, want ErrUnknownPlayer", err)
	}
	if state.PendingInputs[a] != "5" {
		t.Fatalf("input changed by refused batch: %q", state.PendingInputs[a])
	}
}

func TestStartGameRequiresPlayers(t *testing.T) {
	state := models.NewAppState()
	if err := StartGame(state); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("err = %v, want ErrTooFewPlayers", err)
	}
	if state.View != models.ViewSetup {
		t.Fatalf("view = %q, want setup", state.View)
	}
}

func TestSubmitRound(t *testing.T) {
	state := startedState(t, 2)
	submit(t, state, " 5", "-10 ")

	if len(state.Rounds) != 1 {
		t.Fatalf("rounds = %d, want 1", len(state.Rounds))
	}
	want := map[string]int{state.Players[0].ID: 5, state.Players[1].ID: -10}
	if !reflect.DeepEqual(state.Rounds[0].Scores, want) {
		t.Fatalf("scores = %v, want %v", state.Rounds[0].Scores, want)
	}
	if state.Rounds[0].Timestamp != "2026-10-19T12:00:00.000Z" {
		t.Fatalf("timestamp = %q", state.Rounds[0].Timestamp)
	}
	for _, p := range state.Players {
		if state.PendingInputs[p.ID] != DefaultInput {
			t.Fatalf("pending input for %s = %q, want reset", p.Name, state.PendingInputs[p.ID])
		}
	}
}

func TestSubmitRoundRejectsInvalidInput(t *testing.T) {
	state := startedState(t, 2)
	_ = SetInput(state, state.Players[0].ID, "3")
	_ = SetInput(state, state.Players[1].ID, "abc")

	err := SubmitRound(state, testNow)
	var scoreErr *ScoreError
	if !errors.As(err, &scoreErr) || scoreErr.PlayerName != "Player 2" {
		t.Fatalf("err = %v, want ScoreError for Player 2", err)
	}
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("err = %v, want ErrInvalidScore", err)
	}
	if got := AlertMessage(err); got != "Please enter an integer score for Player 2." {
		t.Fatalf("alert = %q", got)
	}
	if len(state.Rounds) != 0 {
		t.Fatalf("rounds = %d, want 0", len(state.Rounds))
	}
	if state.PendingInputs[state.Players[1].ID] != "abc" {
		t.Fatal("pending input was reset on failure")
	}
}

func TestSubmitRoundRejectsEmptyInput(t *testing.T) {
	state := startedState(t, 2)
	_ = SetInput(state, state.Players[0].ID, "  ")
	if err := SubmitRound(state, testNow); !errors.Is(err, ErrMissingScore) {
		t.Fatalf("err = %v, want ErrMissingScore", err)
	}
}

func TestSubmitRoundAfterEnd(t *testing.T) {
	state := startedState(t, 2)
	submit(t, state, "200", "0")
	if err := SubmitRound(state, testNow); !errors.Is(err, ErrGameEnded) {
		t.Fatalf("err = %v, want ErrGameEnded", err)
	}
	if len(state.Rounds) != 1 {
		t.Fatalf("rounds = %d, want 1", len(state.Rounds))
	}
}

func TestUndoAndClear(t *testing.T) {
	state := startedState(t, 2)
	if err := UndoLastRound(state); !errors.Is(err, ErrNoRounds) {
		t.Fatalf("undo empty err = %v", err)
	}
	if err := ClearHistory(state); !errors.Is(err, ErrHistoryEmpty) {
		t.Fatalf("clear empty err = %v", err)
	}

	submit(t, state, "1", "2")
	submit(t, state, "3", "4")
	if err := UndoLastRound(state); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(state.Rounds) != 1 || state.Rounds[0].Scores[state.Players[0].ID] != 1 {
		t.Fatalf("rounds after undo = %+v", state.Rounds)
	}

	_ = SetInput(state, state.Players[0].ID, "9")
	if err := ClearHistory(state); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(state.Rounds) != 0 || len(state.Players) != 2 {
		t.Fatalf("after clear rounds=%d players=%d", len(state.Rounds), len(state.Players))
	}
	if state.PendingInputs[state.Players[0].ID] != DefaultInput {
		t.Fatal("pending input not reset")
	}
}

func TestResetScoresKeepsPlayers(t *testing.T) {
	state := startedState(t, 3)
	submit(t, state, "1", "2", "3")
	OpenHistory(state)
	ResetScores(state)
	if len(state.Rounds) != 0 || len(state.Players) != 3 || state.View != models.ViewScore {
		t.Fatalf("state = %+v", state)
	}
}

func TestResetToNewGame(t *testing.T) {
	state := startedState(t, 5)
	submit(t, state, "1", "2", "3", "4", "5")
	ResetToNewGame(state)
	if len(state.Players) != 2 || len(state.Rounds) != 0 || state.View != models.ViewSetup {
		t.Fatalf("state = %+v", state)
	}
}

func TestEditRound(t *testing.T) {
	state := startedState(t, 2)
	submit(t, state, "1", "2")
	submit(t, state, "3", "4")
	submit(t, state, "5", "6")
	a, b := state.Players[0].ID, state.Players[1].ID
	ts := state.Rounds[1].Timestamp

	if err := OpenEdit(state, 1); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	inputs, err := EditInputs(state)
	if err != nil {
		t.Fatalf("edit inputs: %v", err)
	}
	if inputs[a] != "3" || inputs[b] != "4" {
		t.Fatalf("prefill = %v", inputs)
	}

	if err := SaveEdit(state, map[string]string{a: "x", b: "0"}); err == nil {
		t.Fatal("expected invalid edit to fail")
	}
	if state.Rounds[1].Scores[a] != 3 || state.View != models.ViewEdit {
		t.Fatal("invalid edit mutated state")
	}

	if err := SaveEdit(state, map[string]string{a: "30", b: "40"}); err != nil {
		t.Fatalf("save edit: %v", err)
	}
	if state.View != models.ViewHistory || state.EditIndex != nil {
		t.Fatalf("view = %q editIndex = %v", state.View, state.EditIndex)
	}
	if state.Rounds[1].Timestamp != ts {
		t.Fatal("timestamp changed")
	}
	totals := ComputeTotals(state.Players, state.Rounds)
	if totals.AfterRound[0][a] != 1 || totals.AfterRound[2][a] != 36 || totals.Now[b] != 48 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestOpenEditOutOfRange(t *testing.T) {
	state := startedState(t, 2)
	if err := OpenEdit(state, 0); !errors.Is(err, ErrInvalidRound) {
		t.Fatalf("err = %v, want ErrInvalidRound", err)
	}
	if err := SaveEdit(state, nil); !errors.Is(err, ErrInvalidRound) {
		t.Fatalf("err = %v, want ErrInvalidRound", err)
	}
}

func TestSaveEditKeepsRemovedPlayerEntries(t *testing.T) {
	state := startedState(t, 2)
	a, b := state.Players[0].ID, state.Players[1].ID
	state.Rounds = append(state.Rounds, models.Round{Scores: map[string]int{a: 1, b: 2, "gone": 9}})
	_ = OpenEdit(state, 0)
	if err := SaveEdit(state, map[string]string{a: "5", b: "6"}); err != nil {
		t.Fatalf("save edit: %v", err)
	}
	if state.Rounds[0].Scores["gone"] != 9 {
		t.Fatalf("scores = %v", state.Rounds[0].Scores)
	}
}

func TestRepair(t *testing.T) {
	idx := 4
	state := &models.AppState{
		Players:   []models.Player{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		Rounds:    []models.Round{{Timestamp: "t"}},
		View:      models.ViewEdit,
		EditIndex: &idx,
	}
	Repair(state)
	if state.View != models.ViewHistory || state.EditIndex != nil {
		t.Fatalf("view = %q editIndex = %v", state.View, state.EditIndex)
	}
	if state.PendingInputs["a"] != DefaultInput || state.Rounds[0].Scores == nil {
		t.Fatalf("state not repaired: %+v", state)
	}

	empty := &models.AppState{View: models.ViewScore}
	Repair(empty)
	if empty.View != models.ViewSetup {
		t.Fatalf("view = %q, want setup", empty.View)
	}

	unknown := &models.AppState{Players: state.Players, View: "bogus"}
	Repair(unknown)
	if unknown.View != models.ViewSetup {
		t.Fatalf("view = %q, want setup", unknown.View)
	}
}
